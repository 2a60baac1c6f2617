package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/domain"
)

// BusRepo implements ports.BusRepository with pgx.
type BusRepo struct {
	db *DB
}

// NewBusRepo creates a new BusRepo.
func NewBusRepo(db *DB) *BusRepo {
	return &BusRepo{db: db}
}

// Upsert inserts or updates a single bus line.
func (r *BusRepo) Upsert(ctx context.Context, b *domain.Bus) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO buses (id, name, route_name, operator, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, route_name = EXCLUDED.route_name,
		    operator = EXCLUDED.operator, active = EXCLUDED.active
	`, b.ID, b.Name, b.RouteName, b.Operator, b.Active)
	return err
}

// UpsertBatch inserts many bus lines using pgx.Batch.
func (r *BusRepo) UpsertBatch(ctx context.Context, buses []domain.Bus) error {
	batch := &pgx.Batch{}
	for _, b := range buses {
		batch.Queue(`
			INSERT INTO buses (id, name, route_name, operator, active)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, route_name = EXCLUDED.route_name,
			    operator = EXCLUDED.operator, active = EXCLUDED.active
		`, b.ID, b.Name, b.RouteName, b.Operator, b.Active)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range buses {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

// GetByID returns a bus by ID.
func (r *BusRepo) GetByID(ctx context.Context, id string) (*domain.Bus, error) {
	var b domain.Bus
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(route_name, ''), COALESCE(operator, ''), active, created_at
		FROM buses WHERE id = $1
	`, id).Scan(&b.ID, &b.Name, &b.RouteName, &b.Operator, &b.Active, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("bus %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns every bus line, ordered by name.
func (r *BusRepo) List(ctx context.Context) ([]domain.Bus, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, COALESCE(route_name, ''), COALESCE(operator, ''), active, created_at
		FROM buses
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBuses(rows)
}

// Search performs trigram similarity search on bus and route names.
func (r *BusRepo) Search(ctx context.Context, query string, limit int) ([]domain.Bus, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, COALESCE(route_name, ''), COALESCE(operator, ''), active, created_at
		FROM buses
		WHERE name %> $1 OR route_name %> $1
		ORDER BY similarity(name, $1) DESC
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBuses(rows)
}

func scanBuses(rows pgx.Rows) ([]domain.Bus, error) {
	var buses []domain.Bus
	for rows.Next() {
		var b domain.Bus
		if err := rows.Scan(&b.ID, &b.Name, &b.RouteName, &b.Operator, &b.Active, &b.CreatedAt); err != nil {
			return nil, err
		}
		buses = append(buses, b)
	}
	return buses, rows.Err()
}
