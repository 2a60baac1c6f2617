package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/domain"
)

// StopRepo implements ports.StopRepository with pgx.
type StopRepo struct {
	db *DB
}

// NewStopRepo creates a new StopRepo.
func NewStopRepo(db *DB) *StopRepo {
	return &StopRepo{db: db}
}

// Upsert inserts or updates a single stop.
func (r *StopRepo) Upsert(ctx context.Context, s *domain.Stop) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO stops (id, name, area, location)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, area = EXCLUDED.area, location = EXCLUDED.location
	`, s.ID, s.Name, s.Area, s.Location.Lon, s.Location.Lat)
	return err
}

// UpsertBatch inserts many stops using pgx.Batch.
func (r *StopRepo) UpsertBatch(ctx context.Context, stops []domain.Stop) error {
	batch := &pgx.Batch{}
	for _, s := range stops {
		batch.Queue(`
			INSERT INTO stops (id, name, area, location)
			VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, area = EXCLUDED.area, location = EXCLUDED.location
		`, s.ID, s.Name, s.Area, s.Location.Lon, s.Location.Lat)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range stops {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

// GetByID returns a stop by ID.
func (r *StopRepo) GetByID(ctx context.Context, id string) (*domain.Stop, error) {
	var s domain.Stop
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(area, ''),
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       created_at
		FROM stops WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.Area, &s.Location.Lat, &s.Location.Lon, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("stop %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns every stop, ordered by name. The stop table is small (one
// city's bus stops) so candidate pre-filtering happens in memory.
func (r *StopRepo) List(ctx context.Context) ([]domain.Stop, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, COALESCE(area, ''),
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       created_at
		FROM stops
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStops(rows, false)
}

// FindNearby returns stops within radiusMeters using PostGIS ST_DWithin.
func (r *StopRepo) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.Stop, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, COALESCE(area, ''),
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       created_at,
		       ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) as distance
		FROM stops
		WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY distance
		LIMIT $4
	`, lon, lat, radiusMeters, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStops(rows, true)
}

// Search performs trigram similarity search on stop names.
func (r *StopRepo) Search(ctx context.Context, query string, limit int) ([]domain.Stop, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, COALESCE(area, ''),
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       created_at
		FROM stops
		WHERE name %> $1 OR area %> $1
		ORDER BY similarity(name, $1) DESC
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStops(rows, false)
}

func scanStops(rows pgx.Rows, withDistance bool) ([]domain.Stop, error) {
	var stops []domain.Stop
	for rows.Next() {
		var s domain.Stop
		var err error
		if withDistance {
			var dist float64
			err = rows.Scan(&s.ID, &s.Name, &s.Area, &s.Location.Lat, &s.Location.Lon, &s.CreatedAt, &dist)
			s.Distance = &dist
		} else {
			err = rows.Scan(&s.ID, &s.Name, &s.Area, &s.Location.Lat, &s.Location.Lon, &s.CreatedAt)
		}
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}
