package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/domain"
)

// PlacementRepo implements ports.PlacementRepository with pgx. The
// (bus_id, direction, stop_order) uniqueness lives in the schema.
type PlacementRepo struct {
	db *DB
}

// NewPlacementRepo creates a new PlacementRepo.
func NewPlacementRepo(db *DB) *PlacementRepo {
	return &PlacementRepo{db: db}
}

// UpsertBatch inserts many placements using pgx.Batch.
func (r *PlacementRepo) UpsertBatch(ctx context.Context, placements []domain.StopPlacement) error {
	batch := &pgx.Batch{}
	for _, p := range placements {
		batch.Queue(`
			INSERT INTO stop_placements (bus_id, stop_id, stop_order, direction)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (bus_id, direction, stop_order) DO UPDATE
			SET stop_id = EXCLUDED.stop_id
		`, p.BusID, p.StopID, p.StopOrder, p.Direction)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range placements {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

// ListByBus returns the stop sequence of a bus for one direction, ordered
// by stop_order ascending, with the Stop field populated.
func (r *PlacementRepo) ListByBus(ctx context.Context, busID string, direction domain.Direction) ([]domain.StopPlacement, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT p.bus_id, p.stop_id, p.stop_order, p.direction,
		       s.id, s.name, COALESCE(s.area, ''),
		       ST_Y(s.location::geometry) as lat,
		       ST_X(s.location::geometry) as lon,
		       s.created_at
		FROM stop_placements p
		JOIN stops s ON s.id = p.stop_id
		WHERE p.bus_id = $1 AND p.direction = $2
		ORDER BY p.stop_order
	`, busID, direction)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var placements []domain.StopPlacement
	for rows.Next() {
		var p domain.StopPlacement
		var s domain.Stop
		if err := rows.Scan(
			&p.BusID, &p.StopID, &p.StopOrder, &p.Direction,
			&s.ID, &s.Name, &s.Area, &s.Location.Lat, &s.Location.Lon, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.Stop = &s
		placements = append(placements, p)
	}
	// a bus with no placements yields an empty slice, not an error
	return placements, rows.Err()
}
