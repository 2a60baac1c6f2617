// Command seed loads bus lines, stops, and stop placements from CSV files
// into Postgres. It is the only writer; the API serves read-only traffic.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/adapters/postgres"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/core/domain"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/pkg/config"
	"github.com/Jannatul-2003/Bus-Route-Finder-sub002/internal/pkg/logging"
)

func main() {
	dataDir := flag.String("data", "./data", "directory containing buses.csv, stops.csv, placements.csv")
	flag.Parse()

	cfg, err := config.Load("busfinder-seed")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logging.Setup("busfinder-seed", "info", "text")

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	buses, err := readBuses(filepath.Join(*dataDir, "buses.csv"))
	if err != nil {
		log.Fatalf("buses.csv: %v", err)
	}
	stops, err := readStops(filepath.Join(*dataDir, "stops.csv"))
	if err != nil {
		log.Fatalf("stops.csv: %v", err)
	}
	placements, err := readPlacements(filepath.Join(*dataDir, "placements.csv"))
	if err != nil {
		log.Fatalf("placements.csv: %v", err)
	}

	if err := postgres.NewBusRepo(db).UpsertBatch(ctx, buses); err != nil {
		log.Fatalf("upsert buses: %v", err)
	}
	if err := postgres.NewStopRepo(db).UpsertBatch(ctx, stops); err != nil {
		log.Fatalf("upsert stops: %v", err)
	}
	if err := postgres.NewPlacementRepo(db).UpsertBatch(ctx, placements); err != nil {
		log.Fatalf("upsert placements: %v", err)
	}

	slog.Info("seed complete", "buses", len(buses), "stops", len(stops), "placements", len(placements))
}

// readBuses parses id,name,route_name,operator rows.
func readBuses(path string) ([]domain.Bus, error) {
	rows, err := readCSV(path, 4)
	if err != nil {
		return nil, err
	}
	buses := make([]domain.Bus, 0, len(rows))
	for _, r := range rows {
		buses = append(buses, domain.Bus{
			ID:        r[0],
			Name:      r[1],
			RouteName: r[2],
			Operator:  r[3],
			Active:    true,
		})
	}
	return buses, nil
}

// readStops parses id,name,area,lat,lon rows.
func readStops(path string) ([]domain.Stop, error) {
	rows, err := readCSV(path, 5)
	if err != nil {
		return nil, err
	}
	stops := make([]domain.Stop, 0, len(rows))
	for i, r := range rows {
		lat, err := strconv.ParseFloat(r[3], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: lat: %w", i+1, err)
		}
		lon, err := strconv.ParseFloat(r[4], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: lon: %w", i+1, err)
		}
		s := domain.Stop{ID: r[0], Name: r[1], Area: r[2], Location: domain.GeoPoint{Lat: lat, Lon: lon}}
		if err := s.Location.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		stops = append(stops, s)
	}
	return stops, nil
}

// readPlacements parses bus_id,stop_id,stop_order,direction rows.
func readPlacements(path string) ([]domain.StopPlacement, error) {
	rows, err := readCSV(path, 4)
	if err != nil {
		return nil, err
	}
	placements := make([]domain.StopPlacement, 0, len(rows))
	for i, r := range rows {
		order, err := strconv.Atoi(r[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: stop_order: %w", i+1, err)
		}
		direction, ok := domain.ParseDirection(r[3])
		if !ok {
			return nil, fmt.Errorf("row %d: unknown direction %q", i+1, r[3])
		}
		placements = append(placements, domain.StopPlacement{
			BusID:     r[0],
			StopID:    r[1],
			StopOrder: order,
			Direction: direction,
		})
	}
	return placements, nil
}

// readCSV reads a headered CSV and checks the column count.
func readCSV(path string, columns int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = columns

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) <= 1 {
		return nil, nil
	}
	return records[1:], nil // skip header
}
