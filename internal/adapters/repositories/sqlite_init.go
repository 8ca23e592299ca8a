package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dialect selects the SQL flavour of a database handle.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Initialize the demand schema for the given dialect.
func InitSchema(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	var createDemandsQuery string
	switch dialect {
	case DialectSQLite:
		createDemandsQuery = `
		CREATE TABLE IF NOT EXISTS demand_points (
			point_id INTEGER PRIMARY KEY,
			x REAL NOT NULL,
			y REAL NOT NULL,
			demand INTEGER NOT NULL CHECK (demand > 0)
		);
		`
	case DialectPostgres:
		createDemandsQuery = `
		CREATE TABLE IF NOT EXISTS demand_points (
			point_id INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			x DOUBLE PRECISION NOT NULL,
			y DOUBLE PRECISION NOT NULL,
			demand INTEGER NOT NULL CHECK (demand > 0)
		);
		`
	default:
		return fmt.Errorf("init schema: unknown dialect %q", dialect)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(createDemandsQuery); err != nil {
		return fmt.Errorf("init schema: create demand_points: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type DemandSeed struct {
	PointID int     `json:"point_id" yaml:"point_id"`
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
	Demand  int     `json:"demand" yaml:"demand"`
}

// LoadSeeds reads demand seeds from a .json, .yaml or .yml file and validates them.
func LoadSeeds(path string) ([]DemandSeed, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load seeds: read %q: %w", path, err)
	}

	var data []DemandSeed
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(bytes, &data); err != nil {
			return nil, fmt.Errorf("load seeds: parse json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(bytes, &data); err != nil {
			return nil, fmt.Errorf("load seeds: parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("load seeds: unsupported seed file extension %q", ext)
	}

	seen := make(map[int]bool, len(data))
	for i, item := range data {
		if item.PointID <= 0 {
			return nil, fmt.Errorf("load seeds: invalid point_id at index %d: %d", i+1, item.PointID)
		}
		if seen[item.PointID] {
			return nil, fmt.Errorf("load seeds: duplicate point_id at index %d: %d", i+1, item.PointID)
		}
		if item.Demand <= 0 {
			return nil, fmt.Errorf("load seeds: item at index %d: demand must be positive (got %d)", i+1, item.Demand)
		}
		seen[item.PointID] = true
	}

	return data, nil
}

// Populate the database with demand data from a seed file.
func SeedFromFile(ctx context.Context, db *sql.DB, dialect Dialect, path string) (int, error) {
	seeds, err := LoadSeeds(path)
	if err != nil {
		return 0, fmt.Errorf("seed demands: %w", err)
	}

	if err := SeedDemands(ctx, db, dialect, seeds); err != nil {
		return 0, err
	}
	return len(seeds), nil
}

// Upsert seeds by point id.
func SeedDemands(ctx context.Context, db *sql.DB, dialect Dialect, seeds []DemandSeed) error {
	query := `
	INSERT INTO demand_points (point_id, x, y, demand)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (point_id) DO UPDATE SET x = excluded.x, y = excluded.y, demand = excluded.demand;
	`
	if dialect == DialectPostgres {
		query = `
		INSERT INTO demand_points (point_id, x, y, demand)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (point_id) DO UPDATE SET x = excluded.x, y = excluded.y, demand = excluded.demand;
		`
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed demands: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed demands: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range seeds {
		if _, err := stmt.ExecContext(ctx, s.PointID, s.X, s.Y, s.Demand); err != nil {
			return fmt.Errorf("seed demands: insert point_id=%d: %w", s.PointID, err)
		}
	}

	// Explicit ids bypass the identity sequence; move it past them.
	if dialect == DialectPostgres {
		resync := `
		SELECT setval(pg_get_serial_sequence('demand_points', 'point_id'), COALESCE(MAX(point_id), 0) + 1, false)
		FROM demand_points;
		`
		if _, err := tx.ExecContext(ctx, resync); err != nil {
			return fmt.Errorf("seed demands: resync identity: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed demands: commit tx: %w", err)
	}

	return nil
}
