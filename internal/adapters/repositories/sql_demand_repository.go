package repositories

import (
	"context"
	"cvrp-annealing-service/internal/domain"
	"database/sql"
	"errors"
	"fmt"
)

// SQL-backed implementation of the DemandStore port for SQLite and Postgres.
type SQLDemandRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSqliteDemandRepository(db *sql.DB) *SQLDemandRepository {
	return &SQLDemandRepository{DB: db, Dialect: DialectSQLite}
}

func NewPostgresDemandRepository(db *sql.DB) *SQLDemandRepository {
	return &SQLDemandRepository{DB: db, Dialect: DialectPostgres}
}

// Return all demand points stored in the database.
func (s *SQLDemandRepository) ListDemands(ctx context.Context) ([]*domain.DemandPoint, error) {
	if s.DB == nil {
		return nil, errors.New("list demands: DB is nil")
	}

	query := `
	SELECT
		point_id,
		x,
		y,
		demand
	FROM demand_points
	ORDER BY point_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list demands: query demand_points table: %w", err)
	}
	defer rows.Close()

	points := make([]*domain.DemandPoint, 0, 64)
	for rows.Next() {
		var id, demand int
		var x, y float64
		if err := rows.Scan(&id, &x, &y, &demand); err != nil {
			return nil, fmt.Errorf("list demands: scan row: %w", err)
		}

		p, err := domain.NewDemandPoint(id, x, y, demand)
		if err != nil {
			return nil, fmt.Errorf("list demands: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list demands: row iteration: %w", err)
	}

	return points, nil
}

// Insert a new demand point and return it with its generated id.
func (s *SQLDemandRepository) CreateDemand(ctx context.Context, x, y float64, demand int) (*domain.DemandPoint, error) {
	if s.DB == nil {
		return nil, errors.New("create demand: DB is nil")
	}

	// Validate before touching the database.
	if _, err := domain.NewDemandPoint(0, x, y, demand); err != nil {
		return nil, fmt.Errorf("create demand: %w", err)
	}

	query := `INSERT INTO demand_points (x, y, demand) VALUES (?, ?, ?) RETURNING point_id;`
	if s.Dialect == DialectPostgres {
		query = `INSERT INTO demand_points (x, y, demand) VALUES ($1, $2, $3) RETURNING point_id;`
	}

	var id int
	if err := s.DB.QueryRowContext(ctx, query, x, y, demand).Scan(&id); err != nil {
		return nil, fmt.Errorf("create demand: insert: %w", err)
	}

	return domain.NewDemandPoint(id, x, y, demand)
}

func (s *SQLDemandRepository) ClearDemands(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("clear demands: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM demand_points;`); err != nil {
		return fmt.Errorf("clear demands: %w", err)
	}
	return nil
}
