// Package doctors serves the doctor list the calendar filter is populated
// from.
package doctors

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Doctor is a clinic practitioner selectable in the calendar filter.
type Doctor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
}

// repoDB defines the database interface needed by Repository
type repoDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository queries doctors from the database.
type Repository struct {
	db repoDB
}

// NewRepository creates a repository backed by a pgx pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("doctors: pgx pool required")
	}
	return &Repository{db: pool}
}

// NewRepositoryWithDB allows injecting a mock database for testing.
func NewRepositoryWithDB(db repoDB) *Repository {
	return &Repository{db: db}
}

// List returns all doctors ordered by name.
func (r *Repository) List(ctx context.Context) ([]Doctor, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, specialty FROM doctors ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("doctors: list: %w", err)
	}
	defer rows.Close()

	var docs []Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialty); err != nil {
			return nil, fmt.Errorf("doctors: scan row: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("doctors: iterate rows: %w", err)
	}
	return docs, nil
}
