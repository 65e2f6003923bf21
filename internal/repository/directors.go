package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DirectorsRepository provides lookups against pre-seeded director rows.
type DirectorsRepository struct {
	pool *pgxpool.Pool
}

// Exists reports whether a director row with the given id is present.
func (r *DirectorsRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM directors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("director exists: %w", err)
	}
	return exists, nil
}
