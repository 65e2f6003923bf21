package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelog/movie-rating-api/internal/domain"
)

// GenresRepository provides lookups against pre-seeded genre rows.
type GenresRepository struct {
	pool *pgxpool.Pool
}

// GetByIDs fetches the genres matching the given ids. Unknown ids are
// silently absent from the result.
func (r *GenresRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
        SELECT id, name, description, created_at, updated_at
        FROM genres
        WHERE id = ANY($1)
        ORDER BY id
    `, ids)
	if err != nil {
		return nil, fmt.Errorf("genres by ids: %w", err)
	}
	defer rows.Close()

	var genres []domain.Genre
	for rows.Next() {
		var genre domain.Genre
		err := rows.Scan(&genre.ID, &genre.Name, &genre.Description, &genre.CreatedAt, &genre.UpdatedAt)
		if err != nil {
			return nil, err
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return genres, nil
}

// AllExist reports whether every given genre id is present. An empty id
// list is vacuously true.
func (r *GenresRepository) AllExist(ctx context.Context, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}

	genres, err := r.GetByIDs(ctx, ids)
	if err != nil {
		return false, err
	}

	found := make(map[int64]struct{}, len(genres))
	for _, genre := range genres {
		found[genre.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}
