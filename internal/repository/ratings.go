package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelog/movie-rating-api/internal/domain"
)

// foreignKeyViolation is the PostgreSQL error code for a failed FK check.
const foreignKeyViolation = "23503"

// RatingsRepository provides helpers for movie ratings. Ratings are
// append-only; no read, update, or delete is exposed.
type RatingsRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a new rating row for the movie and returns the stored entity.
func (r *RatingsRepository) Create(ctx context.Context, movieID int64, score int) (domain.Rating, error) {
	const query = `
        INSERT INTO movie_ratings (movie_id, score)
        VALUES ($1, $2)
        RETURNING id, movie_id, score, rated_at
    `

	var rating domain.Rating
	err := r.pool.QueryRow(ctx, query, movieID, score).Scan(
		&rating.ID,
		&rating.MovieID,
		&rating.Score,
		&rating.RatedAt,
	)
	if err != nil {
		// The movie may disappear between the caller's existence check
		// and this insert; the FK violation means it is gone.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return domain.Rating{}, ErrNotFound
		}
		return domain.Rating{}, fmt.Errorf("insert rating: %w", err)
	}
	return rating, nil
}
