package domain

import "time"

// Rating represents a single score submitted for a movie. Ratings are
// append-only: once created they are never updated or deleted, except by
// cascade when the owning movie is removed.
type Rating struct {
	ID      int64
	MovieID int64
	Score   int
	RatedAt time.Time
}

// ScoreMin and ScoreMax bound the accepted rating scores, inclusive. The
// same range is enforced by a CHECK constraint on the movie_ratings table.
const (
	ScoreMin = 1
	ScoreMax = 10
)
