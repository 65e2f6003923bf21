package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinelog/movie-rating-api/internal/domain"
	"github.com/cinelog/movie-rating-api/internal/repository"
)

// RatingStore is the data-access surface the rating service depends on.
type RatingStore interface {
	Create(ctx context.Context, movieID int64, score int) (domain.Rating, error)
}

// MovieChecker covers the movie existence lookup ratings need.
type MovieChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// RatingService implements rating submission.
type RatingService struct {
	movies  MovieChecker
	ratings RatingStore
	logger  zerolog.Logger
}

// NewRatingService wires a rating service from its stores.
func NewRatingService(movies MovieChecker, ratings RatingStore, logger zerolog.Logger) *RatingService {
	return &RatingService{movies: movies, ratings: ratings, logger: logger}
}

// RatingResult is the create-rating response projection.
type RatingResult struct {
	RatingID  int64     `json:"rating_id"`
	MovieID   int64     `json:"movie_id"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Create persists a new rating for the movie. Scores outside 1..10 are
// rejected before any lookup.
func (s *RatingService) Create(ctx context.Context, movieID int64, score int) (RatingResult, error) {
	if score < domain.ScoreMin || score > domain.ScoreMax {
		return RatingResult{}, domain.Validation("Score must be an integer between 1 and 10")
	}

	exists, err := s.movies.Exists(ctx, movieID)
	if err != nil {
		return RatingResult{}, fmt.Errorf("check movie %d: %w", movieID, err)
	}
	if !exists {
		return RatingResult{}, domain.NotFound("Movie not found")
	}

	rating, err := s.ratings.Create(ctx, movieID, score)
	if err != nil {
		if err == repository.ErrNotFound {
			return RatingResult{}, domain.NotFound("Movie not found")
		}
		return RatingResult{}, fmt.Errorf("create rating: %w", err)
	}
	s.logger.Info().Int64("movie_id", movieID).Int("score", score).Msg("rating created")

	return RatingResult{
		RatingID:  rating.ID,
		MovieID:   rating.MovieID,
		Score:     rating.Score,
		CreatedAt: rating.RatedAt,
	}, nil
}
