package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/movie-rating-api/internal/domain"
	"github.com/cinelog/movie-rating-api/internal/repository"
)

type fakeRatingStore struct {
	rating domain.Rating
	err    error
	calls  int
}

func (f *fakeRatingStore) Create(_ context.Context, movieID int64, score int) (domain.Rating, error) {
	f.calls++
	if f.err != nil {
		return domain.Rating{}, f.err
	}
	rating := f.rating
	rating.MovieID = movieID
	rating.Score = score
	return rating, nil
}

type fakeMovieChecker struct {
	exists bool
}

func (f *fakeMovieChecker) Exists(_ context.Context, _ int64) (bool, error) {
	return f.exists, nil
}

func TestRatingServiceCreate_ScoreBounds(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		wantErr bool
	}{
		{"below range", 0, true},
		{"above range", 11, true},
		{"lower bound", 1, false},
		{"upper bound", 10, false},
		{"mid range", 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeRatingStore{rating: domain.Rating{ID: 1, RatedAt: time.Now()}}
			svc := NewRatingService(&fakeMovieChecker{exists: true}, store, zerolog.Nop())

			result, err := svc.Create(context.Background(), 7, tt.score)
			if tt.wantErr {
				domainErr, ok := domain.AsError(err)
				require.True(t, ok, "expected typed validation error, got %v", err)
				assert.Equal(t, 422, domainErr.Code)
				assert.Zero(t, store.calls, "invalid score must not reach the store")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, int64(7), result.MovieID)
			assert.Equal(t, 1, store.calls)
		})
	}
}

func TestRatingServiceCreate_MovieNotFound(t *testing.T) {
	store := &fakeRatingStore{}
	svc := NewRatingService(&fakeMovieChecker{exists: false}, store, zerolog.Nop())

	_, err := svc.Create(context.Background(), 42, 5)
	domainErr, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 404, domainErr.Code)
	assert.Equal(t, "Movie not found", domainErr.Message)
	assert.Zero(t, store.calls)
}

func TestRatingServiceCreate_MovieGoneAtInsert(t *testing.T) {
	// The movie can be deleted between the existence check and the
	// insert; the store's not-found still maps to a 404.
	store := &fakeRatingStore{err: repository.ErrNotFound}
	svc := NewRatingService(&fakeMovieChecker{exists: true}, store, zerolog.Nop())

	_, err := svc.Create(context.Background(), 42, 5)
	domainErr, ok := domain.AsError(err)
	require.True(t, ok, "expected typed not-found error, got %v", err)
	assert.Equal(t, 404, domainErr.Code)
	assert.Equal(t, "Movie not found", domainErr.Message)
}

func TestRatingServiceCreate_Result(t *testing.T) {
	ratedAt := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	store := &fakeRatingStore{rating: domain.Rating{ID: 99, RatedAt: ratedAt}}
	svc := NewRatingService(&fakeMovieChecker{exists: true}, store, zerolog.Nop())

	result, err := svc.Create(context.Background(), 7, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(99), result.RatingID)
	assert.Equal(t, int64(7), result.MovieID)
	assert.Equal(t, 8, result.Score)
	assert.Equal(t, ratedAt, result.CreatedAt)
}
