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

type fakeMovieStore struct {
	listRows    []repository.MovieListRow
	listTotal   int64
	detail      repository.MovieDetailRow
	getErr      error
	exists      bool
	existsErr   error
	createdID   int64
	createCalls int
	lastCreate  repository.MovieCreateParams
	lastGenres  []int64
	updateErr   error
	updateCalls int
	lastUpdate  repository.MovieUpdateParams
	deleteErr   error
}

func (f *fakeMovieStore) ListPaginated(_ context.Context, _ repository.MovieListParams) ([]repository.MovieListRow, int64, error) {
	return f.listRows, f.listTotal, nil
}

func (f *fakeMovieStore) GetByID(_ context.Context, _ int64) (repository.MovieDetailRow, error) {
	if f.getErr != nil {
		return repository.MovieDetailRow{}, f.getErr
	}
	return f.detail, nil
}

func (f *fakeMovieStore) Exists(_ context.Context, _ int64) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeMovieStore) CreateWithGenres(_ context.Context, params repository.MovieCreateParams, genreIDs []int64) (int64, error) {
	f.createCalls++
	f.lastCreate = params
	f.lastGenres = genreIDs
	return f.createdID, nil
}

func (f *fakeMovieStore) UpdateWithGenres(_ context.Context, _ int64, params repository.MovieUpdateParams) error {
	f.updateCalls++
	f.lastUpdate = params
	return f.updateErr
}

func (f *fakeMovieStore) Delete(_ context.Context, _ int64) error {
	return f.deleteErr
}

type fakeDirectorStore struct {
	exists bool
	calls  int
}

func (f *fakeDirectorStore) Exists(_ context.Context, _ int64) (bool, error) {
	f.calls++
	return f.exists, nil
}

type fakeGenreStore struct {
	allExist bool
	lastIDs  []int64
}

func (f *fakeGenreStore) AllExist(_ context.Context, ids []int64) (bool, error) {
	f.lastIDs = ids
	return f.allExist, nil
}

func newMovieService(movies *fakeMovieStore, directors *fakeDirectorStore, genres *fakeGenreStore) *MovieService {
	return NewMovieService(movies, directors, genres, zerolog.Nop())
}

func TestMovieServiceList_Projection(t *testing.T) {
	year := 2010
	avg := 4.5
	movies := &fakeMovieStore{
		listRows: []repository.MovieListRow{
			{
				ID:            1,
				Title:         "Inception",
				ReleaseYear:   &year,
				Director:      &repository.DirectorBrief{ID: 7, Name: "Christopher Nolan"},
				Genres:        []string{"Action", "Science Fiction"},
				AverageRating: &avg,
				RatingsCount:  2,
			},
			{ID: 2, Title: "Untitled"},
		},
		listTotal: 12,
	}
	svc := newMovieService(movies, &fakeDirectorStore{}, &fakeGenreStore{})

	list, err := svc.List(context.Background(), 2, 5, MovieFilters{})
	require.NoError(t, err)

	assert.Equal(t, 2, list.Page)
	assert.Equal(t, 5, list.PageSize)
	assert.Equal(t, int64(12), list.TotalItems)
	require.Len(t, list.Items, 2)

	first := list.Items[0]
	require.NotNil(t, first.Director)
	assert.Equal(t, int64(7), first.Director.ID)
	assert.Equal(t, "Christopher Nolan", first.Director.Name)
	require.NotNil(t, first.AverageRating)
	assert.Equal(t, 4.5, *first.AverageRating)
	assert.Equal(t, int64(2), first.RatingsCount)

	// A movie without director, genres, or ratings still renders
	// director:null, genres:[], average_rating:null.
	second := list.Items[1]
	assert.Nil(t, second.Director)
	assert.NotNil(t, second.Genres)
	assert.Empty(t, second.Genres)
	assert.Nil(t, second.AverageRating)
	assert.Equal(t, int64(0), second.RatingsCount)
}

func TestMovieServiceGet_NotFound(t *testing.T) {
	svc := newMovieService(&fakeMovieStore{getErr: repository.ErrNotFound}, &fakeDirectorStore{}, &fakeGenreStore{})

	_, err := svc.Get(context.Background(), 42)
	domainErr, ok := domain.AsError(err)
	require.True(t, ok, "expected a typed domain error, got %v", err)
	assert.Equal(t, 404, domainErr.Code)
	assert.Equal(t, "Movie not found", domainErr.Message)
}

func TestMovieServiceGet_DetailProjection(t *testing.T) {
	birthYear := 1970
	cast := "Leonardo DiCaprio"
	movies := &fakeMovieStore{
		detail: repository.MovieDetailRow{
			ID:    1,
			Title: "Inception",
			Cast:  &cast,
			Director: &domain.Director{
				ID:        7,
				Name:      "Christopher Nolan",
				BirthYear: &birthYear,
			},
			Genres: []string{"Action"},
		},
	}
	svc := newMovieService(movies, &fakeDirectorStore{}, &fakeGenreStore{})

	detail, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, detail.Director)
	assert.Equal(t, "Christopher Nolan", detail.Director.Name)
	require.NotNil(t, detail.Director.BirthYear)
	assert.Equal(t, 1970, *detail.Director.BirthYear)
	require.NotNil(t, detail.Cast)
	assert.Equal(t, cast, *detail.Cast)
}

func TestMovieServiceCreate_InvalidDirector(t *testing.T) {
	movies := &fakeMovieStore{}
	svc := newMovieService(movies, &fakeDirectorStore{exists: false}, &fakeGenreStore{allExist: true})

	_, err := svc.Create(context.Background(), MovieCreateInput{Title: "X", DirectorID: 99})
	domainErr, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 422, domainErr.Code)
	// A validation failure must not persist a movie row.
	assert.Zero(t, movies.createCalls)
}

func TestMovieServiceCreate_InvalidGenres(t *testing.T) {
	movies := &fakeMovieStore{}
	svc := newMovieService(movies, &fakeDirectorStore{exists: true}, &fakeGenreStore{allExist: false})

	_, err := svc.Create(context.Background(), MovieCreateInput{Title: "X", DirectorID: 1, Genres: []int64{5, 6}})
	domainErr, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 422, domainErr.Code)
	assert.Zero(t, movies.createCalls)
}

func TestMovieServiceCreate_Success(t *testing.T) {
	year := 2024
	movies := &fakeMovieStore{
		createdID: 11,
		detail: repository.MovieDetailRow{
			ID:          11,
			Title:       "New Movie",
			ReleaseYear: &year,
			Director:    &domain.Director{ID: 3, Name: "Someone"},
			Genres:      []string{"Drama"},
		},
	}
	genres := &fakeGenreStore{allExist: true}
	svc := newMovieService(movies, &fakeDirectorStore{exists: true}, genres)

	view, err := svc.Create(context.Background(), MovieCreateInput{
		Title:       "New Movie",
		DirectorID:  3,
		ReleaseYear: &year,
		Genres:      []int64{4},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, movies.createCalls)
	assert.Equal(t, []int64{4}, movies.lastGenres)
	assert.Equal(t, []int64{4}, genres.lastIDs)
	assert.Equal(t, int64(11), view.ID)
	require.NotNil(t, view.Director)
	assert.Equal(t, int64(3), view.Director.ID)
	// Freshly created movies always report no ratings.
	assert.Nil(t, view.AverageRating)
	assert.Equal(t, int64(0), view.RatingsCount)
}

func TestMovieServiceUpdate_NotFound(t *testing.T) {
	movies := &fakeMovieStore{exists: false}
	svc := newMovieService(movies, &fakeDirectorStore{exists: true}, &fakeGenreStore{allExist: true})

	_, err := svc.Update(context.Background(), 42, MovieUpdateInput{})
	domainErr, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 404, domainErr.Code)
	assert.Zero(t, movies.updateCalls)
}

func TestMovieServiceUpdate_GenreSyncAndTimestamp(t *testing.T) {
	updatedAt := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	movies := &fakeMovieStore{
		exists: true,
		detail: repository.MovieDetailRow{
			ID:        5,
			Title:     "Renamed",
			UpdatedAt: updatedAt,
		},
	}
	genres := &fakeGenreStore{allExist: true}
	svc := newMovieService(movies, &fakeDirectorStore{exists: true}, genres)

	empty := []int64{}
	view, err := svc.Update(context.Background(), 5, MovieUpdateInput{Genres: &empty})
	require.NoError(t, err)

	require.NotNil(t, movies.lastUpdate.Genres)
	assert.Empty(t, *movies.lastUpdate.Genres)
	assert.Equal(t, updatedAt, view.UpdatedAt)
	// Empty genre lists are vacuously valid.
	assert.Empty(t, genres.lastIDs)
}

func TestMovieServiceUpdate_InvalidDirector(t *testing.T) {
	movies := &fakeMovieStore{exists: true}
	svc := newMovieService(movies, &fakeDirectorStore{exists: false}, &fakeGenreStore{allExist: true})

	badDirector := int64(404)
	_, err := svc.Update(context.Background(), 5, MovieUpdateInput{DirectorID: &badDirector})
	domainErr, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 422, domainErr.Code)
	assert.Zero(t, movies.updateCalls)
}

func TestMovieServiceDelete(t *testing.T) {
	svc := newMovieService(&fakeMovieStore{}, &fakeDirectorStore{}, &fakeGenreStore{})
	require.NoError(t, svc.Delete(context.Background(), 5))

	svc = newMovieService(&fakeMovieStore{deleteErr: repository.ErrNotFound}, &fakeDirectorStore{}, &fakeGenreStore{})
	err := svc.Delete(context.Background(), 42)
	domainErr, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 404, domainErr.Code)
}
