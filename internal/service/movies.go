package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinelog/movie-rating-api/internal/domain"
	"github.com/cinelog/movie-rating-api/internal/repository"
)

// MovieStore is the data-access surface the movie service depends on.
type MovieStore interface {
	ListPaginated(ctx context.Context, params repository.MovieListParams) ([]repository.MovieListRow, int64, error)
	GetByID(ctx context.Context, id int64) (repository.MovieDetailRow, error)
	Exists(ctx context.Context, id int64) (bool, error)
	CreateWithGenres(ctx context.Context, params repository.MovieCreateParams, genreIDs []int64) (int64, error)
	UpdateWithGenres(ctx context.Context, id int64, params repository.MovieUpdateParams) error
	Delete(ctx context.Context, id int64) error
}

// DirectorStore exposes director lookups needed for write validation.
type DirectorStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// GenreStore exposes genre lookups needed for write validation.
type GenreStore interface {
	AllExist(ctx context.Context, ids []int64) (bool, error)
}

// MovieService implements the movie business logic: foreign-key
// validation, projection shaping, and typed failures.
type MovieService struct {
	movies    MovieStore
	directors DirectorStore
	genres    GenreStore
	logger    zerolog.Logger
}

// NewMovieService wires a movie service from its stores.
func NewMovieService(movies MovieStore, directors DirectorStore, genres GenreStore, logger zerolog.Logger) *MovieService {
	return &MovieService{movies: movies, directors: directors, genres: genres, logger: logger}
}

// DirectorBrief is the reduced director projection used in list views.
type DirectorBrief struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DirectorDetail is the full director projection used in detail views.
type DirectorDetail struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	BirthYear   *int    `json:"birth_year"`
	Description *string `json:"description"`
}

// MovieListItem is one element of the paginated movie list.
type MovieListItem struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	ReleaseYear   *int          `json:"release_year"`
	Director      *DirectorBrief `json:"director"`
	Genres        []string      `json:"genres"`
	AverageRating *float64      `json:"average_rating"`
	RatingsCount  int64         `json:"ratings_count"`
}

// MovieList is the payload of the list endpoint.
type MovieList struct {
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalItems int64           `json:"total_items"`
	Items      []MovieListItem `json:"items"`
}

// MovieDetail is the full movie projection.
type MovieDetail struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	ReleaseYear   *int            `json:"release_year"`
	Director      *DirectorDetail `json:"director"`
	Genres        []string        `json:"genres"`
	Cast          *string         `json:"cast"`
	AverageRating *float64        `json:"average_rating"`
	RatingsCount  int64           `json:"ratings_count"`
}

// MovieWriteView is returned from create; update extends it with the
// refreshed timestamp.
type MovieWriteView struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	ReleaseYear   *int           `json:"release_year"`
	Director      *DirectorBrief `json:"director"`
	Genres        []string       `json:"genres"`
	Cast          *string        `json:"cast"`
	AverageRating *float64       `json:"average_rating"`
	RatingsCount  int64          `json:"ratings_count"`
}

// MovieUpdateView is the update response projection.
type MovieUpdateView struct {
	MovieWriteView
	UpdatedAt time.Time `json:"updated_at"`
}

// MovieFilters are the optional conjunctive list filters.
type MovieFilters struct {
	Title       *string
	ReleaseYear *int
	Genre       *string
}

// MovieCreateInput carries the validated create payload.
type MovieCreateInput struct {
	Title       string
	DirectorID  int64
	ReleaseYear *int
	Cast        *string
	Genres      []int64
}

// MovieUpdateInput carries a partial update payload. Nil pointers mean
// "leave unchanged"; the Optional fields can also carry an explicit null.
type MovieUpdateInput struct {
	Title       *string
	DirectorID  *int64
	ReleaseYear domain.Optional[int]
	Cast        domain.Optional[string]
	Genres      *[]int64
}

// List returns one page of movie list projections and the filter-wide total.
func (s *MovieService) List(ctx context.Context, page, pageSize int, filters MovieFilters) (MovieList, error) {
	rows, total, err := s.movies.ListPaginated(ctx, repository.MovieListParams{
		Page:        page,
		PageSize:    pageSize,
		Title:       filters.Title,
		ReleaseYear: filters.ReleaseYear,
		Genre:       filters.Genre,
	})
	if err != nil {
		return MovieList{}, fmt.Errorf("list movies: %w", err)
	}

	items := make([]MovieListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, toListItem(row))
	}
	return MovieList{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		Items:      items,
	}, nil
}

// Get returns the detail projection or NotFound.
func (s *MovieService) Get(ctx context.Context, id int64) (MovieDetail, error) {
	row, err := s.movies.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return MovieDetail{}, domain.NotFound("Movie not found")
		}
		return MovieDetail{}, fmt.Errorf("get movie %d: %w", id, err)
	}
	return toDetail(row), nil
}

// Create validates the referenced director and genres, persists the movie
// with its associations in one transaction, and returns the reloaded
// projection. A fresh movie always reports a null average and zero count.
func (s *MovieService) Create(ctx context.Context, input MovieCreateInput) (MovieWriteView, error) {
	if err := s.checkDirector(ctx, input.DirectorID); err != nil {
		return MovieWriteView{}, err
	}
	if err := s.checkGenres(ctx, input.Genres); err != nil {
		return MovieWriteView{}, err
	}

	id, err := s.movies.CreateWithGenres(ctx, repository.MovieCreateParams{
		Title:       input.Title,
		ReleaseYear: input.ReleaseYear,
		Cast:        input.Cast,
		DirectorID:  input.DirectorID,
	}, input.Genres)
	if err != nil {
		return MovieWriteView{}, fmt.Errorf("create movie: %w", err)
	}
	s.logger.Info().Int64("movie_id", id).Str("title", input.Title).Msg("movie created")

	row, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return MovieWriteView{}, fmt.Errorf("reload created movie %d: %w", id, err)
	}
	return toWriteView(row), nil
}

// Update applies a partial update with genre sync semantics and returns
// the refreshed projection including the new updated_at.
func (s *MovieService) Update(ctx context.Context, id int64, input MovieUpdateInput) (MovieUpdateView, error) {
	exists, err := s.movies.Exists(ctx, id)
	if err != nil {
		return MovieUpdateView{}, fmt.Errorf("check movie %d: %w", id, err)
	}
	if !exists {
		return MovieUpdateView{}, domain.NotFound("Movie not found")
	}

	if input.DirectorID != nil {
		if err := s.checkDirector(ctx, *input.DirectorID); err != nil {
			return MovieUpdateView{}, err
		}
	}
	if input.Genres != nil {
		if err := s.checkGenres(ctx, *input.Genres); err != nil {
			return MovieUpdateView{}, err
		}
	}

	err = s.movies.UpdateWithGenres(ctx, id, repository.MovieUpdateParams{
		Title:       input.Title,
		DirectorID:  input.DirectorID,
		ReleaseYear: input.ReleaseYear,
		Cast:        input.Cast,
		Genres:      input.Genres,
	})
	if err != nil {
		if err == repository.ErrNotFound {
			return MovieUpdateView{}, domain.NotFound("Movie not found")
		}
		return MovieUpdateView{}, fmt.Errorf("update movie %d: %w", id, err)
	}
	s.logger.Info().Int64("movie_id", id).Msg("movie updated")

	row, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return MovieUpdateView{}, fmt.Errorf("reload updated movie %d: %w", id, err)
	}
	return MovieUpdateView{
		MovieWriteView: toWriteView(row),
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

// Delete removes a movie; its ratings and genre links cascade away.
func (s *MovieService) Delete(ctx context.Context, id int64) error {
	err := s.movies.Delete(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return domain.NotFound("Movie not found")
		}
		return fmt.Errorf("delete movie %d: %w", id, err)
	}
	s.logger.Info().Int64("movie_id", id).Msg("movie deleted")
	return nil
}

func (s *MovieService) checkDirector(ctx context.Context, directorID int64) error {
	exists, err := s.directors.Exists(ctx, directorID)
	if err != nil {
		return fmt.Errorf("check director %d: %w", directorID, err)
	}
	if !exists {
		return domain.Validation(fmt.Sprintf("Invalid director_id: director %d does not exist", directorID))
	}
	return nil
}

func (s *MovieService) checkGenres(ctx context.Context, genreIDs []int64) error {
	ok, err := s.genres.AllExist(ctx, genreIDs)
	if err != nil {
		return fmt.Errorf("check genres: %w", err)
	}
	if !ok {
		return domain.Validation("Invalid genres: one or more genre ids do not exist")
	}
	return nil
}

func toListItem(row repository.MovieListRow) MovieListItem {
	item := MovieListItem{
		ID:            row.ID,
		Title:         row.Title,
		ReleaseYear:   row.ReleaseYear,
		Genres:        genreNames(row.Genres),
		AverageRating: row.AverageRating,
		RatingsCount:  row.RatingsCount,
	}
	if row.Director != nil {
		item.Director = &DirectorBrief{ID: row.Director.ID, Name: row.Director.Name}
	}
	return item
}

func toDetail(row repository.MovieDetailRow) MovieDetail {
	detail := MovieDetail{
		ID:            row.ID,
		Title:         row.Title,
		ReleaseYear:   row.ReleaseYear,
		Genres:        genreNames(row.Genres),
		Cast:          row.Cast,
		AverageRating: row.AverageRating,
		RatingsCount:  row.RatingsCount,
	}
	if row.Director != nil {
		detail.Director = &DirectorDetail{
			ID:          row.Director.ID,
			Name:        row.Director.Name,
			BirthYear:   row.Director.BirthYear,
			Description: row.Director.Description,
		}
	}
	return detail
}

func toWriteView(row repository.MovieDetailRow) MovieWriteView {
	view := MovieWriteView{
		ID:            row.ID,
		Title:         row.Title,
		ReleaseYear:   row.ReleaseYear,
		Genres:        genreNames(row.Genres),
		Cast:          row.Cast,
		AverageRating: row.AverageRating,
		RatingsCount:  row.RatingsCount,
	}
	if row.Director != nil {
		view.Director = &DirectorBrief{ID: row.Director.ID, Name: row.Director.Name}
	}
	return view
}

// genreNames guarantees the projection renders [] rather than null.
func genreNames(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
