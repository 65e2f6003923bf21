package httpserver

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/cinelog/movie-rating-api/internal/domain"
	"github.com/cinelog/movie-rating-api/internal/service"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
	minReleaseYear  = 1800
	maxReleaseYear  = 2100
)

type movieCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	DirectorID  int64   `json:"director_id" validate:"required"`
	ReleaseYear *int    `json:"release_year" validate:"omitempty,gte=1800,lte=2100"`
	Cast        *string `json:"cast"`
	Genres      []int64 `json:"genres"`
}

// movieUpdateRequest keeps every field optional so that "absent" and
// "explicit null" stay distinguishable after decoding.
type movieUpdateRequest struct {
	Title       domain.Optional[string]  `json:"title"`
	DirectorID  domain.Optional[int64]   `json:"director_id"`
	ReleaseYear domain.Optional[int]     `json:"release_year"`
	Cast        domain.Optional[string]  `json:"cast"`
	Genres      domain.Optional[[]int64] `json:"genres"`
}

// toInput validates the supplied fields and converts them to the service
// shape. Title and director_id may be omitted but never nulled.
func (req movieUpdateRequest) toInput() (service.MovieUpdateInput, error) {
	var input service.MovieUpdateInput

	if req.Title.Set {
		if req.Title.Value == nil {
			return input, domain.Validation("title cannot be null")
		}
		title := strings.TrimSpace(*req.Title.Value)
		// Rune count, matching the max=255 validator tag on create.
		if title == "" || utf8.RuneCountInString(title) > 255 {
			return input, domain.Validation("title must be between 1 and 255 characters")
		}
		input.Title = &title
	}
	if req.DirectorID.Set {
		if req.DirectorID.Value == nil {
			return input, domain.Validation("director_id cannot be null")
		}
		input.DirectorID = req.DirectorID.Value
	}
	if req.ReleaseYear.Set {
		if req.ReleaseYear.Value != nil {
			year := *req.ReleaseYear.Value
			if year < minReleaseYear || year > maxReleaseYear {
				return input, domain.Validation(fmt.Sprintf("release_year must be between %d and %d", minReleaseYear, maxReleaseYear))
			}
		}
		input.ReleaseYear = req.ReleaseYear
	}
	if req.Cast.Set {
		input.Cast = req.Cast
	}
	// A null genres value is treated like an absent field; only a real
	// list triggers the replace-all sync.
	if req.Genres.Set && req.Genres.Value != nil {
		input.Genres = req.Genres.Value
	}
	return input, nil
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	page, pageSize, filters, err := buildMovieListQuery(r.URL.Query())
	if err != nil {
		s.respondFailure(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	list, err := s.movies.List(r.Context(), page, pageSize, filters)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondSuccess(w, http.StatusOK, list)
}

func buildMovieListQuery(query url.Values) (int, int, service.MovieFilters, error) {
	page := defaultPage
	pageSize := defaultPageSize
	var filters service.MovieFilters

	if val := strings.TrimSpace(query.Get("page")); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil || parsed < 1 {
			return 0, 0, filters, fmt.Errorf("page must be an integer greater than or equal to 1")
		}
		page = parsed
	}
	if val := strings.TrimSpace(query.Get("page_size")); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil || parsed < 1 || parsed > maxPageSize {
			return 0, 0, filters, fmt.Errorf("page_size must be an integer between 1 and %d", maxPageSize)
		}
		pageSize = parsed
	}
	if val := strings.TrimSpace(query.Get("title")); val != "" {
		filters.Title = &val
	}
	if val := strings.TrimSpace(query.Get("release_year")); val != "" {
		year, err := strconv.Atoi(val)
		if err != nil || year < minReleaseYear || year > maxReleaseYear {
			return 0, 0, filters, fmt.Errorf("release_year must be an integer between %d and %d", minReleaseYear, maxReleaseYear)
		}
		filters.ReleaseYear = &year
	}
	if val := strings.TrimSpace(query.Get("genre")); val != "" {
		filters.Genre = &val
	}
	return page, pageSize, filters, nil
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := movieIDParam(r)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	detail, err := s.movies.Get(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondSuccess(w, http.StatusOK, detail)
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	var req movieCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	// Trim before validating so a whitespace-only title fails min=1.
	req.Title = strings.TrimSpace(req.Title)
	if err := validateStruct(req); err != nil {
		s.respondFailure(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	view, err := s.movies.Create(r.Context(), service.MovieCreateInput{
		Title:       req.Title,
		DirectorID:  req.DirectorID,
		ReleaseYear: req.ReleaseYear,
		Cast:        req.Cast,
		Genres:      req.Genres,
	})
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondSuccess(w, http.StatusCreated, view)
}

func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := movieIDParam(r)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	var req movieUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	view, err := s.movies.Update(r.Context(), id, input)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondSuccess(w, http.StatusOK, view)
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := movieIDParam(r)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	if err := s.movies.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func movieIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, domain.Validation("movie id must be a positive integer")
	}
	return id, nil
}
