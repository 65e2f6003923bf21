package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelog/movie-rating-api/internal/domain"
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

// Genre names, average rating, and rating count come from scalar
// subqueries so a page query never multiplies movie rows through joins.
// AVG is rounded to one decimal in SQL; it is NULL for zero ratings.
const movieRelationColumns = `
    (SELECT COALESCE(array_agg(g.name ORDER BY g.name), '{}')
       FROM movie_genres mg
       JOIN genres g ON g.id = mg.genre_id
      WHERE mg.movie_id = m.id),
    (SELECT ROUND(AVG(r.score)::numeric, 1)::float8
       FROM movie_ratings r
      WHERE r.movie_id = m.id),
    (SELECT COUNT(*)
       FROM movie_ratings r
      WHERE r.movie_id = m.id)
`

// DirectorBrief is the reduced director shape carried by list rows.
type DirectorBrief struct {
	ID   int64
	Name string
}

// MovieListRow is one movie as returned by ListPaginated, with its
// relations already resolved.
type MovieListRow struct {
	ID            int64
	Title         string
	ReleaseYear   *int
	Director      *DirectorBrief
	Genres        []string
	AverageRating *float64
	RatingsCount  int64
}

// MovieDetailRow is a movie with full director detail, as returned by GetByID.
type MovieDetailRow struct {
	ID            int64
	Title         string
	ReleaseYear   *int
	Cast          *string
	Director      *domain.Director
	Genres        []string
	AverageRating *float64
	RatingsCount  int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MovieListParams encapsulates pagination and the conjunctive filters.
type MovieListParams struct {
	Page        int
	PageSize    int
	Title       *string
	ReleaseYear *int
	Genre       *string
}

// MovieCreateParams bundles the fields required to create a movie.
type MovieCreateParams struct {
	Title       string
	ReleaseYear *int
	Cast        *string
	DirectorID  int64
}

// MovieUpdateParams carries a partial update. Pointer fields that are nil
// are left unchanged; title and director can never be cleared. ReleaseYear
// and Cast distinguish "absent" from "explicit null" so a null can clear
// them. A non-nil Genres replaces the whole association set, even when
// empty.
type MovieUpdateParams struct {
	Title       *string
	DirectorID  *int64
	ReleaseYear domain.Optional[int]
	Cast        domain.Optional[string]
	Genres      *[]int64
}

// ListPaginated returns one page of movies matching the filters plus the
// total match count. Page is 1-indexed; the count ignores pagination.
func (r *MoviesRepository) ListPaginated(ctx context.Context, params MovieListParams) ([]MovieListRow, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = 10
	} else if params.PageSize > 100 {
		params.PageSize = 100
	}

	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.Title != nil && strings.TrimSpace(*params.Title) != "" {
		where = append(where, fmt.Sprintf("m.title ILIKE %s", arg("%"+strings.TrimSpace(*params.Title)+"%")))
	}
	if params.ReleaseYear != nil {
		where = append(where, fmt.Sprintf("m.release_year = %s", arg(*params.ReleaseYear)))
	}
	if params.Genre != nil && strings.TrimSpace(*params.Genre) != "" {
		// EXISTS keeps the result set duplicate-free even when several
		// genres of one movie match the substring.
		where = append(where, fmt.Sprintf(`EXISTS (
            SELECT 1 FROM movie_genres mg
            JOIN genres g ON g.id = mg.genre_id
            WHERE mg.movie_id = m.id AND g.name ILIKE %s
        )`, arg("%"+strings.TrimSpace(*params.Genre)+"%")))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM movies m" + whereClause
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	pageQuery := fmt.Sprintf(`
        SELECT m.id, m.title, m.release_year, d.id, d.name, %s
        FROM movies m
        LEFT JOIN directors d ON d.id = m.director_id
        %s
        ORDER BY m.id
        LIMIT %s OFFSET %s
    `, movieRelationColumns, whereClause, arg(params.PageSize), arg((params.Page-1)*params.PageSize))

	rows, err := r.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	items := make([]MovieListRow, 0, params.PageSize)
	for rows.Next() {
		var (
			item         MovieListRow
			directorID   *int64
			directorName *string
		)
		err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.ReleaseYear,
			&directorID,
			&directorName,
			&item.Genres,
			&item.AverageRating,
			&item.RatingsCount,
		)
		if err != nil {
			return nil, 0, err
		}
		if directorID != nil && directorName != nil {
			item.Director = &DirectorBrief{ID: *directorID, Name: *directorName}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetByID fetches a movie by its identifier with director, genres, and
// rating aggregates eagerly resolved.
func (r *MoviesRepository) GetByID(ctx context.Context, id int64) (MovieDetailRow, error) {
	query := fmt.Sprintf(`
        SELECT m.id, m.title, m.release_year, m."cast",
               d.id, d.name, d.birth_year, d.description,
               %s,
               m.created_at, m.updated_at
        FROM movies m
        LEFT JOIN directors d ON d.id = m.director_id
        WHERE m.id = $1
    `, movieRelationColumns)

	var (
		detail       MovieDetailRow
		directorID   *int64
		directorName *string
		birthYear    *int
		description  *string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.Title,
		&detail.ReleaseYear,
		&detail.Cast,
		&directorID,
		&directorName,
		&birthYear,
		&description,
		&detail.Genres,
		&detail.AverageRating,
		&detail.RatingsCount,
		&detail.CreatedAt,
		&detail.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return MovieDetailRow{}, ErrNotFound
		}
		return MovieDetailRow{}, err
	}
	if directorID != nil && directorName != nil {
		detail.Director = &domain.Director{
			ID:          *directorID,
			Name:        *directorName,
			BirthYear:   birthYear,
			Description: description,
		}
	}
	return detail, nil
}

// Exists reports whether a movie row with the given id is present.
func (r *MoviesRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("movie exists: %w", err)
	}
	return exists, nil
}

// CreateWithGenres inserts a movie row and its genre associations in one
// transaction, so a failure during the sync never leaves a half-created
// movie behind.
func (r *MoviesRepository) CreateWithGenres(ctx context.Context, params MovieCreateParams, genreIDs []int64) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin create movie: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
        INSERT INTO movies (title, release_year, "cast", director_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, params.Title, params.ReleaseYear, params.Cast, params.DirectorID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert movie: %w", err)
	}

	if err := syncGenres(ctx, tx, id, genreIDs); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit create movie: %w", err)
	}
	return id, nil
}

// UpdateWithGenres applies a partial update and, when requested, replaces
// the full genre association set, all within one transaction. Returns
// ErrNotFound when the movie does not exist.
func (r *MoviesRepository) UpdateWithGenres(ctx context.Context, id int64, params MovieUpdateParams) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update movie: %w", err)
	}
	defer tx.Rollback(ctx)

	set := []string{"updated_at = now()"}
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.Title != nil {
		set = append(set, fmt.Sprintf("title = %s", arg(*params.Title)))
	}
	if params.DirectorID != nil {
		set = append(set, fmt.Sprintf("director_id = %s", arg(*params.DirectorID)))
	}
	if params.ReleaseYear.Set {
		// A nil value encodes SQL NULL, clearing the column.
		set = append(set, fmt.Sprintf("release_year = %s", arg(params.ReleaseYear.Value)))
	}
	if params.Cast.Set {
		set = append(set, fmt.Sprintf(`"cast" = %s`, arg(params.Cast.Value)))
	}

	query := fmt.Sprintf(`UPDATE movies SET %s WHERE id = %s`, strings.Join(set, ", "), arg(id))
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if params.Genres != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, id); err != nil {
			return fmt.Errorf("clear movie genres: %w", err)
		}
		if err := syncGenres(ctx, tx, id, *params.Genres); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update movie: %w", err)
	}
	return nil
}

// Delete removes a movie; ratings and genre associations go with it via
// ON DELETE CASCADE. Returns ErrNotFound when no row was removed.
func (r *MoviesRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func syncGenres(ctx context.Context, tx pgx.Tx, movieID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
        INSERT INTO movie_genres (movie_id, genre_id)
        SELECT $1, unnest($2::bigint[])
        ON CONFLICT DO NOTHING
    `, movieID, genreIDs)
	if err != nil {
		return fmt.Errorf("attach movie genres: %w", err)
	}
	return nil
}
