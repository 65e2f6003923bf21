package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/cinelog/movie-rating-api/internal/config"
	"github.com/cinelog/movie-rating-api/internal/store"
)

type movieFixture struct {
	title       string
	director    string
	releaseYear int
	cast        string
	genres      []string
	scores      []int
}

var directorFixtures = map[string]int{
	"Christopher Nolan": 1970,
	"Denis Villeneuve":  1967,
	"Greta Gerwig":      1983,
}

var genreFixtures = []string{"Sci-Fi", "Thriller", "Drama", "Comedy"}

var movieFixtures = []movieFixture{
	{
		title:       "Inception",
		director:    "Christopher Nolan",
		releaseYear: 2010,
		cast:        "Leonardo DiCaprio, Joseph Gordon-Levitt, Elliot Page",
		genres:      []string{"Sci-Fi", "Thriller"},
		scores:      []int{9, 8, 10},
	},
	{
		title:       "Arrival",
		director:    "Denis Villeneuve",
		releaseYear: 2016,
		cast:        "Amy Adams, Jeremy Renner",
		genres:      []string{"Sci-Fi", "Drama"},
		scores:      []int{8, 9},
	},
	{
		title:       "Lady Bird",
		director:    "Greta Gerwig",
		releaseYear: 2017,
		cast:        "Saoirse Ronan, Laurie Metcalf",
		genres:      []string{"Drama", "Comedy"},
		scores:      []int{7, 8, 8},
	},
}

// Seeds a small fixture dataset so a fresh database has something to
// browse. Safe to re-run: every insert is keyed on a natural identifier.
func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("tool", "seed").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.New(ctx, cfg.DBURL, store.Options{
		MaxConns: 2,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer st.Close()

	pool := st.Pool()

	directorIDs := make(map[string]int64, len(directorFixtures))
	for name, birthYear := range directorFixtures {
		var id int64
		err := pool.QueryRow(ctx, `SELECT id FROM directors WHERE name = $1`, name).Scan(&id)
		if err != nil {
			err = pool.QueryRow(ctx,
				`INSERT INTO directors (name, birth_year) VALUES ($1, $2) RETURNING id`,
				name, birthYear).Scan(&id)
			if err != nil {
				logger.Fatal().Err(err).Str("director", name).Msg("seed director")
			}
		}
		directorIDs[name] = id
	}

	genreIDs := make(map[string]int64, len(genreFixtures))
	for _, name := range genreFixtures {
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO genres (name) VALUES ($1)
			 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`, name).Scan(&id)
		if err != nil {
			logger.Fatal().Err(err).Str("genre", name).Msg("seed genre")
		}
		genreIDs[name] = id
	}

	for _, fixture := range movieFixtures {
		var movieID int64
		err := pool.QueryRow(ctx, `SELECT id FROM movies WHERE title = $1`, fixture.title).Scan(&movieID)
		if err != nil {
			err = pool.QueryRow(ctx,
				`INSERT INTO movies (title, release_year, "cast", director_id)
				 VALUES ($1, $2, $3, $4) RETURNING id`,
				fixture.title, fixture.releaseYear, fixture.cast, directorIDs[fixture.director]).Scan(&movieID)
			if err != nil {
				logger.Fatal().Err(err).Str("movie", fixture.title).Msg("seed movie")
			}
			for _, genre := range fixture.genres {
				if _, err := pool.Exec(ctx,
					`INSERT INTO movie_genres (movie_id, genre_id) VALUES ($1, $2)
					 ON CONFLICT DO NOTHING`, movieID, genreIDs[genre]); err != nil {
					logger.Fatal().Err(err).Str("movie", fixture.title).Str("genre", genre).Msg("seed movie genre")
				}
			}
			for _, score := range fixture.scores {
				if _, err := pool.Exec(ctx,
					`INSERT INTO movie_ratings (movie_id, score) VALUES ($1, $2)`,
					movieID, score); err != nil {
					logger.Fatal().Err(err).Str("movie", fixture.title).Int("score", score).Msg("seed rating")
				}
			}
		}
	}

	for _, table := range []string{"directors", "genres", "movies", "movie_genres", "movie_ratings"} {
		var count int64
		if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count); err != nil {
			logger.Fatal().Err(err).Str("table", table).Msg("count rows")
		}
		logger.Info().Str("table", table).Int64("rows", count).Msg("seeded")
	}
}
