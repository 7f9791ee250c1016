package database

import (
	"database/sql"
	"fmt"
	"strings"

	"cinedex/models"
)

// MovieRepository provides CRUD over the movies table.
type MovieRepository struct {
	db *sql.DB
}

func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Upsert writes or replaces the (title, year) row and returns its id. A
// conflicting row keeps its id; every metadata column takes the new record's
// value, so a re-lookup is last-write-wins without breaking watchlist
// memberships.
func (r *MovieRepository) Upsert(record models.MovieRecord) (int64, error) {
	var rating *float64
	if v, ok := record.RatingValue(); ok {
		rating = &v
	}

	_, err := r.db.Exec(`
		INSERT INTO movies (title, year, genres, rating, director, actors, runtime, overview, poster_url, imdb_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (title, year) DO UPDATE SET
			genres = excluded.genres,
			rating = excluded.rating,
			director = excluded.director,
			actors = excluded.actors,
			runtime = excluded.runtime,
			overview = excluded.overview,
			poster_url = excluded.poster_url,
			imdb_id = excluded.imdb_id`,
		record.Title, record.Year, strings.Join(record.Genres, ", "), rating,
		record.Director, record.Actors, record.Runtime, record.Overview,
		record.PosterURL, record.ImdbID)
	if err != nil {
		return 0, fmt.Errorf("upsert movie: %w", err)
	}

	var id int64
	err = r.db.QueryRow(`SELECT id FROM movies WHERE title = ? AND year = ?`,
		record.Title, record.Year).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("resolve movie id: %w", err)
	}
	return id, nil
}

// List returns every stored movie, newest insertion first.
func (r *MovieRepository) List() ([]models.CatalogMovie, error) {
	rows, err := r.db.Query(`
		SELECT id, title, year, genres, rating, director, actors, runtime, overview, poster_url, imdb_id, date_added
		FROM movies
		ORDER BY date_added DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()
	return scanMovies(rows)
}

// Search matches the query case-insensitively as a substring of title, genres,
// director, or actors, ordered by descending rating.
func (r *MovieRepository) Search(query string) ([]models.CatalogMovie, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.Query(`
		SELECT id, title, year, genres, rating, director, actors, runtime, overview, poster_url, imdb_id, date_added
		FROM movies
		WHERE title LIKE ? OR genres LIKE ? OR director LIKE ? OR actors LIKE ?
		ORDER BY rating DESC`,
		pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	defer rows.Close()
	return scanMovies(rows)
}

func scanMovies(rows *sql.Rows) ([]models.CatalogMovie, error) {
	movies := []models.CatalogMovie{}
	for rows.Next() {
		var m models.CatalogMovie
		var rating sql.NullFloat64
		if err := rows.Scan(&m.ID, &m.Title, &m.Year, &m.Genres, &rating,
			&m.Director, &m.Actors, &m.Runtime, &m.Overview,
			&m.PosterURL, &m.ImdbID, &m.DateAdded); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		if rating.Valid {
			v := rating.Float64
			m.Rating = &v
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}
