package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"cinedex/models"
)

var (
	// ErrDuplicateName is returned when a watchlist name is already taken.
	ErrDuplicateName = errors.New("watchlist name already exists")
	// ErrDuplicateMovie is returned when a movie is already on the watchlist.
	ErrDuplicateMovie = errors.New("movie already in watchlist")
	// ErrNotFound is returned when the referenced watchlist or movie does not exist.
	ErrNotFound = errors.New("watchlist or movie not found")
)

// WatchlistRepository provides CRUD over watchlists and their memberships.
type WatchlistRepository struct {
	db *sql.DB
}

func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Create adds a new named watchlist. A duplicate name yields ErrDuplicateName.
func (r *WatchlistRepository) Create(name, description string) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO watchlists (name, description) VALUES (?, ?)`,
		name, description)
	if err != nil {
		if isConstraintErr(err, sqlite3.ErrConstraintUnique) {
			return 0, ErrDuplicateName
		}
		return 0, fmt.Errorf("create watchlist: %w", err)
	}
	return res.LastInsertId()
}

// List returns every watchlist with its movie count, newest first.
func (r *WatchlistRepository) List() ([]models.Watchlist, error) {
	rows, err := r.db.Query(`
		SELECT w.id, w.name, w.description, w.created_date, COUNT(wi.movie_id)
		FROM watchlists w
		LEFT JOIN watchlist_items wi ON w.id = wi.watchlist_id
		GROUP BY w.id
		ORDER BY w.created_date DESC, w.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list watchlists: %w", err)
	}
	defer rows.Close()

	watchlists := []models.Watchlist{}
	for rows.Next() {
		var w models.Watchlist
		var description sql.NullString
		if err := rows.Scan(&w.ID, &w.Name, &description, &w.CreatedAt, &w.MovieCount); err != nil {
			return nil, fmt.Errorf("scan watchlist: %w", err)
		}
		w.Description = description.String
		watchlists = append(watchlists, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return watchlists, nil
}

// AddMovie puts a movie on a watchlist. Adding the same movie twice yields
// ErrDuplicateMovie; an unknown watchlist or movie id yields ErrNotFound.
func (r *WatchlistRepository) AddMovie(watchlistID, movieID int64) error {
	_, err := r.db.Exec(`INSERT INTO watchlist_items (watchlist_id, movie_id) VALUES (?, ?)`,
		watchlistID, movieID)
	if err != nil {
		if isConstraintErr(err, sqlite3.ErrConstraintUnique) {
			return ErrDuplicateMovie
		}
		if isConstraintErr(err, sqlite3.ErrConstraintForeignKey) {
			return ErrNotFound
		}
		return fmt.Errorf("add to watchlist: %w", err)
	}
	return nil
}

// Movies returns the watchlist's movies, most recently added first.
func (r *WatchlistRepository) Movies(watchlistID int64) ([]models.CatalogMovie, error) {
	rows, err := r.db.Query(`
		SELECT m.id, m.title, m.year, m.genres, m.rating, m.director, m.actors, m.runtime, m.overview, m.poster_url, m.imdb_id, m.date_added
		FROM movies m
		JOIN watchlist_items wi ON m.id = wi.movie_id
		WHERE wi.watchlist_id = ?
		ORDER BY wi.added_date DESC, wi.id DESC`, watchlistID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist movies: %w", err)
	}
	defer rows.Close()
	return scanMovies(rows)
}

// Delete removes a watchlist and all of its membership rows in a single
// transaction, reporting whether the watchlist existed.
func (r *WatchlistRepository) Delete(watchlistID int64) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM watchlist_items WHERE watchlist_id = ?`, watchlistID); err != nil {
		return false, fmt.Errorf("delete watchlist items: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM watchlists WHERE id = ?`, watchlistID)
	if err != nil {
		return false, fmt.Errorf("delete watchlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete: %w", err)
	}
	return affected > 0, nil
}

func isConstraintErr(err error, code sqlite3.ErrNoExtended) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == code
}
