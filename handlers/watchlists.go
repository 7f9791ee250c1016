package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"cinedex/internal/database"
	"cinedex/models"
)

type watchlistRepository interface {
	Create(name, description string) (int64, error)
	List() ([]models.Watchlist, error)
	AddMovie(watchlistID, movieID int64) error
	Movies(watchlistID int64) ([]models.CatalogMovie, error)
	Delete(watchlistID int64) (bool, error)
}

var _ watchlistRepository = (*database.WatchlistRepository)(nil)

type WatchlistHandler struct {
	Repo watchlistRepository
}

func NewWatchlistHandler(repo watchlistRepository) *WatchlistHandler {
	return &WatchlistHandler{Repo: repo}
}

// Create handles POST /api/watchlists. A duplicate name is a conflict, not a
// server error.
func (h *WatchlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		http.Error(w, "watchlist name is required", http.StatusBadRequest)
		return
	}

	id, err := h.Repo.Create(body.Name, body.Description)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateName) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int64{"id": id})
}

// List handles GET /api/watchlists: every watchlist with its movie count,
// newest first.
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	watchlists, err := h.Repo.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(watchlists)
}

// AddMovie handles POST /api/watchlists/{id}/movies. Duplicate membership is
// a conflict; the first add stands.
func (h *WatchlistHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	watchlistID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var body struct {
		MovieID int64 `json:"movieId"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.Repo.AddMovie(watchlistID, body.MovieID)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, database.ErrDuplicateMovie):
			status = http.StatusConflict
		case errors.Is(err, database.ErrNotFound):
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Movies handles GET /api/watchlists/{id}/movies, most recently added first.
func (h *WatchlistHandler) Movies(w http.ResponseWriter, r *http.Request) {
	watchlistID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	movies, err := h.Repo.Movies(watchlistID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(movies)
}

// Delete handles DELETE /api/watchlists/{id}. The watchlist and all of its
// membership rows go together.
func (h *WatchlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	watchlistID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.Repo.Delete(watchlistID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "watchlist not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WatchlistHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid watchlist id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
