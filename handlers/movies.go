package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"cinedex/internal/database"
	"cinedex/models"
)

type movieRepository interface {
	List() ([]models.CatalogMovie, error)
	Search(query string) ([]models.CatalogMovie, error)
}

var _ movieRepository = (*database.MovieRepository)(nil)

type MovieHandler struct {
	Repo movieRepository
}

func NewMovieHandler(repo movieRepository) *MovieHandler {
	return &MovieHandler{Repo: repo}
}

// List handles GET /api/movies: every stored movie, newest first.
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	movies, err := h.Repo.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(movies)
}

// Search handles GET /api/movies/search?q=: case-insensitive substring match
// across title, genres, director, and actors, best rated first.
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		http.Error(w, "query parameter q is required", http.StatusBadRequest)
		return
	}

	movies, err := h.Repo.Search(query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(movies)
}
