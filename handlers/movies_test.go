package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinedex/models"
)

type fakeMovieRepo struct {
	movies    []models.CatalogMovie
	lastQuery string
}

func (f *fakeMovieRepo) List() ([]models.CatalogMovie, error) {
	return f.movies, nil
}

func (f *fakeMovieRepo) Search(query string) ([]models.CatalogMovie, error) {
	f.lastQuery = query
	return f.movies, nil
}

func TestMovieList(t *testing.T) {
	repo := &fakeMovieRepo{movies: []models.CatalogMovie{{ID: 1, Title: "The Matrix"}}}
	handler := NewMovieHandler(repo)

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/api/movies", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"The Matrix"`)
}

func TestMovieSearch_RequiresQuery(t *testing.T) {
	handler := NewMovieHandler(&fakeMovieRepo{})

	rec := httptest.NewRecorder()
	handler.Search(rec, httptest.NewRequest(http.MethodGet, "/api/movies/search?q=%20%20", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMovieSearch_TrimsQuery(t *testing.T) {
	repo := &fakeMovieRepo{}
	handler := NewMovieHandler(repo)

	rec := httptest.NewRecorder()
	handler.Search(rec, httptest.NewRequest(http.MethodGet, "/api/movies/search?q="+strings.ReplaceAll("  matrix  ", " ", "%20"), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "matrix", repo.lastQuery)
}
