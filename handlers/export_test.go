package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinedex/models"
)

func TestExportResultsCSV(t *testing.T) {
	service := &fakeClassifierService{batch: &models.BatchResult{
		ID: "batch-1",
		Records: []models.MovieRecord{
			{Title: "The Matrix", Year: "1999", Genres: []string{"Action", "Sci-Fi"}, Rating: "8.7", Director: "Lana Wachowski", Runtime: "136 min", ImdbID: "tt0133093", Source: models.SourceOMDb},
			models.NotFoundRecord("Zzzmiss"),
		},
	}}
	handler := NewExportHandler(service)

	rec := httptest.NewRecorder()
	handler.ResultsCSV(rec, httptest.NewRequest(http.MethodGet, "/api/export/results.csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "movie_classification_results.csv")

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two records")
	assert.Equal(t, []string{"Title", "Year", "Genres", "Rating", "Director", "Runtime", "IMDb_ID", "Source"}, rows[0])
	assert.Equal(t, "The Matrix", rows[1][0])
	assert.Equal(t, "Action, Sci-Fi", rows[1][2])
	assert.Equal(t, "Not Found", rows[2][7])
}

func TestExport_NoBatch(t *testing.T) {
	handler := NewExportHandler(&fakeClassifierService{})

	for _, serve := range []http.HandlerFunc{handler.ResultsCSV, handler.ResultsJSON, handler.StatsJSON} {
		rec := httptest.NewRecorder()
		serve(rec, httptest.NewRequest(http.MethodGet, "/api/export", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
}

// brokenResponseWriter fails every body write, as a closed client connection
// would.
type brokenResponseWriter struct {
	header http.Header
}

func (w *brokenResponseWriter) Header() http.Header {
	if w.header == nil {
		w.header = http.Header{}
	}
	return w.header
}

func (w *brokenResponseWriter) WriteHeader(int) {}

func (w *brokenResponseWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestExportResultsCSV_WriteFailureIsLogged(t *testing.T) {
	service := &fakeClassifierService{batch: &models.BatchResult{
		ID:      "batch-1",
		Records: []models.MovieRecord{models.NotFoundRecord("Zzzmiss")},
	}}
	handler := NewExportHandler(service)

	var logged bytes.Buffer
	log.SetOutput(&logged)
	defer log.SetOutput(os.Stderr)

	handler.ResultsCSV(&brokenResponseWriter{}, httptest.NewRequest(http.MethodGet, "/api/export/results.csv", nil))

	assert.Contains(t, logged.String(), "failed to write results csv")
}

func TestExportResultsJSON(t *testing.T) {
	service := &fakeClassifierService{batch: &models.BatchResult{
		ID:      "batch-1",
		Records: []models.MovieRecord{models.NotFoundRecord("Zzzmiss")},
	}}
	handler := NewExportHandler(service)

	rec := httptest.NewRecorder()
	handler.ResultsJSON(rec, httptest.NewRequest(http.MethodGet, "/api/export/results.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Zzzmiss"`)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "movie_classification_results.json")
}
