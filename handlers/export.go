package handlers

import (
	"encoding/csv"
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

// ExportHandler serves the last batch's records and statistics as downloads,
// mirroring the dashboard's export buttons.
type ExportHandler struct {
	Service classifierService
}

func NewExportHandler(service classifierService) *ExportHandler {
	return &ExportHandler{Service: service}
}

// ResultsCSV handles GET /api/export/results.csv.
func (h *ExportHandler) ResultsCSV(w http.ResponseWriter, r *http.Request) {
	batch := h.Service.LastBatch()
	if batch == nil {
		http.Error(w, "no batch has been processed", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="movie_classification_results.csv"`)

	writer := csv.NewWriter(w)
	writer.Write([]string{"Title", "Year", "Genres", "Rating", "Director", "Runtime", "IMDb_ID", "Source"})
	for _, record := range batch.Records {
		writer.Write([]string{
			record.Title,
			record.Year,
			strings.Join(record.Genres, ", "),
			record.Rating,
			record.Director,
			record.Runtime,
			record.ImdbID,
			string(record.Source),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("[export] failed to write results csv: %v", err)
	}
}

// ResultsJSON handles GET /api/export/results.json.
func (h *ExportHandler) ResultsJSON(w http.ResponseWriter, r *http.Request) {
	batch := h.Service.LastBatch()
	if batch == nil {
		http.Error(w, "no batch has been processed", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="movie_classification_results.json"`)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(batch.Records)
}

// StatsJSON handles GET /api/export/stats.json.
func (h *ExportHandler) StatsJSON(w http.ResponseWriter, r *http.Request) {
	if h.Service.LastBatch() == nil {
		http.Error(w, "no batch has been processed", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="movie_statistics.json"`)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(h.Service.Statistics())
}
