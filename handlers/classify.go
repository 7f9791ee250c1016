package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"cinedex/models"
	"cinedex/services/classifier"
)

type classifierService interface {
	ClassifyMovies(ctx context.Context, titles []string, progress func(done, total int)) *models.BatchResult
	SearchSingleMovie(ctx context.Context, title string) (models.MovieRecord, error)
	LastBatch() *models.BatchResult
	Statistics() models.Statistics
}

var _ classifierService = (*classifier.Service)(nil)

type ClassifyHandler struct {
	Service classifierService
}

func NewClassifyHandler(service classifierService) *ClassifyHandler {
	return &ClassifyHandler{Service: service}
}

// Lookup handles POST /api/lookup: one provider lookup, persisted when found.
func (h *ClassifyHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title string `json:"title"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.Service.SearchSingleMovie(r.Context(), body.Title)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, classifier.ErrTitleRequired) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

type classifyResponse struct {
	BatchID         string                          `json:"batchId"`
	ProcessedTitles int                             `json:"processedTitles"`
	SkippedTitles   int                             `json:"skippedTitles"`
	Genres          map[string][]models.MovieRecord `json:"genres"`
	Statistics      models.Statistics               `json:"statistics"`
}

// Classify handles POST /api/classify. The body is either JSON
// ({"titles": [...]} or a bare array) or plain text with one title per line;
// text/csv bodies take the first column of each data row. Invalid entries are
// skipped and counted, never aborting the valid remainder.
func (h *ClassifyHandler) Classify(w http.ResponseWriter, r *http.Request) {
	titles, skipped, err := readBatchTitles(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(titles) == 0 {
		http.Error(w, "no valid titles in request", http.StatusBadRequest)
		return
	}

	batch := h.Service.ClassifyMovies(r.Context(), titles, func(done, total int) {
		log.Printf("[classify] processing %d/%d", done, total)
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(classifyResponse{
		BatchID:         batch.ID,
		ProcessedTitles: len(titles),
		SkippedTitles:   skipped,
		Genres:          batch.Genres,
		Statistics:      h.Service.Statistics(),
	})
}

// Stats handles GET /api/stats: aggregates over the most recent batch only.
func (h *ClassifyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Service.Statistics())
}
