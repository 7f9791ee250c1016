package classifier

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cinedex/models"
)

// ErrTitleRequired is returned when a lookup is requested for a blank title.
var ErrTitleRequired = errors.New("movie title is required")

// DefaultGenres is the closed set of genre buckets. Provider genres outside
// this set fall back to the Unknown bucket.
var DefaultGenres = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime",
	"Documentary", "Drama", "Family", "Fantasy", "History",
	"Horror", "Music", "Mystery", "Romance", "Science Fiction",
	"Thriller", "War", "Western", "Unknown",
}

const defaultPacingDelay = 200 * time.Millisecond

var recognizedGenres = func() map[string]struct{} {
	set := make(map[string]struct{}, len(DefaultGenres))
	for _, g := range DefaultGenres {
		set[g] = struct{}{}
	}
	return set
}()

// Provider resolves one movie title to a normalized record.
type Provider interface {
	Lookup(ctx context.Context, title string) models.MovieRecord
}

// MovieStore persists found records.
type MovieStore interface {
	Upsert(record models.MovieRecord) (int64, error)
}

// Service drives a batch of title lookups to completion: fetch, persist,
// bucket by genre, and derive statistics over the most recent batch. Lookups
// run strictly sequentially; there is no cancellation once a batch starts.
type Service struct {
	provider Provider
	store    MovieStore

	// PacingDelay is slept after every lookup, regardless of outcome, to
	// bound request rate against the provider. Tests set it to zero.
	PacingDelay time.Duration

	mu        sync.Mutex
	lastBatch *models.BatchResult
}

func NewService(provider Provider, store MovieStore) *Service {
	return &Service{
		provider:    provider,
		store:       store,
		PacingDelay: defaultPacingDelay,
	}
}

// ClassifyMovies runs one classification batch over titles, in input order.
// Found records are upserted into the store (a failed write is logged and the
// run continues); every record is filed into its genre buckets. The progress
// callback, when non-nil, is invoked synchronously before each lookup with
// (current, total). The previous batch is discarded when the run starts.
func (s *Service) ClassifyMovies(ctx context.Context, titles []string, progress func(done, total int)) *models.BatchResult {
	batch := &models.BatchResult{
		ID:      uuid.NewString(),
		Records: []models.MovieRecord{},
		Genres:  make(map[string][]models.MovieRecord, len(DefaultGenres)),
	}
	for _, genre := range DefaultGenres {
		batch.Genres[genre] = []models.MovieRecord{}
	}

	s.mu.Lock()
	s.lastBatch = nil
	s.mu.Unlock()

	total := len(titles)
	for i, title := range titles {
		if progress != nil {
			progress(i+1, total)
		}

		record := s.provider.Lookup(ctx, strings.TrimSpace(title))
		batch.Records = append(batch.Records, record)

		if record.Found() {
			if _, err := s.store.Upsert(record); err != nil {
				log.Printf("[classifier] failed to store %q: %v", record.Title, err)
			}
		}

		for _, bucket := range s.bucketsFor(record) {
			batch.Genres[bucket] = append(batch.Genres[bucket], record)
		}

		time.Sleep(s.PacingDelay)
	}

	s.mu.Lock()
	s.lastBatch = batch
	s.mu.Unlock()
	return batch
}

// SearchSingleMovie looks up one title and persists it when found.
func (s *Service) SearchSingleMovie(ctx context.Context, title string) (models.MovieRecord, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.MovieRecord{}, ErrTitleRequired
	}

	record := s.provider.Lookup(ctx, title)
	if record.Found() {
		if _, err := s.store.Upsert(record); err != nil {
			log.Printf("[classifier] failed to store %q: %v", record.Title, err)
		}
	}
	return record, nil
}

// LastBatch returns the most recent batch result, or nil when no batch has
// run since startup.
func (s *Service) LastBatch() *models.BatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBatch
}

// bucketsFor maps a record's genres onto the recognized bucket set. A record
// with no usable genres files under Unknown once; an unrecognized genre name
// files under Unknown per occurrence. A record with several recognized genres
// fans out into each bucket.
func (s *Service) bucketsFor(record models.MovieRecord) []string {
	if record.HasUnknownGenre() {
		return []string{"Unknown"}
	}
	// a cases.Caser holds transform state and is not safe for concurrent
	// use, so each call gets its own
	caser := cases.Title(language.English)
	buckets := make([]string, 0, len(record.Genres))
	for _, genre := range record.Genres {
		name := caser.String(strings.TrimSpace(genre))
		if _, ok := recognizedGenres[name]; ok {
			buckets = append(buckets, name)
		} else {
			buckets = append(buckets, "Unknown")
		}
	}
	return buckets
}

// Statistics aggregates the most recent batch. With no batch (or an empty
// one) it returns zero-valued statistics with the histogram keys present.
func (s *Service) Statistics() models.Statistics {
	s.mu.Lock()
	batch := s.lastBatch
	s.mu.Unlock()

	stats := models.Statistics{
		GenreCounts: map[string]int{},
		RatingData:  []float64{},
		RatingCategories: map[string]int{
			"Excellent (9-10)": 0,
			"Good (7-8.9)":     0,
			"Average (5-6.9)":  0,
			"Poor (3-4.9)":     0,
			"Bad (0-2.9)":      0,
		},
		TopRated: []models.MovieRecord{},
	}
	if batch == nil || len(batch.Records) == 0 {
		return stats
	}

	rated := []models.MovieRecord{}
	ratingSum := 0.0
	for _, record := range batch.Records {
		stats.TotalMovies++
		if record.Found() {
			stats.FoundMovies++
		}
		if record.HasUnknownGenre() {
			stats.UnknownGenres++
		}
		for _, genre := range record.Genres {
			stats.GenreCounts[genre]++
		}

		rating, ok := record.RatingValue()
		if !ok || !record.Found() {
			continue
		}
		stats.RatingData = append(stats.RatingData, rating)
		ratingSum += rating
		rated = append(rated, record)

		switch {
		case rating >= 9:
			stats.RatingCategories["Excellent (9-10)"]++
		case rating >= 7:
			stats.RatingCategories["Good (7-8.9)"]++
		case rating >= 5:
			stats.RatingCategories["Average (5-6.9)"]++
		case rating >= 3:
			stats.RatingCategories["Poor (3-4.9)"]++
		default:
			stats.RatingCategories["Bad (0-2.9)"]++
		}
	}

	stats.NotFoundMovies = stats.TotalMovies - stats.FoundMovies
	stats.TotalRatings = len(stats.RatingData)
	if stats.TotalMovies > 0 {
		stats.SuccessRate = float64(stats.FoundMovies) / float64(stats.TotalMovies) * 100
	}
	if len(stats.RatingData) > 0 {
		stats.AverageRating = math.Round(ratingSum/float64(len(stats.RatingData))*100) / 100
	}

	// Stable sort keeps input order on rating ties.
	sort.SliceStable(rated, func(i, j int) bool {
		ri, _ := rated[i].RatingValue()
		rj, _ := rated[j].RatingValue()
		return ri > rj
	})
	if len(rated) > 5 {
		rated = rated[:5]
	}
	stats.TopRated = rated

	return stats
}
