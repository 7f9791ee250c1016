package models

// BatchResult is the outcome of one classification run: every processed record
// in input order, plus the genre bucket fan-out. Superseded wholesale by the
// next run, never persisted.
type BatchResult struct {
	ID      string                   `json:"id"`
	Records []MovieRecord            `json:"records"`
	Genres  map[string][]MovieRecord `json:"genres"`
}

// Statistics aggregates the most recent classification batch.
type Statistics struct {
	TotalMovies    int            `json:"totalMovies"`
	FoundMovies    int            `json:"foundMovies"`
	NotFoundMovies int            `json:"notFoundMovies"`
	UnknownGenres  int            `json:"unknownGenres"`
	GenreCounts    map[string]int `json:"genreCounts"`
	SuccessRate    float64        `json:"successRate"` // found/total as a percentage
	AverageRating  float64        `json:"averageRating"`
	RatingData     []float64      `json:"ratingData"`
	// RatingCategories is a fixed five-bucket histogram over found ratings,
	// lower bound inclusive, with the top bucket including 10.
	RatingCategories map[string]int `json:"ratingCategories"`
	TopRated         []MovieRecord  `json:"topRated"` // up to five, descending rating, input order on ties
	TotalRatings     int            `json:"totalRatings"`
}
