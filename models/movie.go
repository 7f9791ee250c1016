package models

import "strconv"

// RecordSource identifies where a MovieRecord came from.
type RecordSource string

const (
	SourceOMDb     RecordSource = "OMDb"
	SourceNotFound RecordSource = "Not Found"
)

// MovieRecord is one title's normalized metadata as produced by the provider
// client. Records are never mutated after creation; a re-lookup produces a
// fresh record that upserts the stored row.
type MovieRecord struct {
	Title     string       `json:"title"`
	Year      string       `json:"year"`   // 4-digit year or "Unknown"
	Genres    []string     `json:"genres"` // provider order preserved
	Overview  string       `json:"overview"`
	Rating    string       `json:"rating"` // numeric string, "" when the provider has none
	Votes     string       `json:"votes"`  // thousands separators stripped
	Director  string       `json:"director"`
	Actors    string       `json:"actors"`
	Runtime   string       `json:"runtime"`
	BoxOffice string       `json:"boxOffice"`
	PosterURL string       `json:"posterUrl"`
	Metascore string       `json:"metascore"` // critic score or "N/A"
	ImdbID    string       `json:"imdbId"`
	ImdbLink  string       `json:"imdbLink"`
	Source    RecordSource `json:"source"`
}

// Found reports whether the record came back from the provider rather than
// being a not-found placeholder.
func (m MovieRecord) Found() bool {
	return m.Source != SourceNotFound
}

// RatingValue parses the rating, reporting false when the record has none.
// A genuine "0.0" from the provider parses as a valid rating.
func (m MovieRecord) RatingValue() (float64, bool) {
	if m.Rating == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m.Rating, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// HasUnknownGenre reports whether the record carries no usable genre
// information (empty genre list or the literal Unknown placeholder).
func (m MovieRecord) HasUnknownGenre() bool {
	return len(m.Genres) == 0 || (len(m.Genres) == 1 && m.Genres[0] == "Unknown")
}

// NotFoundRecord returns the placeholder record for a title the provider could
// not resolve. Every metadata field holds its fixed placeholder value; a
// placeholder is never partially populated.
func NotFoundRecord(title string) MovieRecord {
	return MovieRecord{
		Title:     title,
		Year:      "Unknown",
		Genres:    []string{"Unknown"},
		Overview:  "No information available",
		Rating:    "",
		Votes:     "0",
		Director:  "Unknown",
		Actors:    "Unknown",
		Runtime:   "Unknown",
		BoxOffice: "Unknown",
		PosterURL: "",
		Metascore: "N/A",
		ImdbID:    "",
		ImdbLink:  "",
		Source:    SourceNotFound,
	}
}
