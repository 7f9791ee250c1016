package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cinedex/models"
)

const (
	defaultBaseURL = "https://www.omdbapi.com/"
	requestTimeout = 10 * time.Second
	imdbTitleURL   = "https://www.imdb.com/title/"
)

// errNoMatch marks a well-formed provider response that carried no movie.
var errNoMatch = errors.New("no match")

// Client looks up movie titles against the OMDb API and normalizes responses
// into models.MovieRecord. Every call issues exactly one request: no retries,
// no caching.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func NewClient(apiKey, baseURL string, httpc *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: requestTimeout}
	}
	return &Client{apiKey: apiKey, baseURL: baseURL, httpc: httpc}
}

// omdbResponse is the flat field set OMDb returns for a title lookup.
type omdbResponse struct {
	Response  string `json:"Response"`
	Error     string `json:"Error"`
	Title     string `json:"Title"`
	Genre     string `json:"Genre"`
	Year      string `json:"Year"`
	Plot      string `json:"Plot"`
	Rating    string `json:"imdbRating"`
	Votes     string `json:"imdbVotes"`
	Director  string `json:"Director"`
	Actors    string `json:"Actors"`
	Runtime   string `json:"Runtime"`
	BoxOffice string `json:"BoxOffice"`
	Poster    string `json:"Poster"`
	Metascore string `json:"Metascore"`
	ImdbID    string `json:"imdbID"`
}

// Lookup resolves one title to a normalized record. Transport failures and
// provider misses both collapse to the not-found placeholder, but they are
// logged under distinct messages so the process log can tell a flaky network
// from a genuinely absent title.
func (c *Client) Lookup(ctx context.Context, title string) models.MovieRecord {
	data, err := c.search(ctx, title)
	if err != nil {
		if errors.Is(err, errNoMatch) {
			log.Printf("[omdb] no match for %q", title)
		} else {
			log.Printf("[omdb] lookup failed for %q: %v", title, err)
		}
		return models.NotFoundRecord(title)
	}
	return normalizeRecord(title, data)
}

func (c *Client) search(ctx context.Context, title string) (*omdbResponse, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("t", title)
	q.Set("type", "movie")
	q.Set("plot", "short")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("omdb get failed: %s", resp.Status)
	}

	var data omdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	if data.Response != "True" {
		return nil, errNoMatch
	}
	return &data, nil
}

func normalizeRecord(title string, data *omdbResponse) models.MovieRecord {
	rec := models.MovieRecord{
		Title:     data.Title,
		Year:      normalizeYear(data.Year),
		Genres:    splitGenres(data.Genre),
		Overview:  data.Plot,
		Rating:    normalizeRating(data.Rating),
		Votes:     normalizeVotes(data.Votes),
		Director:  orUnknown(data.Director),
		Actors:    orUnknown(data.Actors),
		Runtime:   orUnknown(data.Runtime),
		BoxOffice: orUnknown(data.BoxOffice),
		PosterURL: data.Poster,
		Metascore: data.Metascore,
		ImdbID:    data.ImdbID,
		Source:    models.SourceOMDb,
	}
	if rec.Title == "" {
		rec.Title = title
	}
	if rec.Metascore == "" {
		rec.Metascore = "N/A"
	}
	if rec.ImdbID != "" {
		rec.ImdbLink = imdbTitleURL + rec.ImdbID
	}
	return rec
}

// splitGenres splits the provider's comma-delimited genre string, preserving
// order. An empty string yields an empty list, not a nil placeholder.
func splitGenres(genre string) []string {
	if strings.TrimSpace(genre) == "" {
		return []string{}
	}
	parts := strings.Split(genre, ", ")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}

// normalizeYear reduces a range like "2010–2012" to its first component.
func normalizeYear(year string) string {
	year = strings.TrimSpace(year)
	if year == "" || year == "N/A" {
		return "Unknown"
	}
	year, _, _ = strings.Cut(year, "–") // en dash in OMDb year ranges
	return strings.TrimSpace(year)
}

// normalizeRating maps OMDb's "N/A" to an empty string so "record has a
// rating" is a single emptiness check downstream.
func normalizeRating(rating string) string {
	if rating == "" || rating == "N/A" {
		return ""
	}
	return rating
}

func normalizeVotes(votes string) string {
	votes = strings.ReplaceAll(votes, ",", "")
	if votes == "" {
		return "0"
	}
	return votes
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
