package handlers

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// maxBatchBody bounds how much of a batch upload is read.
const maxBatchBody = 4 << 20

// readBatchTitles extracts movie titles from the request body. Supported
// bodies: JSON ({"titles": [...]} or a bare array), text/csv (first column,
// header row skipped), and plain text (one title per line). Entries that are
// not strings or clean down to nothing are skipped and counted rather than
// failing the batch.
func readBatchTitles(r *http.Request) (titles []string, skipped int, err error) {
	body := io.LimitReader(r.Body, maxBatchBody)
	contentType := r.Header.Get("Content-Type")

	switch {
	case strings.HasPrefix(contentType, "application/json"):
		return parseJSONTitles(body)
	case strings.HasPrefix(contentType, "text/csv"):
		return parseCSVTitles(body)
	default:
		return parseLineTitles(body)
	}
}

func parseJSONTitles(body io.Reader) ([]string, int, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, 0, fmt.Errorf("read batch body: %w", err)
	}

	var entries []any
	var payload struct {
		Titles []any `json:"titles"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Titles != nil {
		entries = payload.Titles
	} else if err := json.Unmarshal(data, &entries); err != nil {
		return nil, 0, fmt.Errorf("invalid JSON batch: %w", err)
	}

	titles := []string{}
	skipped := 0
	for _, entry := range entries {
		s, ok := entry.(string)
		if !ok {
			skipped++
			continue
		}
		if title := cleanTitle(s); title != "" {
			titles = append(titles, title)
		} else {
			skipped++
		}
	}
	return titles, skipped, nil
}

func parseCSVTitles(body io.Reader) ([]string, int, error) {
	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1

	titles := []string{}
	skipped := 0
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("invalid CSV batch: %w", err)
		}
		row++
		if row == 1 {
			// first row is the header
			continue
		}
		if len(record) == 0 {
			skipped++
			continue
		}
		if title := cleanTitle(record[0]); title != "" {
			titles = append(titles, title)
		} else {
			skipped++
		}
	}
	return titles, skipped, nil
}

func parseLineTitles(body io.Reader) ([]string, int, error) {
	titles := []string{}
	skipped := 0
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := scanner.Text()
		if title := cleanTitle(line); title != "" {
			titles = append(titles, title)
		} else if line != "" {
			// whitespace-only lines count as skipped; truly blank lines are
			// just separators
			skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read batch body: %w", err)
	}
	return titles, skipped, nil
}

// cleanTitle folds pasted smart punctuation to ASCII and trims whitespace.
// Spreadsheet exports routinely carry curly quotes and en dashes that OMDb's
// title match chokes on.
func cleanTitle(s string) string {
	return strings.TrimSpace(unidecode.Unidecode(s))
}
