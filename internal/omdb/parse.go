// ABOUTME: Parsing of OMDb's stringly-typed detail payloads into CorpusItems
// ABOUTME: Handles N/A markers, comma-grouped vote counts, and year ranges
package omdb

import (
	"strconv"
	"strings"

	"github.com/moodreel/moodreel/internal/models"
)

// detailPayload mirrors the OMDb detail response. Every numeric field
// arrives as a string and may be "N/A".
type detailPayload struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language"`
	Awards     string `json:"Awards"`
	Poster     string `json:"Poster"`
	Metascore  string `json:"Metascore"`
	ImdbRating string `json:"imdbRating"`
	ImdbVotes  string `json:"imdbVotes"`
	ImdbID     string `json:"imdbID"`
	Type       string `json:"Type"`
	Response   string `json:"Response"`
}

func (d *detailPayload) toCorpusItem() models.CorpusItem {
	return models.CorpusItem{
		ImdbID:      d.ImdbID,
		Title:       d.Title,
		Overview:    cleanField(d.Plot),
		Year:        parseYear(d.Year),
		ReleaseDate: cleanField(d.Released),
		Rating:      parseFloatField(d.ImdbRating),
		Votes:       parseVotes(d.ImdbVotes),
		Metascore:   parseIntField(d.Metascore),
		Language:    cleanField(d.Language),
		Genre:       cleanField(d.Genre),
		MediaType:   d.Type,
		PosterURL:   cleanField(d.Poster),
		Director:    cleanField(d.Director),
		Actors:      cleanField(d.Actors),
		Runtime:     cleanField(d.Runtime),
		Awards:      cleanField(d.Awards),
	}
}

// cleanField maps OMDb's "N/A" marker to an empty string
func cleanField(s string) string {
	if s == "N/A" {
		return ""
	}
	return s
}

// parseYear handles plain years and series ranges like "1978–1980",
// keeping the first year
func parseYear(s string) int {
	s = cleanField(strings.TrimSpace(s))
	if len(s) >= 4 {
		if y, err := strconv.Atoi(s[:4]); err == nil {
			return y
		}
	}
	return 0
}

// parseVotes handles comma-grouped counts like "1,234,567"
func parseVotes(s string) int {
	s = strings.ReplaceAll(cleanField(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func parseFloatField(s string) float64 {
	s = cleanField(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseIntField(s string) int {
	s = cleanField(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
