package domain

import (
	"fmt"
	"strings"
)

// Track is the canonical catalog record. Every field is a string, possibly
// empty; the normalizer never leaves a field unset.
type Track struct {
	TrackCode   string `json:"trackCode"`
	Name        string `json:"name"`
	BPM         string `json:"bpm"`
	SongKey     string `json:"songKey"`
	ReleaseDate string `json:"releaseDate"`
	ReleaseYear string `json:"releaseYear"`
	HasVocals   string `json:"hasVocals"`
	NameSlug    string `json:"name_slug"`
	IsExplicit  string `json:"isExplicit"`
	DisplayTags string `json:"displayTags"`
}

// Vocals reports whether HasVocals holds a truthy value.
func (t Track) Vocals() bool { return IsTruthy(t.HasVocals) }

// Explicit reports whether IsExplicit holds a truthy value.
func (t Track) Explicit() bool { return IsTruthy(t.IsExplicit) }

// IsTruthy maps the catalog's string-encoded booleans: "true", "1" and "yes"
// (any case) are true, everything else is false.
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// CatalogStats summarizes a catalog snapshot.
type CatalogStats struct {
	Total      int `json:"total"`
	WithVocals int `json:"withVocals"`
	Explicit   int `json:"explicit"`
}

// Instrumental is the number of tracks without vocals.
func (s CatalogStats) Instrumental() int { return s.Total - s.WithVocals }

// NonExplicit is the number of tracks not flagged explicit.
func (s CatalogStats) NonExplicit() int { return s.Total - s.Explicit }

// String is the one-line summary shown by the CLI and the stats endpoint.
func (s CatalogStats) String() string {
	if s.Total == 0 {
		return "No tracks loaded"
	}
	return fmt.Sprintf("Stats: %d tracks loaded | %d with vocals | %d explicit", s.Total, s.WithVocals, s.Explicit)
}

// ComputeStats counts vocal and explicit tracks.
func ComputeStats(tracks []Track) CatalogStats {
	stats := CatalogStats{Total: len(tracks)}
	for _, t := range tracks {
		if t.Vocals() {
			stats.WithVocals++
		}
		if t.Explicit() {
			stats.Explicit++
		}
	}
	return stats
}
