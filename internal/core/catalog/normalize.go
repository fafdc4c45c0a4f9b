// Package catalog turns raw track documents of any shape into canonical
// domain.Track records.
package catalog

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
	"github.com/shantanugsharp/chatbot-be/internal/logging"
)

// containerKeys are checked in order when the document is an object.
var containerKeys = []string{"tracks", "data", "results"}

// field binds a canonical Track field to its accepted source keys.
type field struct {
	aliases []string
	set     func(t *domain.Track, v string)
}

var fields = []field{
	{[]string{"trackCode", "id", "code"}, func(t *domain.Track, v string) { t.TrackCode = v }},
	{[]string{"name", "title", "track_name"}, func(t *domain.Track, v string) { t.Name = v }},
	{[]string{"bpm", "tempo"}, func(t *domain.Track, v string) { t.BPM = v }},
	{[]string{"songKey", "key", "music_key"}, func(t *domain.Track, v string) { t.SongKey = v }},
	{[]string{"releaseDate", "release_date"}, func(t *domain.Track, v string) { t.ReleaseDate = v }},
	{[]string{"releaseYear", "release_year", "year"}, func(t *domain.Track, v string) { t.ReleaseYear = v }},
	{[]string{"hasVocals", "has_vocals", "vocals"}, func(t *domain.Track, v string) { t.HasVocals = v }},
	{[]string{"nameSlug", "name_slug", "slug", "url_slug"}, func(t *domain.Track, v string) { t.NameSlug = v }},
	{[]string{"isExplicit", "is_explicit", "explicit"}, func(t *domain.Track, v string) { t.IsExplicit = v }},
	{[]string{"displayTags", "tags", "genres", "categories"}, func(t *domain.Track, v string) { t.DisplayTags = v }},
}

// Normalize converts a decoded JSON document into tracks. Unsupported shapes
// yield an empty slice and a logged error; it never fails.
func Normalize(raw any) []domain.Track {
	records, ok := extractRecords(raw)
	if !ok {
		logging.Error().Str("op", "normalize").Str("shape", shapeOf(raw)).Msg("invalid catalog structure")
		return []domain.Track{}
	}

	tracks := make([]domain.Track, 0, len(records))
	for _, rec := range records {
		tracks = append(tracks, NormalizeRecord(rec))
	}
	return tracks
}

// Decode parses data and normalizes it. Undecodable input gives an empty
// catalog.
func Decode(data []byte) []domain.Track {
	raw, err := DecodeDocument(data)
	if err != nil {
		logging.Error().Err(err).Str("op", "decode").Msg("invalid catalog JSON")
		return []domain.Track{}
	}
	return Normalize(raw)
}

// ErrTrailingData is returned when a catalog holds more than one JSON value.
var ErrTrailingData = errors.New("catalog: trailing data after JSON document")

// DecodeDocument decodes exactly one JSON document, keeping numbers in their
// source form.
func DecodeDocument(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return raw, nil
}

// NormalizeRecord maps one raw record. Anything that is not an object gives a
// Track with every field empty.
func NormalizeRecord(rec any) domain.Track {
	var t domain.Track
	m, ok := rec.(map[string]any)
	if !ok {
		return t
	}
	for _, f := range fields {
		f.set(&t, lookup(m, f.aliases))
	}
	return t
}

func extractRecords(raw any) ([]any, bool) {
	switch doc := raw.(type) {
	case []any:
		return doc, true
	case []map[string]any:
		out := make([]any, len(doc))
		for i := range doc {
			out[i] = doc[i]
		}
		return out, true
	case map[string]any:
		for _, key := range containerKeys {
			if arr, ok := doc[key].([]any); ok && len(arr) > 0 {
				return arr, true
			}
		}
		// An object naming a container with an empty list is a valid, empty
		// catalog rather than a structural error.
		for _, key := range containerKeys {
			if _, ok := doc[key].([]any); ok {
				return nil, true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}

// lookup returns the first non-null alias coerced to a string.
func lookup(m map[string]any, aliases []string) string {
	for _, key := range aliases {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		return stringify(v)
	}
	return ""
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case []byte:
		return string(x)
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			if item == nil {
				continue
			}
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ", ")
	default:
		// Objects and anything exotic render as compact JSON.
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func shapeOf(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64:
		return "number"
	default:
		return "unknown"
	}
}

// Shape describes the layout of a decoded document: "array", an object
// container such as `object["tracks"]`, or the bare JSON type.
func Shape(raw any) string {
	if doc, ok := raw.(map[string]any); ok {
		for _, key := range containerKeys {
			if _, ok := doc[key].([]any); ok {
				return `object["` + key + `"]`
			}
		}
	}
	return shapeOf(raw)
}
