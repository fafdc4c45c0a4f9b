package catalog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
)

func TestNormalize_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLen  int
		wantName []string
	}{
		{
			name:     "top level array",
			input:    `[{"name":"A"},{"title":"B"}]`,
			wantLen:  2,
			wantName: []string{"A", "B"},
		},
		{
			name:     "tracks key",
			input:    `{"tracks":[{"name":"T"}],"data":[{"name":"D"}]}`,
			wantLen:  1,
			wantName: []string{"T"},
		},
		{
			name:     "data key",
			input:    `{"data":[{"name":"D"}],"results":[{"name":"R"}]}`,
			wantLen:  1,
			wantName: []string{"D"},
		},
		{
			name:     "results key when tracks is empty",
			input:    `{"tracks":[],"results":[{"name":"R1"},{"name":"R2"}]}`,
			wantLen:  2,
			wantName: []string{"R1", "R2"},
		},
		{
			name:    "empty container",
			input:   `{"tracks":[]}`,
			wantLen: 0,
		},
		{
			name:    "object without container",
			input:   `{"songs":[{"name":"X"}]}`,
			wantLen: 0,
		},
		{
			name:    "scalar document",
			input:   `"just a string"`,
			wantLen: 0,
		},
		{
			name:    "invalid json",
			input:   `{"tracks":[`,
			wantLen: 0,
		},
		{
			name:    "trailing garbage",
			input:   `[{"name":"a"}] garbage`,
			wantLen: 0,
		},
		{
			name:    "two concatenated documents",
			input:   `[{"name":"a"}][{"name":"b"}]`,
			wantLen: 0,
		},
		{
			name:     "trailing whitespace",
			input:    "[{\"name\":\"a\"}]\n\t ",
			wantLen:  1,
			wantName: []string{"a"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Decode([]byte(tc.input))
			if got == nil {
				t.Fatalf("expected non-nil slice")
			}
			if len(got) != tc.wantLen {
				t.Fatalf("expected %d tracks, got %d", tc.wantLen, len(got))
			}
			for i, name := range tc.wantName {
				if got[i].Name != name {
					t.Fatalf("track %d: expected name %q, got %q", i, name, got[i].Name)
				}
			}
		})
	}
}

func TestNormalizeRecord_Aliases(t *testing.T) {
	raw := `[{
		"id": 42,
		"title": "Sunset Drive",
		"tempo": 120,
		"music_key": "A minor",
		"release_date": "2021-06-01",
		"year": 2021,
		"vocals": true,
		"slug": "sunset-drive",
		"explicit": "no",
		"genres": ["upbeat", "summer"]
	}]`

	got := Decode([]byte(raw))
	if len(got) != 1 {
		t.Fatalf("expected 1 track, got %d", len(got))
	}
	want := domain.Track{
		TrackCode:   "42",
		Name:        "Sunset Drive",
		BPM:         "120",
		SongKey:     "A minor",
		ReleaseDate: "2021-06-01",
		ReleaseYear: "2021",
		HasVocals:   "true",
		NameSlug:    "sunset-drive",
		IsExplicit:  "no",
		DisplayTags: "upbeat, summer",
	}
	if !reflect.DeepEqual(got[0], want) {
		t.Fatalf("track mismatch:\nwant %+v\ngot  %+v", want, got[0])
	}
}

func TestNormalizeRecord_AliasPriority(t *testing.T) {
	rec := map[string]any{
		"trackCode": "TC-1",
		"id":        "ID-1",
		"name":      nil,
		"title":     "From Title",
		"bpm":       "98.5",
		"tempo":     "120",
	}
	got := NormalizeRecord(rec)
	if got.TrackCode != "TC-1" {
		t.Fatalf("expected first alias to win, got %q", got.TrackCode)
	}
	if got.Name != "From Title" {
		t.Fatalf("expected null alias to be skipped, got %q", got.Name)
	}
	if got.BPM != "98.5" {
		t.Fatalf("expected bpm 98.5, got %q", got.BPM)
	}
}

func TestNormalize_MissingFieldsAreEmpty(t *testing.T) {
	got := Normalize([]any{map[string]any{}, "not a record", 7})
	if len(got) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(got))
	}
	for i, tr := range got {
		if tr != (domain.Track{}) {
			t.Fatalf("track %d: expected all-empty fields, got %+v", i, tr)
		}
	}
}

func TestNormalize_PreservesOrder(t *testing.T) {
	input := []any{
		map[string]any{"code": "c"},
		map[string]any{"code": "a"},
		map[string]any{"code": "b"},
	}
	got := Normalize(input)
	codes := []string{got[0].TrackCode, got[1].TrackCode, got[2].TrackCode}
	if !reflect.DeepEqual(codes, []string{"c", "a", "b"}) {
		t.Fatalf("order not preserved: %v", codes)
	}
}

func TestSnapshot(t *testing.T) {
	tracks := []domain.Track{
		{TrackCode: "1", HasVocals: "yes"},
		{TrackCode: "2", IsExplicit: "1"},
		{TrackCode: "3"},
	}
	s := NewSnapshot(tracks)
	tracks[0].TrackCode = "mutated"

	if s.Tracks()[0].TrackCode != "1" {
		t.Fatalf("snapshot must not alias the input slice")
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3, got %d", s.Len())
	}
	if len(s.Head(2)) != 2 || len(s.Head(10)) != 3 {
		t.Fatalf("unexpected head lengths")
	}
	want := domain.CatalogStats{Total: 3, WithVocals: 1, Explicit: 1}
	if s.Stats() != want {
		t.Fatalf("expected %+v, got %+v", want, s.Stats())
	}

	var empty *Snapshot
	if empty.Len() != 0 || empty.Stats() != (domain.CatalogStats{}) {
		t.Fatalf("nil snapshot should behave as empty")
	}
}

func TestShape(t *testing.T) {
	tests := []struct {
		raw  any
		want string
	}{
		{[]any{}, "array"},
		{map[string]any{"data": []any{}}, `object["data"]`},
		{map[string]any{"tracks": []any{1}, "data": []any{}}, `object["tracks"]`},
		{map[string]any{"foo": 1}, "object"},
		{"text", "string"},
		{nil, "null"},
	}
	for _, tc := range tests {
		if got := Shape(tc.raw); got != tc.want {
			t.Errorf("Shape(%v) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestDecodeDocument_TrailingData(t *testing.T) {
	if _, err := DecodeDocument([]byte(`{"tracks":[]} {}`)); !errors.Is(err, ErrTrailingData) {
		t.Fatalf("expected ErrTrailingData, got %v", err)
	}
	if _, err := DecodeDocument([]byte(`{"tracks":[]}` + "\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
