package ranking

import (
	"fmt"
	"testing"

	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
)

func TestScore_Tiers(t *testing.T) {
	track := domain.Track{Name: "Sunset Drive", DisplayTags: "upbeat, summer", BPM: "120"}

	tests := []struct {
		name      string
		utterance string
		want      int
	}{
		{"name and tag", "upbeat drive", 5},
		{"name only", "SUNSET", 3},
		{"tag only", "summer", 2},
		{"bpm only", "120", 1},
		{"repeated token counts twice", "drive drive", 6},
		{"name wins over tag", "u", 3}, // "u" is in both name and tags
		{"no overlap", "jazz piano", 0},
		{"empty utterance", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.utterance, track); got != tt.want {
				t.Fatalf("Score(%q) = %d, want %d", tt.utterance, got, tt.want)
			}
		})
	}
}

func TestRank_SunsetDrive(t *testing.T) {
	catalog := []domain.Track{{Name: "Sunset Drive", DisplayTags: "upbeat, summer", BPM: "120"}}

	got := Scored("upbeat drive", catalog, 1)
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].Score != 5 {
		t.Fatalf("expected score 5, got %d", got[0].Score)
	}
}

func TestRank_OrderingAndLimit(t *testing.T) {
	catalog := []domain.Track{
		{TrackCode: "t0", Name: "Quiet Piano", DisplayTags: "calm"},
		{TrackCode: "t1", Name: "Upbeat Anthem", DisplayTags: "upbeat, energetic"},
		{TrackCode: "t2", Name: "Morning", DisplayTags: "upbeat"},
		{TrackCode: "t3", Name: "Evening", DisplayTags: "upbeat"},
		{TrackCode: "t4", Name: "Night", DisplayTags: "dark"},
	}

	got := Scored("upbeat energetic", catalog, 10)
	codes := make([]string, len(got))
	for i, st := range got {
		codes[i] = st.Track.TrackCode
	}
	want := []string{"t1", "t2", "t3"}
	if fmt.Sprint(codes) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, codes)
	}

	limited := Rank("upbeat energetic", catalog, 2)
	if len(limited) != 2 || limited[0].TrackCode != "t1" || limited[1].TrackCode != "t2" {
		t.Fatalf("unexpected limited ranking: %+v", limited)
	}
}

func TestRank_Properties(t *testing.T) {
	catalog := make([]domain.Track, 0, 40)
	for i := 0; i < 40; i++ {
		catalog = append(catalog, domain.Track{
			TrackCode:   fmt.Sprintf("c%d", i),
			Name:        fmt.Sprintf("Track %d", i),
			DisplayTags: []string{"chill", "upbeat", "cinematic", "lofi"}[i%4],
			BPM:         fmt.Sprint(90 + i),
		})
	}

	utterances := []string{"chill track", "upbeat 100", "cinematic lofi track 1", "nothing here", ""}
	for _, u := range utterances {
		for _, limit := range []int{1, 5, 15, 100} {
			got := Scored(u, catalog, limit)
			if len(got) > limit {
				t.Fatalf("%q limit %d: got %d results", u, limit, len(got))
			}
			for i, st := range got {
				if st.Score <= 0 {
					t.Fatalf("%q: non-positive score %d", u, st.Score)
				}
				if i > 0 && got[i-1].Score < st.Score {
					t.Fatalf("%q: scores increase at %d", u, i)
				}
			}
		}
	}
}

func TestRank_TiesKeepCatalogOrder(t *testing.T) {
	catalog := []domain.Track{
		{TrackCode: "a", DisplayTags: "lofi"},
		{TrackCode: "b", DisplayTags: "lofi"},
		{TrackCode: "c", DisplayTags: "lofi"},
	}
	got := Rank("lofi", catalog, 0)
	for i, want := range []string{"a", "b", "c"} {
		if got[i].TrackCode != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, got[i].TrackCode)
		}
	}
}

func TestRank_EmptyCatalog(t *testing.T) {
	got := Rank("anything at all", nil, 15)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
}

func TestRank_DefaultLimit(t *testing.T) {
	catalog := make([]domain.Track, 30)
	for i := range catalog {
		catalog[i] = domain.Track{Name: "song"}
	}
	if got := Rank("song", catalog, 0); len(got) != DefaultLimit {
		t.Fatalf("expected %d, got %d", DefaultLimit, len(got))
	}
}
