package domain

import (
	"errors"
	"testing"
)

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"True", true},
		{"1", true},
		{"YES", true},
		{" yes ", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"", false},
		{"y", false},
	}
	for _, tc := range tests {
		if got := IsTruthy(tc.in); got != tc.want {
			t.Fatalf("IsTruthy(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name   string
		tracks []Track
		want   CatalogStats
	}{
		{
			name:   "empty catalog",
			tracks: nil,
			want:   CatalogStats{},
		},
		{
			name: "mixed flags",
			tracks: []Track{
				{TrackCode: "a", HasVocals: "true", IsExplicit: "no"},
				{TrackCode: "b", HasVocals: "0", IsExplicit: "1"},
				{TrackCode: "c", HasVocals: "Yes", IsExplicit: "TRUE"},
				{TrackCode: "d"},
			},
			want: CatalogStats{Total: 4, WithVocals: 2, Explicit: 2},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeStats(tc.tracks)
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
			if got.Instrumental() != tc.want.Total-tc.want.WithVocals {
				t.Fatalf("instrumental mismatch: %d", got.Instrumental())
			}
		})
	}
}

func TestCatalogStats_String(t *testing.T) {
	if got := (CatalogStats{}).String(); got != "No tracks loaded" {
		t.Fatalf("unexpected empty summary %q", got)
	}
	got := CatalogStats{Total: 4, WithVocals: 2, Explicit: 1}.String()
	if got != "Stats: 4 tracks loaded | 2 with vocals | 1 explicit" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestFailure_Is(t *testing.T) {
	cause := errors.New("connection refused")
	f := NewProviderFailure("respond", cause)

	if !errors.Is(f, ErrProviderFailure) {
		t.Fatalf("expected provider failure kind")
	}
	if !errors.Is(f, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if errors.Is(f, ErrLoadFailure) {
		t.Fatalf("did not expect load failure kind")
	}
	if f.KindName() != "provider_failure" {
		t.Fatalf("unexpected kind name %q", f.KindName())
	}
}

func TestIntent_String(t *testing.T) {
	if IntentRecommendation.String() != "recommendation" {
		t.Fatalf("unexpected %q", IntentRecommendation.String())
	}
	if IntentConversational.String() != "conversational" {
		t.Fatalf("unexpected %q", IntentConversational.String())
	}
}
