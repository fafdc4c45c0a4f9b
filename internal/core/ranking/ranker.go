// Package ranking scores catalog tracks against an utterance using plain
// substring overlap.
package ranking

import (
	"slices"
	"strings"

	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
)

// DefaultLimit is the number of tracks returned when no limit is given.
const DefaultLimit = 15

const (
	nameWeight = 3
	tagWeight  = 2
	restWeight = 1
)

// ScoredTrack pairs a track with its relevance score for one query.
type ScoredTrack struct {
	Track domain.Track
	Score int
}

// Rank returns at most limit tracks with a positive score, best first.
// Equal scores keep catalog order.
func Rank(utterance string, tracks []domain.Track, limit int) []domain.Track {
	scored := Scored(utterance, tracks, limit)
	out := make([]domain.Track, len(scored))
	for i, st := range scored {
		out[i] = st.Track
	}
	return out
}

// Scored is Rank with the scores attached.
func Scored(utterance string, tracks []domain.Track, limit int) []ScoredTrack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	tokens := Tokenize(utterance)
	if len(tokens) == 0 || len(tracks) == 0 {
		return []ScoredTrack{}
	}

	scored := make([]ScoredTrack, 0, len(tracks))
	for _, t := range tracks {
		if s := scoreTokens(tokens, t); s > 0 {
			scored = append(scored, ScoredTrack{Track: t, Score: s})
		}
	}

	// SortStableFunc keeps catalog order for ties.
	slices.SortStableFunc(scored, func(a, b ScoredTrack) int {
		return b.Score - a.Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// Score is the relevance of a single track.
func Score(utterance string, t domain.Track) int {
	return scoreTokens(Tokenize(utterance), t)
}

// Tokenize lower-cases and splits on whitespace. Repeated tokens are kept and
// count again.
func Tokenize(utterance string) []string {
	return strings.Fields(strings.ToLower(utterance))
}

func scoreTokens(tokens []string, t domain.Track) int {
	name := strings.ToLower(t.Name)
	tags := strings.ToLower(t.DisplayTags)
	haystack := strings.ToLower(t.Name + " " + t.DisplayTags + " " + t.BPM)

	total := 0
	for _, tok := range tokens {
		if !strings.Contains(haystack, tok) {
			continue
		}
		switch {
		case strings.Contains(name, tok):
			total += nameWeight
		case strings.Contains(tags, tok):
			total += tagWeight
		default:
			total += restWeight
		}
	}
	return total
}
