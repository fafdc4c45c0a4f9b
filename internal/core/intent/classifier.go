// Package intent decides whether an utterance asks for music recommendations.
package intent

import (
	"strings"

	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
)

// keywords are matched as substrings of the lower-cased utterance, so "ad"
// also fires on "loaded" and "need" on "needle". The list leans towards
// recommendation mode for anything media or commerce adjacent.
var keywords = []string{
	// requests
	"recommend", "suggestion", "give me", "need", "want", "looking for", "find",
	// media
	"music", "song", "track", "audio", "reel", "video", "background",
	"instrumental", "vocal", "beats", "sound", "playlist",
	// mood
	"upbeat", "chill", "energetic", "mood", "vibe", "genre",
	// licensing and commerce
	"license", "copyright", "commercial", "brand", "campaign", "ad",
	"advertisement", "content",
	// platforms
	"youtube", "instagram", "tiktok", "social media",
}

// IsRecommendation reports whether any keyword occurs in the utterance.
func IsRecommendation(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Classify returns the tagged intent for utterance.
func Classify(utterance string) domain.Intent {
	if IsRecommendation(utterance) {
		return domain.IntentRecommendation
	}
	return domain.IntentConversational
}

// Keywords returns a copy of the vocabulary.
func Keywords() []string {
	out := make([]string, len(keywords))
	copy(out, keywords)
	return out
}
