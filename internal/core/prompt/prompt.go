// Package prompt assembles generation requests from ranked evidence, the
// conversation window and the user's utterance.
package prompt

import (
	"strings"
	"text/template"

	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
)

// TrackURLPattern is how the assistant is told to link a track.
const TrackURLPattern = "https://hooprsmash.com/tracks/{name_slug}/{trackCode}"

// Prompt is one of RecommendationPrompt or ConversationalPrompt.
type Prompt interface {
	Intent() domain.Intent
	Render() (string, error)
	sealed()
}

// RecommendationPrompt asks for exactly three tracks picked from Evidence.
type RecommendationPrompt struct {
	Evidence  []domain.Track
	Context   string
	Utterance string
}

func (RecommendationPrompt) Intent() domain.Intent { return domain.IntentRecommendation }
func (RecommendationPrompt) sealed()               {}

func (p RecommendationPrompt) Render() (string, error) {
	return execute(recommendationTmpl, slots{
		Evidence:  RenderEvidence(p.Evidence),
		Context:   p.Context,
		Utterance: p.Utterance,
	})
}

// ConversationalPrompt is small talk; it forbids recommendations.
type ConversationalPrompt struct {
	Context   string
	Utterance string
}

func (ConversationalPrompt) Intent() domain.Intent { return domain.IntentConversational }
func (ConversationalPrompt) sealed()               {}

func (p ConversationalPrompt) Render() (string, error) {
	return execute(conversationalTmpl, slots{Context: p.Context, Utterance: p.Utterance})
}

// Build picks the prompt variant for intent. Evidence is ignored for
// conversational prompts.
func Build(intent domain.Intent, evidence []domain.Track, context, utterance string) Prompt {
	if intent == domain.IntentRecommendation {
		return RecommendationPrompt{Evidence: evidence, Context: context, Utterance: utterance}
	}
	return ConversationalPrompt{Context: context, Utterance: utterance}
}

// RenderEvidence renders the AVAILABLE TRACKS block, one line per track.
func RenderEvidence(tracks []domain.Track) string {
	var b strings.Builder
	b.WriteString("AVAILABLE TRACKS:\n")
	for _, t := range tracks {
		b.WriteString("trackCode: ")
		b.WriteString(t.TrackCode)
		b.WriteString(", name: ")
		b.WriteString(t.Name)
		b.WriteString(", bpm: ")
		b.WriteString(t.BPM)
		b.WriteString(", hasVocals: ")
		b.WriteString(t.HasVocals)
		b.WriteString(", name_slug: ")
		b.WriteString(t.NameSlug)
		b.WriteString(", displayTags: ")
		b.WriteString(t.DisplayTags)
		b.WriteByte('\n')
	}
	return b.String()
}

type slots struct {
	Evidence  string
	Context   string
	Utterance string
}

func execute(tmpl *template.Template, data slots) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
