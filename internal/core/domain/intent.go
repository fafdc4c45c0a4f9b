package domain

// Intent is the classifier's verdict on an utterance.
type Intent int

const (
	IntentConversational Intent = iota
	IntentRecommendation
)

func (i Intent) String() string {
	switch i {
	case IntentRecommendation:
		return "recommendation"
	case IntentConversational:
		return "conversational"
	default:
		return "unknown"
	}
}

// MarshalText lets Intent serialize as its name in JSON bodies.
func (i Intent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}
