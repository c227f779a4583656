package fortune

import (
	"fmt"
	"time"
)

// Reaction is the user's optional feedback on a fortune.
type Reaction string

const (
	ReactionNone     Reaction = ""
	ReactionPositive Reaction = "positive"
	ReactionNeutral  Reaction = "neutral"
)

// ParseReaction validates a reaction; the empty string clears it.
func ParseReaction(s string) (Reaction, error) {
	switch r := Reaction(s); r {
	case ReactionNone, ReactionPositive, ReactionNeutral:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidReaction, s)
	}
}

// Fortune is one revealed prophecy. TemplateID, Seed, ProfileHash and Text are
// reproducible from (ProfileHash, PeriodKey); ID and GeneratedAt are not.
type Fortune struct {
	ID          string    `json:"id"`
	Period      Period    `json:"period"`
	PeriodKey   string    `json:"periodKey"`
	Text        string    `json:"text"`
	TemplateID  string    `json:"templateId"`
	Seed        string    `json:"seed"`
	ProfileHash string    `json:"profileHash"`
	GeneratedAt time.Time `json:"generatedAt"`
	Reaction    Reaction  `json:"reaction,omitempty"`
}
