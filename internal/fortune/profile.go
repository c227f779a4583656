package fortune

import (
	"fmt"
	"time"
)

// HonorificStyle selects the suffix appended to the user's name.
type HonorificStyle string

const (
	HonorificShort    HonorificStyle = "short"
	HonorificFull     HonorificStyle = "full"
	HonorificTraveler HonorificStyle = "traveler"
)

// DefaultTimezone is stored on new profiles. It is informational only.
const DefaultTimezone = "Asia/Seoul"

// Suffix returns the honorific rendered after the name, or "" for an
// unrecognised style.
func (h HonorificStyle) Suffix() string {
	switch h {
	case HonorificShort:
		return "님"
	case HonorificFull:
		return "여"
	case HonorificTraveler:
		return "여행자"
	default:
		return ""
	}
}

// Valid reports whether h is one of the known styles.
func (h HonorificStyle) Valid() bool {
	return h.Suffix() != ""
}

// Profile is the optional personalization a user gives the oracle.
// Only Name, Birthdate and HonorificStyle influence generation.
type Profile struct {
	Name           string         `json:"name,omitempty"`
	Birthdate      string         `json:"birthdate,omitempty"` // YYYY-MM-DD
	Timezone       string         `json:"timezone"`
	CreatedAt      time.Time      `json:"createdAt"`
	HonorificStyle HonorificStyle `json:"honorificStyle"`
}

// NewProfile returns an anonymous profile with default fields.
func NewProfile(createdAt time.Time) Profile {
	return Profile{
		Timezone:       DefaultTimezone,
		CreatedAt:      createdAt,
		HonorificStyle: HonorificShort,
	}
}

// Validate checks the user-editable fields.
func (p Profile) Validate() error {
	if !p.HonorificStyle.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidHonorific, p.HonorificStyle)
	}
	if p.Birthdate != "" {
		if _, err := time.Parse(time.DateOnly, p.Birthdate); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidBirthdate, p.Birthdate)
		}
	}
	return nil
}

// Hash fingerprints the generation-relevant fields of the profile.
// Timezone and CreatedAt are not part of the fingerprint.
func (p Profile) Hash() string {
	return base36(HashString(p.Name + "_" + p.Birthdate + "_" + string(p.HonorificStyle)))
}

// Address prefixes text with "{name}{honorific}, " when the profile has a
// name and a recognised honorific style.
func (p Profile) Address(text string) string {
	if p.Name == "" {
		return text
	}
	suffix := p.HonorificStyle.Suffix()
	if suffix == "" {
		return text
	}
	return p.Name + suffix + ", " + text
}
