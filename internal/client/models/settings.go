// Package models defines the client-side documents persisted next to the
// fortune history.
package models

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/fortuneseal/internal/common"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Settings are the user's presentation and consent preferences.
type Settings struct {
	SoundEnabled  bool  `json:"soundEnabled"`
	MotionEnabled bool  `json:"motionEnabled"`
	Theme         Theme `json:"theme"`
	ConsentGiven  bool  `json:"consentGiven"`
}

func DefaultSettings() Settings {
	return Settings{
		SoundEnabled:  true,
		MotionEnabled: true,
		Theme:         ThemeDark,
		ConsentGiven:  false,
	}
}

// UnmarshalJSON fills fields missing from the document with defaults.
func (s *Settings) UnmarshalJSON(b []byte) error {
	type plain Settings
	out := plain(DefaultSettings())
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	*s = Settings(out)
	return nil
}

func (s Settings) Validate() error {
	switch s.Theme {
	case ThemeDark, ThemeLight:
		return nil
	default:
		return fmt.Errorf("%w: unknown theme %q", common.ErrorValidation, s.Theme)
	}
}
