package models

import "strings"

type SurveyInput struct {
	Occasion       string  `bson:"occasion" json:"occasion" validate:"required"`
	Style          string  `bson:"style" json:"style" validate:"required"`
	Budget         string  `bson:"budget" json:"budget" validate:"required"`
	VibePreference *string `bson:"vibe_preference,omitempty" json:"vibe_preference,omitempty"`
}

// Preference returns the trimmed vibe preference, or "" when none was given.
func (s SurveyInput) Preference() string {
	if s.VibePreference == nil {
		return ""
	}
	return strings.TrimSpace(*s.VibePreference)
}
