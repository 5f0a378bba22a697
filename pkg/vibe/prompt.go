package vibe

import (
	"fmt"
	"strings"

	"evol-jewels-io/stylist/pkg/models"
)

// SystemPrompt instructs the oracle to answer with JSON naming exactly one of the table's labels.
func (t *Table) SystemPrompt() string {
	return "You are a luxury jewelry stylist. Given the survey, return JSON only with keys 'vibe' and 'explanation'. " +
		"Vibe must be EXACTLY one of: [" + strings.Join(t.Labels(), ", ") + "]. " +
		"The explanation is one short paragraph."
}

func UserPrompt(s models.SurveyInput) string {
	pref := s.Preference()
	if pref == "" {
		pref = "None"
	}
	return fmt.Sprintf("Occasion: %s\nStyle: %s\nBudget: %s\nPreference: %s", s.Occasion, s.Style, s.Budget, pref)
}
