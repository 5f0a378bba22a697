package vibe

import (
	"strings"

	"evol-jewels-io/stylist/pkg/models"
)

type rule struct {
	vibe  string
	match func(occasion, style string) bool
}

// Evaluated top to bottom; the first match wins.
var rules = []rule{
	{BridalGrace, func(oc, st string) bool { return strings.Contains(oc, "wedding") || strings.Contains(st, "bridal") }},
	{HollywoodGlam, func(oc, st string) bool { return strings.Contains(oc, "red carpet") || strings.Contains(st, "glam") }},
	{EditorialChic, func(_, st string) bool { return strings.Contains(st, "editorial") }},
	{MinimalModern, func(_, st string) bool { return strings.Contains(st, "minimal") || strings.Contains(st, "modern") }},
	{VintageRomance, func(_, st string) bool { return strings.Contains(st, "vintage") || strings.Contains(st, "romance") }},
	{BohoLuxe, func(oc, st string) bool { return strings.Contains(st, "boho") || strings.Contains(oc, "festival") }},
	{BoldStatement, func(oc, st string) bool { return strings.Contains(st, "bold") || strings.Contains(oc, "party") }},
}

// MatchRules is the deterministic tier. It is total: every input yields one of the table's labels.
func (t *Table) MatchRules(s models.SurveyInput) string {
	oc := strings.ToLower(strings.TrimSpace(s.Occasion))
	st := strings.ToLower(strings.TrimSpace(s.Style))

	for _, r := range rules {
		if r.match(oc, st) {
			return r.vibe
		}
	}

	if pref := strings.ToLower(s.Preference()); pref != "" {
		for _, label := range t.Labels() {
			if strings.Contains(strings.ToLower(label), pref) {
				return label
			}
		}
	}
	return EverydayChic
}
