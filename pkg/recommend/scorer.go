// Package recommend ranks catalog products against a survey and a resolved vibe.
package recommend

import (
	"sort"
	"strings"

	"evol-jewels-io/stylist/pkg/models"
	"evol-jewels-io/stylist/pkg/util"
)

const (
	MaxItems = 4
	MinItems = 3

	styleWeight    = 1.5
	occasionWeight = 1.2
	vibeBonus      = 1.0
	sweetSpotBonus = 0.2

	sweetSpotMin = 120.0
	sweetSpotMax = 600.0

	ReasonStyle    = "matches your style preference"
	ReasonOccasion = "perfect for your occasion"
	ReasonFallback = "tailored to your inputs"
	ReasonBackfill = "great fit for your budget"
)

type Scorer struct {
	budgets []BudgetRange
	rate    float64
}

// NewScorer returns a scorer converting canonical prices with rate before the budget test.
func NewScorer(budgets []BudgetRange, rate float64) *Scorer {
	if len(budgets) == 0 {
		budgets = DefaultBudgets
	}
	if rate <= 0 {
		rate = util.DefaultUSDToINR
	}
	return &Scorer{budgets: budgets, rate: rate}
}

func (s *Scorer) Rate() float64 { return s.rate }

func (s *Scorer) Budget(label string) BudgetRange {
	return ResolveBudget(s.budgets, label)
}

func (s *Scorer) inBudget(r BudgetRange, p models.Product) bool {
	return r.Contains(p.Price * s.rate)
}

type candidate struct {
	score   float64
	product models.Product
}

// Recommend returns at most MaxItems products. Only the budget excludes products; a zero score
// still ranks. When fewer than MinItems were selected the in-budget catalog pads the list.
func (s *Scorer) Recommend(survey models.SurveyInput, vibe string, catalog []models.Product) []models.RecommendationItem {
	budget := s.Budget(survey.Budget)
	styleQ := strings.Fields(strings.ToLower(survey.Style))
	occQ := strings.Fields(strings.ToLower(survey.Occasion))
	vibeWord := firstWord(vibe)

	candidates := make([]candidate, 0, len(catalog))
	for _, p := range catalog {
		if !s.inBudget(budget, p) {
			continue
		}
		styleTags := lowerAll(p.StyleTags)
		occTags := lowerAll(p.OccasionTags)

		score := styleWeight*float64(countMatching(styleQ, styleTags)) +
			occasionWeight*float64(countMatching(occQ, occTags))
		if vibeWord != "" && contains(styleTags, vibeWord) {
			score += vibeBonus
		}
		if p.Price >= sweetSpotMin && p.Price <= sweetSpotMax {
			score += sweetSpotBonus
		}
		candidates = append(candidates, candidate{score: score, product: p})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > MaxItems {
		candidates = candidates[:MaxItems]
	}

	style := strings.ToLower(survey.Style)
	occasion := strings.ToLower(survey.Occasion)
	recs := make([]models.RecommendationItem, 0, MaxItems)
	selected := make(map[string]struct{}, MaxItems)
	for _, c := range candidates {
		recs = append(recs, models.RecommendationItem{
			Product: c.product,
			Reason:  s.reason(c.product, style, occasion),
		})
		selected[c.product.ID] = struct{}{}
	}

	if len(recs) < MinItems {
		for _, p := range catalog {
			if len(recs) >= MaxItems {
				break
			}
			if _, dup := selected[p.ID]; dup || !s.inBudget(budget, p) {
				continue
			}
			recs = append(recs, models.RecommendationItem{Product: p, Reason: ReasonBackfill})
			selected[p.ID] = struct{}{}
		}
	}
	return recs
}

func (s *Scorer) reason(p models.Product, style, occasion string) string {
	bits := make([]string, 0, 3)
	if anyTagIn(p.StyleTags, style) {
		bits = append(bits, ReasonStyle)
	}
	if anyTagIn(p.OccasionTags, occasion) {
		bits = append(bits, ReasonOccasion)
	}
	bits = append(bits, BudgetClause(p.Price, s.rate))
	if len(bits) == 0 {
		return ReasonFallback
	}
	return strings.Join(bits, ", ")
}

// BudgetClause names the formatted display price.
func BudgetClause(price, rate float64) string {
	return "within your budget at " + util.FormatPrice(price, rate)
}

// countMatching counts query tokens found inside at least one tag.
func countMatching(tokens, tags []string) int {
	n := 0
	for _, q := range tokens {
		for _, t := range tags {
			if strings.Contains(t, q) {
				n++
				break
			}
		}
	}
	return n
}

// anyTagIn reports whether a non-empty tag occurs inside text.
func anyTagIn(tags []string, text string) bool {
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func firstWord(s string) string {
	f := strings.Fields(strings.ToLower(s))
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

func lowerAll(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = strings.ToLower(strings.TrimSpace(t))
	}
	return out
}

func contains(tags []string, v string) bool {
	for _, t := range tags {
		if t == v {
			return true
		}
	}
	return false
}
