package recommend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evol-jewels-io/stylist/pkg/models"
)

func product(id string, price float64, style, occasion []string) models.Product {
	return models.Product{ID: id, Name: id, Price: price, StyleTags: style, OccasionTags: occasion}
}

func ids(items []models.RecommendationItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Product.ID)
	}
	return out
}

func TestResolveBudget(t *testing.T) {
	assert.Equal(t, DefaultBudgets[1], ResolveBudget(DefaultBudgets, "₹8,000–₹25,000"))
	assert.Equal(t, Unbounded, ResolveBudget(DefaultBudgets, "whatever"))
	assert.True(t, Unbounded.Contains(1e15))
	assert.True(t, DefaultBudgets[0].Contains(8000))
	assert.True(t, DefaultBudgets[1].Contains(8000))
}

func TestRecommendBudgetGate(t *testing.T) {
	s := NewScorer(nil, 0)
	catalog := []models.Product{
		product("cheap", 50, []string{"glam"}, nil),    // 4150
		product("mid", 200, []string{"glam"}, nil),     // 16600
		product("edge", 301.21, []string{"glam"}, nil), // 25000.43
		product("rich", 900, []string{"glam"}, nil),    // 74700
	}

	for _, b := range DefaultBudgets {
		items := s.Recommend(models.SurveyInput{Style: "glam", Budget: b.Label}, "Hollywood Glam", catalog)
		for _, it := range items {
			amount := it.Product.Price * s.Rate()
			assert.True(t, amount >= b.Min && amount <= b.Max, "%s priced %.2f outside %s", it.Product.ID, amount, b.Label)
		}
	}

	items := s.Recommend(models.SurveyInput{Budget: "₹8,000–₹25,000"}, "", catalog)
	assert.Equal(t, []string{"mid"}, ids(items))
}

func TestRecommendEmpty(t *testing.T) {
	s := NewScorer(nil, 0)

	items := s.Recommend(models.SurveyInput{Budget: "Under ₹8,000"}, "Bold Statement", []models.Product{product("rich", 900, nil, nil)})
	require.NotNil(t, items)
	assert.Empty(t, items)

	items = s.Recommend(models.SurveyInput{}, "Bold Statement", nil)
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRecommendScoringOrder(t *testing.T) {
	s := NewScorer(nil, 0)
	catalog := []models.Product{
		product("plain", 50, []string{"casual"}, []string{"office"}),
		product("occasion", 50, nil, []string{"date night"}),
		product("style", 50, []string{"vintage"}, nil),
		product("both", 50, []string{"vintage"}, []string{"date night"}),
		product("vibe", 50, []string{"bold"}, nil),
	}

	items := s.Recommend(models.SurveyInput{Style: "vintage", Occasion: "date"}, "Bold Statement", catalog)

	// both=2.7, style=1.5, occasion=1.2, vibe=1.0
	assert.Equal(t, []string{"both", "style", "occasion", "vibe"}, ids(items))
}

func TestRecommendStableTies(t *testing.T) {
	s := NewScorer(nil, 0)
	catalog := []models.Product{
		product("a", 50, nil, nil),
		product("b", 50, nil, nil),
		product("c", 200, nil, nil), // sweet spot
		product("d", 50, nil, nil),
		product("e", 50, nil, nil),
	}

	items := s.Recommend(models.SurveyInput{}, "Everyday Chic", catalog)

	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(items))
}

func TestRecommendDeterministic(t *testing.T) {
	s := NewScorer(nil, 0)
	catalog := []models.Product{
		product("p1", 180, []string{"minimal", "modern"}, []string{"everyday"}),
		product("p2", 95, []string{"chic"}, []string{"everyday"}),
		product("p3", 520, []string{"bridal"}, []string{"wedding"}),
		product("p4", 140, []string{"boho"}, []string{"festival"}),
		product("p5", 310, []string{"bold"}, []string{"party"}),
	}
	survey := models.SurveyInput{Style: "modern chic", Occasion: "everyday"}

	first := s.Recommend(survey, "Minimal Modern", catalog)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Recommend(survey, "Minimal Modern", catalog))
	}
}

func TestRecommendBackfill(t *testing.T) {
	s := NewScorer(nil, 0)
	catalog := []models.Product{
		product("match", 50, []string{"glam"}, nil),
		product("zero1", 50, []string{"casual"}, nil),
		product("zero2", 50, []string{"casual"}, nil),
		product("out", 5000, []string{"glam"}, nil),
	}

	items := s.Recommend(models.SurveyInput{Style: "glam", Budget: "Under ₹8,000"}, "Everyday Chic", catalog)

	require.GreaterOrEqual(t, len(items), 3)
	assert.Equal(t, []string{"match", "zero1", "zero2"}, ids(items))
}

func TestRecommendBackfillNoDuplicates(t *testing.T) {
	s := NewScorer(nil, 0)
	catalog := []models.Product{
		product("x", 50, nil, nil),
		product("y", 50, nil, nil),
	}

	items := s.Recommend(models.SurveyInput{}, "", catalog)

	// fewer than three in budget: backfill finds nothing new
	assert.Equal(t, []string{"x", "y"}, ids(items))
}

func TestRecommendReasons(t *testing.T) {
	s := NewScorer(nil, 83)
	catalog := []models.Product{
		product("both", 520, []string{"Classic"}, []string{"wedding"}),
		product("none", 95, []string{"boho"}, []string{"festival"}),
	}

	items := s.Recommend(models.SurveyInput{Style: "Classic Elegance", Occasion: "Wedding"}, "Bridal Grace", catalog)

	require.Len(t, items, 2)
	assert.Equal(t, "matches your style preference, perfect for your occasion, within your budget at ₹43,160", items[0].Reason)
	assert.Equal(t, "within your budget at ₹7,885", items[1].Reason)
}

func TestRecommendZeroScoreStillRanks(t *testing.T) {
	s := NewScorer(nil, 0)
	catalog := []models.Product{
		product("a", 50, nil, nil),
		product("b", 50, nil, nil),
		product("c", 50, nil, nil),
	}

	items := s.Recommend(models.SurveyInput{Style: "glam"}, "", catalog)

	require.Len(t, items, 3)
	for _, it := range items {
		assert.True(t, strings.HasPrefix(it.Reason, "within your budget at "))
	}
}
