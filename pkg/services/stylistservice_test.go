package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evol-jewels-io/stylist/internal/metrics"
	"evol-jewels-io/stylist/pkg/models"
	"evol-jewels-io/stylist/pkg/recommend"
	"evol-jewels-io/stylist/pkg/vibe"
)

type stubOracle struct {
	decision vibe.Decision
	err      error
}

func (s stubOracle) Name() string { return "stub" }

func (s stubOracle) Classify(context.Context, models.SurveyInput) (vibe.Decision, error) {
	return s.decision, s.err
}

type fixture struct {
	svc      *StylistServiceImpl
	catalog  *memCatalog
	sessions *memSessions
	metrics  *metrics.Metrics
}

func newFixture(t *testing.T, o vibe.Oracle) *fixture {
	t.Helper()
	table := vibe.DefaultTable()
	catalog := &memCatalog{products: SampleCatalog(table)}
	sessions := newMemSessions()
	m := metrics.New()
	svc := NewStylistService(vibe.NewClassifier(table, o, time.Second), recommend.NewScorer(nil, 0), catalog, sessions, m, "stub")
	return &fixture{svc: svc, catalog: catalog, sessions: sessions, metrics: m}
}

var weddingSurvey = models.SurveyInput{Occasion: "Wedding", Style: "Classic", Budget: "₹25,000–₹65,000"}

func TestSubmitSurveyWeddingRules(t *testing.T) {
	f := newFixture(t, nil)

	resp, err := f.svc.SubmitSurvey(context.Background(), weddingSurvey)

	require.NoError(t, err)
	table := vibe.DefaultTable()
	assert.Equal(t, vibe.BridalGrace, resp.Vibe)
	assert.Equal(t, table.Explanation(vibe.BridalGrace), resp.Explanation)
	assert.Equal(t, table.Image(vibe.BridalGrace), resp.MoodboardImage)
	assert.Equal(t, models.EngineRules, resp.Engine)
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEmpty(t, resp.CreatedAt)
	require.GreaterOrEqual(t, len(resp.Recommendations), 3)
	require.LessOrEqual(t, len(resp.Recommendations), 4)
	for _, it := range resp.Recommendations {
		assert.Contains(t, it.Reason, "within your budget at ₹")
	}
	assert.Equal(t, "Pearl Bridal Choker", resp.Recommendations[0].Product.Name)

	stored, err := f.sessions.GetSession(context.Background(), resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, weddingSurvey, stored.Survey)
	assert.Len(t, stored.RecommendationProductIDs, len(resp.Recommendations))

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Surveys))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Classifications.WithLabelValues("rules")))
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.OracleFailures.WithLabelValues("stub")))
}

func TestSubmitSurveyOracle(t *testing.T) {
	f := newFixture(t, stubOracle{decision: vibe.Decision{Vibe: vibe.HollywoodGlam, Explanation: "Spotlight."}})

	resp, err := f.svc.SubmitSurvey(context.Background(), weddingSurvey)

	require.NoError(t, err)
	assert.Equal(t, models.EngineAI, resp.Engine)
	assert.Equal(t, vibe.HollywoodGlam, resp.Vibe)
	assert.Equal(t, "Spotlight.", resp.Explanation)
}

func TestSubmitSurveyOracleFailureCounted(t *testing.T) {
	f := newFixture(t, stubOracle{err: errStore})

	resp, err := f.svc.SubmitSurvey(context.Background(), weddingSurvey)

	require.NoError(t, err)
	assert.Equal(t, models.EngineRules, resp.Engine)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.OracleFailures.WithLabelValues("stub")))
}

func TestSubmitSurveyEmptyBudget(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.catalog.ReplaceProducts(context.Background(), []models.Product{{ID: "x", Name: "Tiara", Price: 5000}}))

	resp, err := f.svc.SubmitSurvey(context.Background(), models.SurveyInput{Budget: "Under ₹8,000"})

	require.NoError(t, err)
	require.NotNil(t, resp.Recommendations)
	assert.Empty(t, resp.Recommendations)
}

func TestSubmitSurveyStoreErrors(t *testing.T) {
	f := newFixture(t, nil)
	f.sessions.err = errStore
	_, err := f.svc.SubmitSurvey(context.Background(), weddingSurvey)
	assert.ErrorIs(t, err, errStore)
	assert.EqualError(t, err, "submit survey: store unavailable")

	f = newFixture(t, nil)
	f.catalog.err = errStore
	_, err = f.svc.SubmitSurvey(context.Background(), weddingSurvey)
	assert.ErrorIs(t, err, errStore)
	assert.EqualError(t, err, "submit survey: store unavailable")
}

func TestGetPassport(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	resp, err := f.svc.SubmitSurvey(ctx, weddingSurvey)
	require.NoError(t, err)

	passport, err := f.svc.GetPassport(ctx, resp.SessionID)

	require.NoError(t, err)
	assert.Equal(t, resp.SessionID, passport.SessionID)
	assert.Equal(t, weddingSurvey, passport.Survey)
	assert.Equal(t, resp.Vibe, passport.Vibe)
	assert.Equal(t, resp.CreatedAt, passport.CreatedAt)
	assert.Equal(t, resp.MoodboardImage, passport.MoodboardImage)
	require.Len(t, passport.Recommendations, len(resp.Recommendations))
	for i, it := range passport.Recommendations {
		assert.Equal(t, resp.Recommendations[i].Product.ID, it.Product.ID)
		assert.Equal(t, ReasonPassport, it.Reason)
	}
}

func TestGetPassportDropsDeletedProducts(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	resp, err := f.svc.SubmitSurvey(ctx, weddingSurvey)
	require.NoError(t, err)
	removed := resp.Recommendations[0].Product.ID
	f.catalog.remove(removed)

	passport, err := f.svc.GetPassport(ctx, resp.SessionID)

	require.NoError(t, err)
	require.Len(t, passport.Recommendations, len(resp.Recommendations)-1)
	for i, it := range passport.Recommendations {
		assert.NotEqual(t, removed, it.Product.ID)
		assert.Equal(t, resp.Recommendations[i+1].Product.ID, it.Product.ID)
	}
}

func TestGetPassportNotFound(t *testing.T) {
	f := newFixture(t, nil)

	passport, err := f.svc.GetPassport(context.Background(), "never-submitted")

	assert.Nil(t, passport)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestClassifyVibe(t *testing.T) {
	f := newFixture(t, nil)

	got := f.svc.ClassifyVibe(context.Background(), models.SurveyInput{Style: "Boho layers"})

	assert.Equal(t, models.VibeResponse{
		Vibe:        vibe.BohoLuxe,
		Explanation: vibe.DefaultTable().Explanation(vibe.BohoLuxe),
		Source:      models.EngineRules,
	}, got)
	assert.Empty(t, f.sessions.sessions)
}

func TestSubmitSurveyIDs(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.newID = func() string { return "fixed-id" }
	f.svc.now = func() string { return "2024-09-01T00:00:00Z" }

	resp, err := f.svc.SubmitSurvey(context.Background(), models.SurveyInput{})

	require.NoError(t, err)
	assert.Equal(t, "fixed-id", resp.SessionID)
	assert.True(t, strings.HasPrefix(resp.CreatedAt, "2024-09-01"))
}
