package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"evol-jewels-io/stylist/internal/metrics"
	"evol-jewels-io/stylist/pkg/models"
	"evol-jewels-io/stylist/pkg/recommend"
	"evol-jewels-io/stylist/pkg/util"
	"evol-jewels-io/stylist/pkg/vibe"
)

const ReasonPassport = "curated for your vibe"

// StylistServiceImpl implements the StylistService interface
type StylistServiceImpl struct {
	classifier *vibe.Classifier
	scorer     *recommend.Scorer
	catalog    CatalogService
	sessions   SessionService
	metrics    *metrics.Metrics
	provider   string

	newID func() string
	now   func() string
}

// NewStylistService creates a new instance of StylistService. m may be nil.
func NewStylistService(classifier *vibe.Classifier, scorer *recommend.Scorer, catalog CatalogService, sessions SessionService, m *metrics.Metrics, provider string) *StylistServiceImpl {
	return &StylistServiceImpl{
		classifier: classifier,
		scorer:     scorer,
		catalog:    catalog,
		sessions:   sessions,
		metrics:    m,
		provider:   provider,
		newID:      uuid.NewString,
		now:        util.NowISO,
	}
}

// SubmitSurvey classifies, scores, records and assembles the response for one survey.
func (ss *StylistServiceImpl) SubmitSurvey(ctx context.Context, survey models.SurveyInput) (*models.RecommendationResponse, error) {
	res := ss.classify(ctx, survey)

	products, err := ss.catalog.ListProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "submit survey")
	}
	items := ss.scorer.Recommend(survey, res.Vibe, products)

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.Product.ID)
	}
	session := models.Session{
		ID:                       ss.newID(),
		CreatedAt:                ss.now(),
		Survey:                   survey,
		Vibe:                     res.Vibe,
		Explanation:              res.Explanation,
		Engine:                   res.Engine,
		RecommendationProductIDs: ids,
	}
	if err := ss.sessions.RecordSession(ctx, session); err != nil {
		return nil, errors.Wrap(err, "submit survey")
	}

	if ss.metrics != nil {
		ss.metrics.Surveys.Inc()
		ss.metrics.Recommendations.Observe(float64(len(items)))
	}
	util.Logger().Info().Str("session_id", session.ID).Str("vibe", res.Vibe).Str("engine", string(res.Engine)).Int("items", len(items)).Msg("survey scored")

	return &models.RecommendationResponse{
		SessionID:       session.ID,
		Engine:          session.Engine,
		Vibe:            session.Vibe,
		Explanation:     session.Explanation,
		MoodboardImage:  ss.classifier.Table().Image(session.Vibe),
		Recommendations: items,
		CreatedAt:       session.CreatedAt,
	}, nil
}

// ClassifyVibe runs the classifier alone. It never fails.
func (ss *StylistServiceImpl) ClassifyVibe(ctx context.Context, survey models.SurveyInput) models.VibeResponse {
	res := ss.classify(ctx, survey)
	return models.VibeResponse{Vibe: res.Vibe, Explanation: res.Explanation, Source: res.Engine}
}

// GetPassport re-joins the recorded product ids against the current catalog. Products removed
// since the session was recorded are dropped; the rest keep their recorded rank.
func (ss *StylistServiceImpl) GetPassport(ctx context.Context, sessionID string) (*models.PassportResponse, error) {
	session, err := ss.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	products, err := ss.catalog.FindProductsByIDs(ctx, session.RecommendationProductIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]models.RecommendationItem, 0, len(session.RecommendationProductIDs))
	for _, id := range session.RecommendationProductIDs {
		if p, ok := byID[id]; ok {
			items = append(items, models.RecommendationItem{Product: p, Reason: ReasonPassport})
		}
	}

	return &models.PassportResponse{
		SessionID:       session.ID,
		Engine:          session.Engine,
		Survey:          session.Survey,
		Vibe:            session.Vibe,
		Explanation:     session.Explanation,
		MoodboardImage:  ss.classifier.Table().Image(session.Vibe),
		Recommendations: items,
		CreatedAt:       session.CreatedAt,
	}, nil
}

func (ss *StylistServiceImpl) classify(ctx context.Context, survey models.SurveyInput) vibe.Result {
	res := ss.classifier.Classify(ctx, survey)
	if ss.metrics != nil {
		ss.metrics.Classifications.WithLabelValues(string(res.Engine)).Inc()
		if res.OracleErr != nil {
			ss.metrics.OracleFailures.WithLabelValues(ss.provider).Inc()
		}
	}
	return res
}
