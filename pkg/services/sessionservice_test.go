package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"evol-jewels-io/stylist/pkg/models"
)

const sessionNS = "stylist.sessions"

func sampleSession() models.Session {
	return models.Session{
		ID:                       "s-1",
		CreatedAt:                "2024-09-01T10:00:00Z",
		Survey:                   models.SurveyInput{Occasion: "Wedding", Style: "Classic", Budget: "₹25,000–₹65,000"},
		Vibe:                     "Bridal Grace",
		Explanation:              "Pearls.",
		Engine:                   models.EngineRules,
		RecommendationProductIDs: []string{"p3", "p1"},
	}
}

func TestSessionServiceMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("record", func(mt *mtest.T) {
		ss := NewSessionService(mt.DB, nil, 0)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, ss.RecordSession(context.Background(), sampleSession()))
	})

	mt.Run("record failure", func(mt *mtest.T) {
		ss := NewSessionService(mt.DB, nil, 0)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		assert.Error(mt, ss.RecordSession(context.Background(), sampleSession()))
	})

	mt.Run("lookup", func(mt *mtest.T) {
		ss := NewSessionService(mt.DB, nil, 0)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, sessionNS, mtest.FirstBatch, bson.D{
			{Key: "id", Value: "s-1"},
			{Key: "created_at", Value: "2024-09-01T10:00:00Z"},
			{Key: "survey", Value: bson.D{{Key: "occasion", Value: "Wedding"}, {Key: "style", Value: "Classic"}, {Key: "budget", Value: "₹25,000–₹65,000"}}},
			{Key: "vibe", Value: "Bridal Grace"},
			{Key: "explanation", Value: "Pearls."},
			{Key: "engine", Value: "rules"},
			{Key: "recommendation_product_ids", Value: bson.A{"p3", "p1"}},
		}))

		session, err := ss.GetSession(context.Background(), "s-1")

		require.NoError(mt, err)
		assert.Equal(mt, sampleSession(), *session)
	})

	mt.Run("lookup unknown", func(mt *mtest.T) {
		ss := NewSessionService(mt.DB, nil, 0)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, sessionNS, mtest.FirstBatch))

		session, err := ss.GetSession(context.Background(), "nope")

		assert.Nil(mt, session)
		assert.ErrorIs(mt, err, ErrSessionNotFound)
	})
}

func TestSessionServiceCache(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("record then lookup from redis", func(mt *mtest.T) {
		mr, rdb := newRedis(mt.T)
		ss := NewSessionService(mt.DB, rdb, 10*time.Minute)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, ss.RecordSession(context.Background(), sampleSession()))
		assert.True(mt, mr.Exists("passport:s-1"))

		// served without a mongo round trip
		session, err := ss.GetSession(context.Background(), "s-1")
		require.NoError(mt, err)
		assert.Equal(mt, sampleSession(), *session)
	})

	mt.Run("corrupt cache falls through to mongo", func(mt *mtest.T) {
		mr, rdb := newRedis(mt.T)
		require.NoError(mt, mr.Set("passport:s-2", "not json"))
		ss := NewSessionService(mt.DB, rdb, 10*time.Minute)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, sessionNS, mtest.FirstBatch))

		_, err := ss.GetSession(context.Background(), "s-2")

		assert.ErrorIs(mt, err, ErrSessionNotFound)
	})
}
