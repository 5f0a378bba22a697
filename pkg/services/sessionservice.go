package services

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"evol-jewels-io/stylist/internal/common"
	"evol-jewels-io/stylist/pkg/models"
	"evol-jewels-io/stylist/pkg/util"
)

// SessionServiceImpl implements the SessionService interface
type SessionServiceImpl struct {
	sessionCollection *mongo.Collection
	rdb               *redis.Client
	ttl               time.Duration
}

// NewSessionService creates a new instance of SessionService. rdb may be nil.
func NewSessionService(db *mongo.Database, rdb *redis.Client, ttl time.Duration) *SessionServiceImpl {
	return &SessionServiceImpl{
		sessionCollection: db.Collection(common.SessionCollection),
		rdb:               rdb,
		ttl:               ttl,
	}
}

// RecordSession persists a completed run. Sessions are write-once.
func (ss *SessionServiceImpl) RecordSession(ctx context.Context, session models.Session) error {
	if session.RecommendationProductIDs == nil {
		session.RecommendationProductIDs = []string{}
	}
	if _, err := ss.sessionCollection.InsertOne(ctx, session); err != nil {
		return errors.Wrap(err, "record session")
	}
	ss.cache(ctx, &session)
	return nil
}

// GetSession returns ErrSessionNotFound for ids that were never recorded.
func (ss *SessionServiceImpl) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	if session, ok := ss.cached(ctx, sessionID); ok {
		return session, nil
	}

	var session models.Session
	opts := options.FindOne().SetProjection(bson.M{"_id": 0})
	err := ss.sessionCollection.FindOne(ctx, bson.M{"id": sessionID}, opts).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Wrap(err, "lookup session")
	}

	ss.cache(ctx, &session)
	return &session, nil
}

func passportKey(id string) string {
	return common.PassportCacheKeyBase + id
}

func (ss *SessionServiceImpl) cached(ctx context.Context, id string) (*models.Session, bool) {
	if ss.rdb == nil || ss.ttl <= 0 {
		return nil, false
	}
	raw, err := ss.rdb.Get(ctx, passportKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			util.LogError("failed to read passport cache", err)
		}
		return nil, false
	}
	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		util.LogError("failed to decode passport cache", err)
		return nil, false
	}
	return &session, true
}

func (ss *SessionServiceImpl) cache(ctx context.Context, session *models.Session) {
	if ss.rdb == nil || ss.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(session)
	if err != nil {
		util.LogError("failed to encode passport cache", err)
		return
	}
	if err := ss.rdb.Set(ctx, passportKey(session.ID), raw, ss.ttl).Err(); err != nil {
		util.LogError("failed to write passport cache", err)
	}
}
