package internal

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"evol-jewels-io/stylist/pkg/util"
)

var CHANNEL_GLOBAL_CACHE = "GLOBAL_CACHE"

type CacheMessageType string

const CacheInvalidateCatalog CacheMessageType = "catalog.invalidate"

type CacheMessage struct {
	Type      CacheMessageType `json:"type"`
	Payload   string           `json:"payload"`
	Timestamp int64            `json:"timestamp"`
}

// PublishCacheMessage publishes a cache invalidation message to Redis pub/sub as JSON
func PublishCacheMessage(ctx context.Context, rdb redis.UniversalClient, messageType CacheMessageType, payload string) error {
	cacheMessage := CacheMessage{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}

	messageJSON, err := json.Marshal(cacheMessage)
	if err != nil {
		util.LogError("failed to marshal cache message", err)
		return err
	}

	if err := rdb.Publish(ctx, CHANNEL_GLOBAL_CACHE, string(messageJSON)).Err(); err != nil {
		util.LogError("failed to publish cache message", err)
		return err
	}

	util.Logger().Debug().Str("type", string(messageType)).Str("payload", payload).Msg("published cache message")
	return nil
}

// SubscribeCacheMessages delivers decoded messages to handle until ctx is done.
// Malformed messages are logged and skipped.
func SubscribeCacheMessages(ctx context.Context, rdb redis.UniversalClient, handle func(CacheMessage)) {
	sub := rdb.Subscribe(ctx, CHANNEL_GLOBAL_CACHE)
	defer func() { _ = sub.Close() }()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var m CacheMessage
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				util.LogError("failed to decode cache message", err)
				continue
			}
			handle(m)
		}
	}
}
