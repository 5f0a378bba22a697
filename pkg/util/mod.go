package util

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB opens and pings a MongoDB client.
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	Logger().Info().Msg("starting MongoDB connection..")

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect mongo")
	}

	// try to ping the database
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "ping mongo")
	}

	LogInfo("MongoDB connection successful")
	return client, nil
}

// ConnectRedis parses url and returns a pinged client. An empty url returns (nil, nil) so
// callers can run without a cache.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		LogWarning("REDIS_URL not set, running without redis")
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}

	LogInfo("redis connection successful..")
	return client, nil
}

// NowISO returns the current UTC time in RFC 3339 with nanoseconds.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
