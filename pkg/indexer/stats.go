package indexer

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (m *Manager) Stats(ctx context.Context, collection string) ([]IndexStats, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$indexStats", Value: bson.D{}}},
	}

	cursor, err := m.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to get index stats: %w", err)
	}
	defer cursor.Close(ctx)

	var rawStats []bson.M
	if err = cursor.All(ctx, &rawStats); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}

	stats := make([]IndexStats, 0, len(rawStats))
	for _, raw := range rawStats {
		stats = append(stats, parseIndexStats(raw))
	}

	return stats, nil
}

func parseIndexStats(raw bson.M) IndexStats {
	var stat IndexStats
	stat.Name, _ = raw["name"].(string)
	stat.Host, _ = raw["host"].(string)
	stat.Building, _ = raw["building"].(bool)

	accesses, ok := raw["accesses"].(bson.M)
	if !ok {
		return stat
	}
	switch ops := accesses["ops"].(type) {
	case int64:
		stat.Accesses = ops
	case int32:
		stat.Accesses = int64(ops)
	}
	switch since := accesses["since"].(type) {
	case primitive.DateTime:
		stat.Since = since.Time().UTC()
	case time.Time:
		stat.Since = since.UTC()
	}
	return stat
}

func (m *Manager) StatsAll(ctx context.Context) (map[string][]IndexStats, error) {
	results := make(map[string][]IndexStats)
	for _, name := range m.collections() {
		stats, err := m.Stats(ctx, name)
		if err != nil {
			if m.options.ContinueOnError {
				results[name] = []IndexStats{}
				continue
			}
			return nil, fmt.Errorf("failed to get stats for %s: %w", name, err)
		}
		results[name] = stats
	}

	return results, nil
}
