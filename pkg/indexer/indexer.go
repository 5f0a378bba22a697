package indexer

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"evol-jewels-io/stylist/pkg/util"
)

func indexName(def IndexDefinition) string {
	if def.Index.Options != nil && def.Index.Options.Name != nil {
		return *def.Index.Options.Name
	}
	return ""
}

func (m *Manager) Create(ctx context.Context) (*Result, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	result := &Result{
		Failures: []FailureDetail{},
	}

	for _, def := range m.indexes {
		name := indexName(def)
		if m.options.SkipIfExists && name != "" {
			exists, err := m.indexExists(ctx, def.Collection, name)
			if err == nil && exists {
				util.Logger().Debug().Str("collection", def.Collection).Str("index", name).Msg("index exists, skipping")
				result.SkippedCount++
				continue
			}
		}

		created, err := m.db.Collection(def.Collection).Indexes().CreateOne(ctx, def.Index)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				util.Logger().Warn().Str("collection", def.Collection).Msg("cannot create unique index due to duplicate data")
			} else {
				util.Logger().Error().Err(err).Str("collection", def.Collection).Msg("failed to create index")
			}

			result.FailedCount++
			result.Failures = append(result.Failures, FailureDetail{
				Collection: def.Collection,
				IndexName:  name,
				Error:      err.Error(),
			})

			if !m.options.ContinueOnError {
				result.Duration = time.Since(start)
				return result, err
			}
			continue
		}

		util.Logger().Info().Str("collection", def.Collection).Str("index", created).Msg("created index")
		result.SuccessCount++
	}

	result.Duration = time.Since(start)

	if result.FailedCount > 0 {
		return result, fmt.Errorf("%d indexes failed to create", result.FailedCount)
	}

	return result, nil
}

// Drop removes all non-_id indexes from collections, or from every defined collection when none are named.
func (m *Manager) Drop(ctx context.Context, collections ...string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	targets := collections
	if len(targets) == 0 {
		targets = m.collections()
	}

	for _, name := range targets {
		if _, err := m.db.Collection(name).Indexes().DropAll(ctx); err != nil {
			if !m.options.ContinueOnError {
				return fmt.Errorf("failed to drop indexes for %s: %w", name, err)
			}
			util.Logger().Error().Err(err).Str("collection", name).Msg("failed to drop indexes")
			continue
		}
		util.Logger().Info().Str("collection", name).Msg("dropped indexes")
	}

	return nil
}

func (m *Manager) List(ctx context.Context, collection string) ([]bson.M, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	cursor, err := m.db.Collection(collection).Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var indexes []bson.M
	if err = cursor.All(ctx, &indexes); err != nil {
		return nil, err
	}

	return indexes, nil
}

func (m *Manager) indexExists(ctx context.Context, collection, name string) (bool, error) {
	indexes, err := m.List(ctx, collection)
	if err != nil {
		return false, err
	}

	for _, idx := range indexes {
		if n, ok := idx["name"].(string); ok && n == name {
			return true, nil
		}
	}

	return false, nil
}
