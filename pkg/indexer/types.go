// Package indexer manages the MongoDB indexes and data migrations the stylist relies on.
package indexer

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type IndexDefinition struct {
	Collection string
	Index      mongo.IndexModel
}

type Manager struct {
	db      *mongo.Database
	indexes []IndexDefinition
	options *Options
}

type Options struct {
	Timeout         time.Duration
	ContinueOnError bool
	SkipIfExists    bool
}

type Result struct {
	SuccessCount int             `json:"success_count"`
	SkippedCount int             `json:"skipped_count"`
	FailedCount  int             `json:"failed_count"`
	Failures     []FailureDetail `json:"failures"`
	Duration     time.Duration   `json:"duration"`
}

type FailureDetail struct {
	Collection string `json:"collection"`
	IndexName  string `json:"index_name"`
	Error      string `json:"error"`
}

type IndexStats struct {
	Name     string    `json:"name"`
	Accesses int64     `json:"accesses"`
	Since    time.Time `json:"since"`
	Host     string    `json:"host"`
	Building bool      `json:"building"`
}

type Migration struct {
	Version     string
	Description string
	Up          func(context.Context, *mongo.Database) error
	Down        func(context.Context, *mongo.Database) error
}

type MigrationStatus struct {
	Version   string    `bson:"version" json:"version"`
	AppliedAt time.Time `bson:"applied_at" json:"applied_at"`
	Success   bool      `bson:"success" json:"success"`
}

func DefaultOptions() *Options {
	return &Options{
		Timeout:         60 * time.Second,
		ContinueOnError: true,
		SkipIfExists:    true,
	}
}

func NewManager(db *mongo.Database, opts ...*Options) *Manager {
	o := DefaultOptions()
	if len(opts) > 0 && opts[0] != nil {
		o = opts[0]
	}

	return &Manager{
		db:      db,
		indexes: []IndexDefinition{},
		options: o,
	}
}

func (m *Manager) AddIndex(collection string, index mongo.IndexModel) *Manager {
	m.indexes = append(m.indexes, IndexDefinition{
		Collection: collection,
		Index:      index,
	})
	return m
}

// AddUniqueIndex adds an ascending unique index named <collection>_<field>_unique.
func (m *Manager) AddUniqueIndex(collection, field string) *Manager {
	return m.AddIndex(collection, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetName(collection + "_" + field + "_unique").SetUnique(true),
	})
}

func (m *Manager) LoadFromDefinitions(definitions []IndexDefinition) *Manager {
	m.indexes = append(m.indexes, definitions...)
	return m
}

func (m *Manager) Definitions() []IndexDefinition {
	return append([]IndexDefinition(nil), m.indexes...)
}

// collections returns the distinct collections with definitions, in definition order.
func (m *Manager) collections() []string {
	seen := make(map[string]struct{}, len(m.indexes))
	var out []string
	for _, def := range m.indexes {
		if _, ok := seen[def.Collection]; ok {
			continue
		}
		seen[def.Collection] = struct{}{}
		out = append(out, def.Collection)
	}
	return out
}

func (m *Manager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, m.options.Timeout)
}
