package indexer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"evol-jewels-io/stylist/pkg/util"
)

const migrationCollection = "_index_migrations"

type MigrationManager struct {
	db         *mongo.Database
	migrations []Migration
}

func NewMigrationManager(db *mongo.Database) *MigrationManager {
	return &MigrationManager{
		db:         db,
		migrations: []Migration{},
	}
}

func (mm *MigrationManager) AddMigration(migrations ...Migration) *MigrationManager {
	mm.migrations = append(mm.migrations, migrations...)
	return mm
}

// sorted returns the registered migrations ordered by version, newest last unless desc.
func (mm *MigrationManager) sorted(desc bool) []Migration {
	out := append([]Migration(nil), mm.migrations...)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].Version > out[j].Version
		}
		return out[i].Version < out[j].Version
	})
	return out
}

// Run applies every pending migration in version order and stops at the first failure.
func (mm *MigrationManager) Run(ctx context.Context) error {
	coll := mm.db.Collection(migrationCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "version", Value: 1}},
		Options: options.Index().SetName("version_unique").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create migration index: %w", err)
	}

	for _, migration := range mm.sorted(false) {
		applied, err := mm.isApplied(ctx, migration.Version)
		if err != nil {
			return fmt.Errorf("failed to check migration status for %s: %w", migration.Version, err)
		}

		log := util.Logger().With().Str("version", migration.Version).Logger()
		if applied {
			log.Debug().Msg("migration already applied, skipping")
			continue
		}

		log.Info().Str("description", migration.Description).Msg("running migration")

		start := time.Now()
		err = migration.Up(ctx, mm.db)
		duration := time.Since(start)

		status := MigrationStatus{
			Version:   migration.Version,
			AppliedAt: time.Now().UTC(),
			Success:   err == nil,
		}
		filter := bson.M{"version": migration.Version}
		upsert := options.Replace().SetUpsert(true)

		if err != nil {
			log.Error().Err(err).Dur("duration", duration).Msg("migration failed")
			if _, saveErr := coll.ReplaceOne(ctx, filter, status, upsert); saveErr != nil {
				util.LogError("failed to save migration status", saveErr)
			}
			return fmt.Errorf("migration %s failed: %w", migration.Version, err)
		}

		if _, err = coll.ReplaceOne(ctx, filter, status, upsert); err != nil {
			return fmt.Errorf("failed to save migration status: %w", err)
		}

		log.Info().Dur("duration", duration).Msg("migration completed")
	}

	return nil
}

// Rollback reverts applied migrations newer than targetVersion, newest first.
func (mm *MigrationManager) Rollback(ctx context.Context, targetVersion string) error {
	coll := mm.db.Collection(migrationCollection)

	for _, migration := range mm.sorted(true) {
		if migration.Version <= targetVersion {
			break
		}

		applied, err := mm.isApplied(ctx, migration.Version)
		if err != nil {
			return fmt.Errorf("failed to check migration status for %s: %w", migration.Version, err)
		}

		if !applied {
			continue
		}

		if migration.Down == nil {
			return fmt.Errorf("migration %s does not support rollback", migration.Version)
		}

		util.Logger().Info().Str("version", migration.Version).Msg("rolling back migration")

		if err := migration.Down(ctx, mm.db); err != nil {
			return fmt.Errorf("rollback of migration %s failed: %w", migration.Version, err)
		}

		if _, err := coll.DeleteOne(ctx, bson.M{"version": migration.Version}); err != nil {
			return fmt.Errorf("failed to remove migration status: %w", err)
		}
	}

	return nil
}

func (mm *MigrationManager) Status(ctx context.Context) ([]MigrationStatus, error) {
	coll := mm.db.Collection(migrationCollection)
	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "version", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query migration status: %w", err)
	}
	defer cursor.Close(ctx)

	statuses := []MigrationStatus{}
	if err = cursor.All(ctx, &statuses); err != nil {
		return nil, fmt.Errorf("failed to decode migration statuses: %w", err)
	}

	return statuses, nil
}

func (mm *MigrationManager) isApplied(ctx context.Context, version string) (bool, error) {
	coll := mm.db.Collection(migrationCollection)
	count, err := coll.CountDocuments(ctx, bson.M{"version": version, "success": true})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
