package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/mongo"

	"evol-jewels-io/stylist/internal/config"
	"evol-jewels-io/stylist/pkg/indexer"
	"evol-jewels-io/stylist/pkg/util"
)

const actions = "create, drop, list, stats, migrate, status, rollback"

func main() {
	var (
		action      = flag.String("action", "create", "Action: "+actions)
		uri         = flag.String("uri", "", "MongoDB URI (defaults to env DATABASE_URL)")
		dbName      = flag.String("db", "", "Database name (defaults to env DB_NAME)")
		collection  = flag.String("collection", "", "Collection name (for list/stats)")
		target      = flag.String("target", "", "Target version (for rollback)")
		timeout     = flag.Duration("timeout", 60*time.Second, "Operation timeout")
		continueErr = flag.Bool("continue-on-error", true, "Continue on error")
		skipExists  = flag.Bool("skip-if-exists", true, "Skip existing indexes")
		jsonOutput  = flag.Bool("json", false, "Output in JSON format")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatal("failed to load config", err)
	}
	util.InitLogger(cfg.LogLevel, "console", os.Stderr)

	mongoURI := *uri
	if mongoURI == "" {
		mongoURI = cfg.DatabaseURL
	}
	database := *dbName
	if database == "" {
		database = cfg.DBName
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := util.ConnectDB(ctx, mongoURI)
	if err != nil {
		fatal("failed to connect to MongoDB", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(database)
	manager := indexer.NewManager(db, &indexer.Options{
		Timeout:         *timeout,
		ContinueOnError: *continueErr,
		SkipIfExists:    *skipExists,
	}).LoadFromDefinitions(indexer.StylistIndexes())

	switch *action {
	case "create":
		result, err := manager.Create(ctx)
		if *jsonOutput {
			outputJSON(map[string]any{"success": err == nil, "result": result, "error": errorString(err)})
			return
		}
		if err != nil {
			util.LogError("index creation completed with errors", err)
		}
		fmt.Printf("Creating indexes in database: %s\n", database)
		fmt.Printf("  Created: %d\n  Skipped: %d\n  Failed: %d\n  Duration: %v\n",
			result.SuccessCount, result.SkippedCount, result.FailedCount, result.Duration)
		for _, f := range result.Failures {
			fmt.Printf("  - %s.%s: %s\n", f.Collection, f.IndexName, f.Error)
		}

	case "drop":
		err := manager.Drop(ctx, flag.Args()...)
		if *jsonOutput {
			outputJSON(map[string]any{"success": err == nil, "error": errorString(err)})
			return
		}
		if err != nil {
			fatal("failed to drop indexes", err)
		}
		fmt.Println("Indexes dropped successfully")

	case "list":
		if *collection == "" {
			fatal("collection name required for list action (-collection flag)", nil)
		}
		indexes, err := manager.List(ctx, *collection)
		if err != nil {
			fatal("failed to list indexes", err)
		}
		if *jsonOutput {
			outputJSON(indexes)
			return
		}
		fmt.Printf("Indexes for collection %s:\n", *collection)
		for _, idx := range indexes {
			fmt.Printf("  - %v keys=%v unique=%v\n", idx["name"], idx["key"], idx["unique"] == true)
		}

	case "stats":
		stats := map[string][]indexer.IndexStats{}
		if *collection == "" {
			stats, err = manager.StatsAll(ctx)
		} else {
			stats[*collection], err = manager.Stats(ctx, *collection)
		}
		if err != nil {
			fatal("failed to get stats", err)
		}
		if *jsonOutput {
			outputJSON(stats)
			return
		}
		for coll, collStats := range stats {
			fmt.Printf("\n=== %s ===\n", coll)
			for _, stat := range collStats {
				fmt.Printf("  %s: accesses=%d since=%v building=%v\n", stat.Name, stat.Accesses, stat.Since, stat.Building)
			}
		}

	case "migrate":
		err := migrations(db).Run(ctx)
		if *jsonOutput {
			outputJSON(map[string]any{"success": err == nil, "error": errorString(err)})
			return
		}
		if err != nil {
			fatal("migration failed", err)
		}
		fmt.Println("Migrations applied")

	case "status":
		statuses, err := migrations(db).Status(ctx)
		if err != nil {
			fatal("failed to read migration status", err)
		}
		if *jsonOutput {
			outputJSON(statuses)
			return
		}
		for _, s := range statuses {
			fmt.Printf("  %s applied=%v success=%v\n", s.Version, s.AppliedAt.Format(time.RFC3339), s.Success)
		}

	case "rollback":
		if err := migrations(db).Rollback(ctx, *target); err != nil {
			fatal("rollback failed", err)
		}
		fmt.Println("Rollback complete")

	default:
		fmt.Printf("Unknown action: %s\n", *action)
		fmt.Println("Available actions: " + actions)
		os.Exit(1)
	}
}

func migrations(db *mongo.Database) *indexer.MigrationManager {
	return indexer.NewMigrationManager(db).AddMigration(indexer.StylistMigrations()...)
}

func fatal(msg string, err error) {
	util.Logger().Fatal().Err(err).Msg(msg)
}

func outputJSON(data any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fatal("failed to encode JSON", err)
	}
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
