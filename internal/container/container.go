package container

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"evol-jewels-io/stylist/internal/config"
	"evol-jewels-io/stylist/internal/metrics"
	"evol-jewels-io/stylist/pkg/controllers"
	"evol-jewels-io/stylist/pkg/oracle"
	"evol-jewels-io/stylist/pkg/recommend"
	"evol-jewels-io/stylist/pkg/services"
	"evol-jewels-io/stylist/pkg/util"
	"evol-jewels-io/stylist/pkg/vibe"
)

type ServiceContainer struct {
	Config   config.Config
	Database *mongo.Database
	Redis    *redis.Client
	Metrics  *metrics.Metrics
	Table    *vibe.Table

	CatalogService services.CatalogService
	SessionService services.SessionService
	StylistService services.StylistService

	CatalogController *controllers.CatalogController
	StylistController *controllers.StylistController
}

// NewServiceContainer wires the services over db. rdb may be nil.
func NewServiceContainer(ctx context.Context, cfg config.Config, db *mongo.Database, rdb *redis.Client) (*ServiceContainer, error) {
	table := vibe.DefaultTable()
	m := metrics.New()

	o, err := NewOracle(ctx, cfg, table)
	if err != nil {
		return nil, err
	}
	classifier := vibe.NewClassifier(table, o, cfg.OracleTimeout)
	util.Logger().Info().Bool("oracle", classifier.OracleEnabled()).Str("provider", cfg.Provider()).Msg("vibe classifier ready")
	scorer := recommend.NewScorer(recommend.DefaultBudgets, cfg.USDToINR)

	catalogService := services.NewCatalogService(db, rdb, cfg.CatalogCacheTTL)
	sessionService := services.NewSessionService(db, rdb, cfg.PassportCacheTTL)
	stylistService := services.NewStylistService(classifier, scorer, catalogService, sessionService, m, cfg.Provider())

	return &ServiceContainer{
		Config:   cfg,
		Database: db,
		Redis:    rdb,
		Metrics:  m,
		Table:    table,

		CatalogService: catalogService,
		SessionService: sessionService,
		StylistService: stylistService,

		CatalogController: controllers.InitCatalogController(catalogService),
		StylistController: controllers.InitStylistController(stylistService),
	}, nil
}

// NewOracle builds the configured oracle. It returns a nil interface when the oracle is disabled.
func NewOracle(ctx context.Context, cfg config.Config, table *vibe.Table) (vibe.Oracle, error) {
	switch cfg.Provider() {
	case config.ProviderOpenAI:
		o := oracle.NewOpenAI(oracle.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Models:  cfg.OracleModels(),
		}, table)
		util.Logger().Info().Strs("models", o.Models()).Msg("vibe oracle enabled")
		return o, nil
	case config.ProviderArk:
		o, err := oracle.NewArk(ctx, oracle.ArkConfig{
			APIKey:  cfg.ArkAPIKey,
			BaseURL: cfg.ArkBaseURL,
			Model:   cfg.ArkModel,
		}, table)
		if err != nil {
			return nil, errors.Wrap(err, "init ark oracle")
		}
		util.Logger().Info().Str("model", cfg.ArkModel).Msg("vibe oracle enabled")
		return o, nil
	default:
		util.LogInfo("vibe oracle disabled, using rules only")
		return nil, nil
	}
}
