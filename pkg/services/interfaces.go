package services

import (
	"context"

	"evol-jewels-io/stylist/pkg/models"
)

// CatalogService defines the interface for product catalog operations
type CatalogService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	FindProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	InsertProducts(ctx context.Context, products []models.Product) error
	ReplaceProducts(ctx context.Context, products []models.Product) error
	CountProducts(ctx context.Context) (int64, error)

	// InvalidateLocal drops the in-process snapshot. Used when another replica changed the catalog.
	InvalidateLocal()
}

// SessionService defines the interface for passport persistence
type SessionService interface {
	RecordSession(ctx context.Context, session models.Session) error
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
}

// StylistService defines the interface for the survey-to-recommendation flow
type StylistService interface {
	SubmitSurvey(ctx context.Context, survey models.SurveyInput) (*models.RecommendationResponse, error)
	ClassifyVibe(ctx context.Context, survey models.SurveyInput) models.VibeResponse
	GetPassport(ctx context.Context, sessionID string) (*models.PassportResponse, error)
}
