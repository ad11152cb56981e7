package ports

import (
	"context"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
)

// RecommendationInput carries the writable fields of a recommendation.
type RecommendationInput struct {
	Label       string
	Description string
	ZoneID      string
}

// RecommendationRepository defines persistence operations for recommendations.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *domain.Recommendation) (*domain.Recommendation, error)
	FindByID(ctx context.Context, id string) (*domain.Recommendation, error)
	List(ctx context.Context) ([]*domain.Recommendation, error)
	ListByZone(ctx context.Context, zoneID string) ([]*domain.Recommendation, error)
	Update(ctx context.Context, rec *domain.Recommendation) error
	Delete(ctx context.Context, id string) error
}

// RecommendationService defines use-case operations for recommendations.
type RecommendationService interface {
	Create(ctx context.Context, input RecommendationInput) (*domain.Recommendation, error)
	Get(ctx context.Context, id string) (*domain.Recommendation, error)
	List(ctx context.Context) ([]*domain.Recommendation, error)
	ListByZone(ctx context.Context, zoneID string) ([]*domain.Recommendation, error)
	Update(ctx context.Context, id string, input RecommendationInput) (*domain.Recommendation, error)
	Delete(ctx context.Context, id string) error
}
