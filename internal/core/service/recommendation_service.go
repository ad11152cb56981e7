package service

import (
	"context"
	"time"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
	"github.com/heatwatch/heatwave-alerts/internal/core/ports"
)

type recommendationService struct {
	repo  ports.RecommendationRepository
	zones ports.ZoneRepository
}

// NewRecommendationService returns a RecommendationService implementation.
func NewRecommendationService(repo ports.RecommendationRepository, zones ports.ZoneRepository) ports.RecommendationService {
	return &recommendationService{repo: repo, zones: zones}
}

func (s *recommendationService) Create(ctx context.Context, input ports.RecommendationInput) (*domain.Recommendation, error) {
	if _, err := s.zones.FindByID(ctx, input.ZoneID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rec := &domain.Recommendation{
		Label:       input.Label,
		Description: input.Description,
		ZoneID:      input.ZoneID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.repo.Create(ctx, rec)
}

func (s *recommendationService) Get(ctx context.Context, id string) (*domain.Recommendation, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *recommendationService) List(ctx context.Context) ([]*domain.Recommendation, error) {
	return s.repo.List(ctx)
}

func (s *recommendationService) ListByZone(ctx context.Context, zoneID string) ([]*domain.Recommendation, error) {
	if _, err := s.zones.FindByID(ctx, zoneID); err != nil {
		return nil, err
	}
	return s.repo.ListByZone(ctx, zoneID)
}

func (s *recommendationService) Update(ctx context.Context, id string, input ports.RecommendationInput) (*domain.Recommendation, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.ZoneID != rec.ZoneID {
		if _, err := s.zones.FindByID(ctx, input.ZoneID); err != nil {
			return nil, err
		}
	}

	rec.Label = input.Label
	rec.Description = input.Description
	rec.ZoneID = input.ZoneID
	rec.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *recommendationService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
