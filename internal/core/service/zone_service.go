package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
	"github.com/heatwatch/heatwave-alerts/internal/core/ports"
)

type zoneService struct {
	repo  ports.ZoneRepository
	users ports.UserRepository
	log   zerolog.Logger
}

// NewZoneService returns a ZoneService implementation.
func NewZoneService(repo ports.ZoneRepository, users ports.UserRepository, log zerolog.Logger) ports.ZoneService {
	return &zoneService{repo: repo, users: users, log: log}
}

func (s *zoneService) Create(ctx context.Context, input ports.ZoneInput) (*domain.Zone, error) {
	now := time.Now().UTC()
	zone := &domain.Zone{
		City:      input.City,
		Street:    input.Street,
		Number:    input.Number,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		RadiusKm:  input.RadiusKm,
		Residents: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, zone)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("zone_id", created.ID).Str("city", created.City).Msg("zone created")
	return created, nil
}

func (s *zoneService) Get(ctx context.Context, id string) (*domain.Zone, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *zoneService) List(ctx context.Context) ([]*domain.Zone, error) {
	return s.repo.List(ctx)
}

func (s *zoneService) Update(ctx context.Context, id string, input ports.ZoneInput) (*domain.Zone, error) {
	zone, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	zone.City = input.City
	zone.Street = input.Street
	zone.Number = input.Number
	zone.Latitude = input.Latitude
	zone.Longitude = input.Longitude
	zone.RadiusKm = input.RadiusKm
	zone.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

func (s *zoneService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// AddResident registers a user as living inside the zone, after checking both
// sides of the relation exist.
func (s *zoneService) AddResident(ctx context.Context, zoneID, userID string) error {
	zone, err := s.repo.FindByID(ctx, zoneID)
	if err != nil {
		return err
	}
	if _, err := s.users.FindByUserID(ctx, userID); err != nil {
		return err
	}
	if zone.HasResident(userID) {
		return domain.ErrAlreadyResident
	}

	if err := s.repo.AddResident(ctx, zoneID, userID); err != nil {
		return err
	}
	s.log.Info().Str("zone_id", zoneID).Str("user_id", userID).Msg("resident added to zone")
	return nil
}

// RemoveResident is the inverse of AddResident; removing a user who is not a
// resident is rejected rather than treated as a no-op.
func (s *zoneService) RemoveResident(ctx context.Context, zoneID, userID string) error {
	zone, err := s.repo.FindByID(ctx, zoneID)
	if err != nil {
		return err
	}
	if _, err := s.users.FindByUserID(ctx, userID); err != nil {
		return err
	}
	if !zone.HasResident(userID) {
		return domain.ErrNotResident
	}

	if err := s.repo.RemoveResident(ctx, zoneID, userID); err != nil {
		return err
	}
	s.log.Info().Str("zone_id", zoneID).Str("user_id", userID).Msg("resident removed from zone")
	return nil
}
