package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
	"github.com/heatwatch/heatwave-alerts/internal/core/ports"
)

type heatWaveService struct {
	repo       ports.HeatWaveRepository
	zones      ports.ZoneRepository
	dispatcher ports.AlertDispatcher
	log        zerolog.Logger
}

// NewHeatWaveService returns a HeatWaveService implementation. The dispatcher
// may be nil, in which case creation skips alert fan-out (used in tests).
func NewHeatWaveService(repo ports.HeatWaveRepository, zones ports.ZoneRepository, dispatcher ports.AlertDispatcher, log zerolog.Logger) ports.HeatWaveService {
	return &heatWaveService{repo: repo, zones: zones, dispatcher: dispatcher, log: log}
}

// Create persists a heat wave and enqueues one alert job per resident of the
// affected zone. Fan-out is asynchronous and best-effort; its failures never
// surface to the caller.
func (s *heatWaveService) Create(ctx context.Context, input ports.HeatWaveInput) (*domain.HeatWave, error) {
	zone, err := s.zones.FindByID(ctx, input.ZoneID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	wave := &domain.HeatWave{
		MaxTemperature: input.MaxTemperature,
		Intensity:      input.Intensity,
		Humidity:       input.Humidity,
		StartsAt:       input.StartsAt,
		EndsAt:         input.EndsAt,
		ZoneID:         zone.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, wave)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("heat_wave_id", created.ID).
		Str("zone_id", zone.ID).
		Float64("max_temperature", created.MaxTemperature).
		Int("residents", len(zone.Residents)).
		Msg("heat wave recorded")

	if s.dispatcher != nil && len(zone.Residents) > 0 {
		label := fmt.Sprintf("Heat wave alert: up to %.1f°C expected in %s", created.MaxTemperature, zone.City)
		jobs := make([]ports.AlertJob, 0, len(zone.Residents))
		for _, userID := range zone.Residents {
			jobs = append(jobs, ports.AlertJob{
				HeatWaveID: created.ID,
				ZoneID:     zone.ID,
				UserID:     userID,
				Label:      label,
				IssuedAt:   now,
			})
		}
		s.dispatcher.EnqueueBatch(jobs)
	}

	return created, nil
}

func (s *heatWaveService) Get(ctx context.Context, id string) (*domain.HeatWave, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *heatWaveService) List(ctx context.Context) ([]*domain.HeatWave, error) {
	return s.repo.List(ctx)
}

func (s *heatWaveService) ListByZone(ctx context.Context, zoneID string) ([]*domain.HeatWave, error) {
	if _, err := s.zones.FindByID(ctx, zoneID); err != nil {
		return nil, err
	}
	return s.repo.ListByZone(ctx, zoneID)
}

// ListActive returns the waves whose window contains the current instant.
func (s *heatWaveService) ListActive(ctx context.Context) ([]*domain.HeatWave, error) {
	return s.repo.ListActive(ctx, time.Now().UTC())
}

func (s *heatWaveService) Update(ctx context.Context, id string, input ports.HeatWaveInput) (*domain.HeatWave, error) {
	wave, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.ZoneID != wave.ZoneID {
		if _, err := s.zones.FindByID(ctx, input.ZoneID); err != nil {
			return nil, err
		}
	}

	wave.MaxTemperature = input.MaxTemperature
	wave.Intensity = input.Intensity
	wave.Humidity = input.Humidity
	wave.StartsAt = input.StartsAt
	wave.EndsAt = input.EndsAt
	wave.ZoneID = input.ZoneID
	wave.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, wave); err != nil {
		return nil, err
	}
	return wave, nil
}

func (s *heatWaveService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
