package service

import (
	"context"
	"time"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
	"github.com/heatwatch/heatwave-alerts/internal/core/ports"
)

type statisticService struct {
	repo  ports.StatisticRepository
	waves ports.HeatWaveRepository
}

// NewStatisticService returns a StatisticService implementation.
func NewStatisticService(repo ports.StatisticRepository, waves ports.HeatWaveRepository) ports.StatisticService {
	return &statisticService{repo: repo, waves: waves}
}

func (s *statisticService) Create(ctx context.Context, input ports.StatisticInput) (*domain.Statistic, error) {
	if _, err := s.waves.FindByID(ctx, input.HeatWaveID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stat := &domain.Statistic{
		AverageTemperature: input.AverageTemperature,
		WaveCount:          input.WaveCount,
		HeatWaveID:         input.HeatWaveID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	return s.repo.Create(ctx, stat)
}

func (s *statisticService) Get(ctx context.Context, id string) (*domain.Statistic, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByHeatWave resolves the single statistic attached to a heat wave. The
// wave is checked first so a missing wave and a missing statistic produce
// distinct not-found errors.
func (s *statisticService) GetByHeatWave(ctx context.Context, heatWaveID string) (*domain.Statistic, error) {
	if _, err := s.waves.FindByID(ctx, heatWaveID); err != nil {
		return nil, err
	}
	return s.repo.FindByHeatWave(ctx, heatWaveID)
}

func (s *statisticService) List(ctx context.Context) ([]*domain.Statistic, error) {
	return s.repo.List(ctx)
}

// Summary aggregates every recorded statistic into global totals. An empty
// store yields a zero-valued summary, not an error.
func (s *statisticService) Summary(ctx context.Context) (*domain.StatisticSummary, error) {
	stats, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &domain.StatisticSummary{TotalStatistics: len(stats)}
	if len(stats) == 0 {
		return summary, nil
	}

	var tempSum float64
	for _, stat := range stats {
		summary.TotalWaveCount += stat.WaveCount
		tempSum += stat.AverageTemperature
	}
	summary.AverageTemperature = tempSum / float64(len(stats))
	return summary, nil
}

func (s *statisticService) Update(ctx context.Context, id string, input ports.StatisticInput) (*domain.Statistic, error) {
	stat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.HeatWaveID != stat.HeatWaveID {
		if _, err := s.waves.FindByID(ctx, input.HeatWaveID); err != nil {
			return nil, err
		}
	}

	stat.AverageTemperature = input.AverageTemperature
	stat.WaveCount = input.WaveCount
	stat.HeatWaveID = input.HeatWaveID
	stat.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, stat); err != nil {
		return nil, err
	}
	return stat, nil
}

func (s *statisticService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
