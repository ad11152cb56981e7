package ports

import (
	"context"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
)

// StatisticInput carries the writable fields of a statistic.
type StatisticInput struct {
	AverageTemperature float64
	WaveCount          int
	HeatWaveID         string
}

// StatisticRepository defines persistence operations for statistics.
// Create must enforce the one-statistic-per-heat-wave constraint and signal a
// violation with domain.ErrStatisticExists.
type StatisticRepository interface {
	Create(ctx context.Context, stat *domain.Statistic) (*domain.Statistic, error)
	FindByID(ctx context.Context, id string) (*domain.Statistic, error)
	// FindByHeatWave returns the single statistic recorded for a heat wave,
	// or domain.ErrStatisticNotFound when none exists.
	FindByHeatWave(ctx context.Context, heatWaveID string) (*domain.Statistic, error)
	List(ctx context.Context) ([]*domain.Statistic, error)
	Update(ctx context.Context, stat *domain.Statistic) error
	Delete(ctx context.Context, id string) error
}

// StatisticService defines use-case operations for statistics.
type StatisticService interface {
	Create(ctx context.Context, input StatisticInput) (*domain.Statistic, error)
	Get(ctx context.Context, id string) (*domain.Statistic, error)
	GetByHeatWave(ctx context.Context, heatWaveID string) (*domain.Statistic, error)
	List(ctx context.Context) ([]*domain.Statistic, error)
	// Summary rolls all recorded statistics up into global totals.
	Summary(ctx context.Context) (*domain.StatisticSummary, error)
	Update(ctx context.Context, id string, input StatisticInput) (*domain.Statistic, error)
	Delete(ctx context.Context, id string) error
}
