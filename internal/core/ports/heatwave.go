package ports

import (
	"context"
	"time"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
)

// HeatWaveInput carries the writable fields of a heat wave.
type HeatWaveInput struct {
	MaxTemperature float64
	Intensity      float64
	Humidity       float64
	StartsAt       time.Time
	EndsAt         time.Time
	ZoneID         string
}

// HeatWaveRepository defines persistence operations for heat waves.
type HeatWaveRepository interface {
	Create(ctx context.Context, wave *domain.HeatWave) (*domain.HeatWave, error)
	FindByID(ctx context.Context, id string) (*domain.HeatWave, error)
	List(ctx context.Context) ([]*domain.HeatWave, error)
	ListByZone(ctx context.Context, zoneID string) ([]*domain.HeatWave, error)
	// ListActive returns waves whose [starts_at, ends_at] window contains now.
	ListActive(ctx context.Context, now time.Time) ([]*domain.HeatWave, error)
	Update(ctx context.Context, wave *domain.HeatWave) error
	Delete(ctx context.Context, id string) error
}

// HeatWaveService defines use-case operations for heat waves. Create also
// fans alert notifications out to the residents of the affected zone.
type HeatWaveService interface {
	Create(ctx context.Context, input HeatWaveInput) (*domain.HeatWave, error)
	Get(ctx context.Context, id string) (*domain.HeatWave, error)
	List(ctx context.Context) ([]*domain.HeatWave, error)
	ListByZone(ctx context.Context, zoneID string) ([]*domain.HeatWave, error)
	ListActive(ctx context.Context) ([]*domain.HeatWave, error)
	Update(ctx context.Context, id string, input HeatWaveInput) (*domain.HeatWave, error)
	Delete(ctx context.Context, id string) error
}
