package ports

import (
	"context"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
)

// ZoneInput carries the writable fields of a geographic zone.
type ZoneInput struct {
	City      string
	Street    string
	Number    int
	Latitude  string
	Longitude string
	RadiusKm  float64
}

// ZoneRepository defines persistence operations for zones.
type ZoneRepository interface {
	Create(ctx context.Context, zone *domain.Zone) (*domain.Zone, error)
	FindByID(ctx context.Context, id string) (*domain.Zone, error)
	List(ctx context.Context) ([]*domain.Zone, error)
	Update(ctx context.Context, zone *domain.Zone) error
	Delete(ctx context.Context, id string) error
	// AddResident appends userID to the zone's resident list.
	AddResident(ctx context.Context, zoneID, userID string) error
	// RemoveResident drops userID from the zone's resident list.
	RemoveResident(ctx context.Context, zoneID, userID string) error
}

// ZoneService defines use-case operations for zones.
type ZoneService interface {
	Create(ctx context.Context, input ZoneInput) (*domain.Zone, error)
	Get(ctx context.Context, id string) (*domain.Zone, error)
	List(ctx context.Context) ([]*domain.Zone, error)
	Update(ctx context.Context, id string, input ZoneInput) (*domain.Zone, error)
	Delete(ctx context.Context, id string) error
	AddResident(ctx context.Context, zoneID, userID string) error
	RemoveResident(ctx context.Context, zoneID, userID string) error
}
