package ports

import (
	"context"
	"time"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
)

// NotificationInput carries the writable fields of a notification.
type NotificationInput struct {
	Label      string
	Type       string
	SentAt     time.Time
	UserID     string
	HeatWaveID string
}

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	FindByID(ctx context.Context, id string) (*domain.Notification, error)
	List(ctx context.Context) ([]*domain.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	ListUnreadByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	Update(ctx context.Context, n *domain.Notification) error
	Delete(ctx context.Context, id string) error
}

// NotificationService defines use-case operations for notifications, plus the
// alert-job processing entrypoint invoked by the fan-out dispatcher workers.
type NotificationService interface {
	Create(ctx context.Context, input NotificationInput) (*domain.Notification, error)
	Get(ctx context.Context, id string) (*domain.Notification, error)
	List(ctx context.Context) ([]*domain.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	ListUnreadByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id string) (*domain.Notification, error)
	Delete(ctx context.Context, id string) error
	// ProcessAlert deduplicates and persists one heat-wave alert for one user.
	ProcessAlert(ctx context.Context, job AlertJob) error
}
