package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/heatwatch/heatwave-alerts/internal/api/metrics"
	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
	"github.com/heatwatch/heatwave-alerts/internal/core/ports"
)

// AlertDeduper abstracts the idempotency store (Redis) for alert fan-out.
type AlertDeduper interface {
	IsDuplicate(ctx context.Context, heatWaveID, userID string) (bool, error)
	Mark(ctx context.Context, heatWaveID, userID string) error
}

type notificationService struct {
	repo  ports.NotificationRepository
	users ports.UserRepository
	waves ports.HeatWaveRepository
	dedup AlertDeduper
	log   zerolog.Logger
}

// NewNotificationService returns a NotificationService implementation.
func NewNotificationService(
	repo ports.NotificationRepository,
	users ports.UserRepository,
	waves ports.HeatWaveRepository,
	dedup AlertDeduper,
	log zerolog.Logger,
) ports.NotificationService {
	return &notificationService{repo: repo, users: users, waves: waves, dedup: dedup, log: log}
}

func (s *notificationService) Create(ctx context.Context, input ports.NotificationInput) (*domain.Notification, error) {
	ntype := domain.NotificationType(input.Type)
	if !ntype.IsValid() {
		return nil, fmt.Errorf("create notification: %w: %s", domain.ErrInvalidNotificationType, input.Type)
	}
	if _, err := s.users.FindByUserID(ctx, input.UserID); err != nil {
		return nil, err
	}
	if _, err := s.waves.FindByID(ctx, input.HeatWaveID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sentAt := input.SentAt
	if sentAt.IsZero() {
		sentAt = now
	}
	n := &domain.Notification{
		Label:      input.Label,
		Type:       ntype,
		SentAt:     sentAt,
		Read:       false,
		UserID:     input.UserID,
		HeatWaveID: input.HeatWaveID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return s.repo.Create(ctx, n)
}

func (s *notificationService) Get(ctx context.Context, id string) (*domain.Notification, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *notificationService) List(ctx context.Context) ([]*domain.Notification, error) {
	return s.repo.List(ctx)
}

func (s *notificationService) ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	if _, err := s.users.FindByUserID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *notificationService) ListUnreadByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	if _, err := s.users.FindByUserID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListUnreadByUser(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, id string) (*domain.Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Read {
		return n, nil
	}

	n.Read = true
	n.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *notificationService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ProcessAlert deduplicates and persists a single heat-wave alert. A user gets
// at most one notification per heat wave.
func (s *notificationService) ProcessAlert(ctx context.Context, job ports.AlertJob) error {
	// 1. Idempotency check — silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, job.HeatWaveID, job.UserID)
	if err != nil {
		s.log.Warn().Err(err).Str("heat_wave_id", job.HeatWaveID).Msg("alert dedup check failed, processing anyway")
	} else if isDup {
		metrics.AlertsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("heat_wave_id", job.HeatWaveID).Str("user_id", job.UserID).Msg("duplicate alert skipped")
		return nil
	}
	metrics.AlertsDedupTotal.WithLabelValues("miss").Inc()

	// 2. Mark before writing so a retried job cannot double-notify.
	if markErr := s.dedup.Mark(ctx, job.HeatWaveID, job.UserID); markErr != nil {
		s.log.Warn().Err(markErr).Str("heat_wave_id", job.HeatWaveID).Msg("failed to set alert dedup key")
	}

	now := time.Now().UTC()
	n := &domain.Notification{
		Label:      job.Label,
		Type:       domain.NotificationAlert,
		SentAt:     job.IssuedAt,
		UserID:     job.UserID,
		HeatWaveID: job.HeatWaveID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := s.repo.Create(ctx, n); err != nil {
		metrics.AlertsErrorsTotal.WithLabelValues("persist_failed").Inc()
		return fmt.Errorf("process alert: %w", err)
	}

	metrics.AlertsDispatchedTotal.Inc()
	s.log.Info().
		Str("heat_wave_id", job.HeatWaveID).
		Str("user_id", job.UserID).
		Msg("alert notification delivered")

	return nil
}
