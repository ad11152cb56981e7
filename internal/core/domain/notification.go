package domain

import (
	"errors"
	"time"
)

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationAlert   NotificationType = "ALERT"
	NotificationInfo    NotificationType = "INFO"
	NotificationWarning NotificationType = "WARNING"
)

var ErrNotificationNotFound = errors.New("notification not found")
var ErrInvalidNotificationType = errors.New("invalid notification type")

// IsValid reports whether t is a known notification type.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationAlert, NotificationInfo, NotificationWarning:
		return true
	}
	return false
}

// Notification is a message delivered to a user about a heat wave.
type Notification struct {
	ID         string           `json:"id" bson:"_id,omitempty"`
	Label      string           `json:"label" bson:"label"`
	Type       NotificationType `json:"type" bson:"type"`
	SentAt     time.Time        `json:"sent_at" bson:"sent_at"`
	Read       bool             `json:"read" bson:"read"`
	UserID     string           `json:"user_id" bson:"user_id"`
	HeatWaveID string           `json:"heat_wave_id" bson:"heat_wave_id"`
	CreatedAt  time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at" bson:"updated_at"`
}
