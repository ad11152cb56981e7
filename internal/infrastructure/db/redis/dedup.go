package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Alert dedup keys outlive the longest plausible fan-out retry window; after
// that a re-notification is acceptable.
const alertDedupTTL = 72 * time.Hour

// AlertDedup provides at-most-once alert delivery checks backed by Redis.
// Key format: alert:<heat_wave_id>:<user_id>
type AlertDedup struct {
	client *redis.Client
}

// NewAlertDedup creates an AlertDedup wrapping the given Redis client.
func NewAlertDedup(client *redis.Client) *AlertDedup {
	return &AlertDedup{client: client}
}

// IsDuplicate reports whether this user was already alerted for this heat wave.
func (d *AlertDedup) IsDuplicate(ctx context.Context, heatWaveID, userID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(heatWaveID, userID)).Result()
	if err != nil {
		return false, fmt.Errorf("alert dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that the alert was delivered (expires after alertDedupTTL).
func (d *AlertDedup) Mark(ctx context.Context, heatWaveID, userID string) error {
	return d.client.Set(ctx, d.key(heatWaveID, userID), "1", alertDedupTTL).Err()
}

func (d *AlertDedup) key(heatWaveID, userID string) string {
	return fmt.Sprintf("alert:%s:%s", heatWaveID, userID)
}
