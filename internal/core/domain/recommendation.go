package domain

import (
	"errors"
	"time"
)

var ErrRecommendationNotFound = errors.New("recommendation not found")

// Recommendation is prevention guidance attached to a zone.
type Recommendation struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Label       string    `json:"label" bson:"label"`
	Description string    `json:"description" bson:"description"`
	ZoneID      string    `json:"zone_id" bson:"zone_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
