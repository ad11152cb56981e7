package domain

import (
	"errors"
	"time"
)

var ErrHeatWaveNotFound = errors.New("heat wave not found")

// HeatWave records a measured heat episode over a zone.
type HeatWave struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	MaxTemperature float64   `json:"max_temperature" bson:"max_temperature"`
	Intensity      float64   `json:"intensity" bson:"intensity"`
	Humidity       float64   `json:"humidity" bson:"humidity"`
	StartsAt       time.Time `json:"starts_at" bson:"starts_at"`
	EndsAt         time.Time `json:"ends_at" bson:"ends_at"`
	ZoneID         string    `json:"zone_id" bson:"zone_id"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}
