package domain

import (
	"errors"
	"time"
)

var ErrStatisticNotFound = errors.New("statistic not found")
var ErrStatisticExists = errors.New("statistic already exists for heat wave")

// StatisticSummary is the global roll-up across all recorded statistics.
type StatisticSummary struct {
	TotalStatistics    int     `json:"total_statistics"`
	TotalWaveCount     int     `json:"total_wave_count"`
	AverageTemperature float64 `json:"average_temperature"`
}

// Statistic aggregates measurements for a single heat wave (one per wave).
type Statistic struct {
	ID                 string    `json:"id" bson:"_id,omitempty"`
	AverageTemperature float64   `json:"average_temperature" bson:"average_temperature"`
	WaveCount          int       `json:"wave_count" bson:"wave_count"`
	HeatWaveID         string    `json:"heat_wave_id" bson:"heat_wave_id"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" bson:"updated_at"`
}
