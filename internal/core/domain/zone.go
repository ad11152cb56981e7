package domain

import (
	"errors"
	"time"
)

var ErrZoneNotFound = errors.New("zone not found")
var ErrAlreadyResident = errors.New("user already resident of zone")
var ErrNotResident = errors.New("user is not a resident of zone")

// Zone is a monitored geographic area. Residents holds the user_ids of the
// people living inside it; they are the recipients of heat-wave alerts.
type Zone struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	City      string    `json:"city" bson:"city"`
	Street    string    `json:"street" bson:"street"`
	Number    int       `json:"number" bson:"number"`
	Latitude  string    `json:"latitude" bson:"latitude"`
	Longitude string    `json:"longitude" bson:"longitude"`
	RadiusKm  float64   `json:"radius_km" bson:"radius_km"`
	Residents []string  `json:"residents" bson:"residents"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// HasResident reports whether userID is already registered in the zone.
func (z *Zone) HasResident(userID string) bool {
	for _, r := range z.Residents {
		if r == userID {
			return true
		}
	}
	return false
}
