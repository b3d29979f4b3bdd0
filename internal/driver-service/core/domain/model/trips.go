package model

import "encoding/json"

// Trip is the Trip Service's record as this service sees it. The Trip Service
// is authoritative; identifiers and locations are carried through opaquely.
type Trip struct {
	TripID         string          `json:"trip_id"`
	RiderID        string          `json:"rider_id"`
	DriverID       string          `json:"driver_id,omitempty"`
	PickupLocation json.RawMessage `json:"pickup_location,omitempty"`
	DropLocation   json.RawMessage `json:"drop_location,omitempty"`
	Status         string          `json:"status"`
	Fare           float64         `json:"fare,omitempty"`
	Distance       float64         `json:"distance,omitempty"`
	CreatedAt      string          `json:"created_at,omitempty"`
	UpdatedAt      string          `json:"updated_at,omitempty"`
}
