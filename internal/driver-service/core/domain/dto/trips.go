package dto

import (
	"encoding/json"

	"driver-service/internal/driver-service/core/domain/model"
)

// TripSummary is the reduced public shape of an unassigned trip.
type TripSummary struct {
	TripID         string          `json:"trip_id"`
	RiderID        string          `json:"rider_id"`
	PickupLocation json.RawMessage `json:"pickup_location,omitempty"`
	DropLocation   json.RawMessage `json:"drop_location,omitempty"`
	Status         string          `json:"status"`
	CreatedAt      string          `json:"created_at,omitempty"`
}

// DriverTrip is one entry of a driver's trip history.
type DriverTrip struct {
	TripID         string          `json:"trip_id"`
	RiderID        string          `json:"rider_id"`
	DriverID       string          `json:"driver_id"`
	PickupLocation json.RawMessage `json:"pickup_location,omitempty"`
	DropLocation   json.RawMessage `json:"drop_location,omitempty"`
	Status         string          `json:"status"`
	Fare           float64         `json:"fare"`
	Distance       float64         `json:"distance"`
	CreatedAt      string          `json:"created_at,omitempty"`
	UpdatedAt      string          `json:"updated_at,omitempty"`
}

// TripActionResponse is the normalized success shape of accept/cancel/end.
// Data carries the Trip Service's response body verbatim.
type TripActionResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type AvailableTripsResponse struct {
	Message string        `json:"message"`
	Trips   []TripSummary `json:"trips"`
}

func TripSummaryFrom(t model.Trip) TripSummary {
	var summary TripSummary
	summary.TripID = t.TripID
	summary.RiderID = t.RiderID
	summary.PickupLocation = t.PickupLocation
	summary.DropLocation = t.DropLocation
	summary.Status = t.Status
	summary.CreatedAt = t.CreatedAt
	return summary
}

func DriverTripFrom(t model.Trip) DriverTrip {
	var trip DriverTrip
	trip.TripID = t.TripID
	trip.RiderID = t.RiderID
	trip.DriverID = t.DriverID
	trip.PickupLocation = t.PickupLocation
	trip.DropLocation = t.DropLocation
	trip.Status = t.Status
	trip.Fare = t.Fare
	trip.Distance = t.Distance
	trip.CreatedAt = t.CreatedAt
	trip.UpdatedAt = t.UpdatedAt
	return trip
}
