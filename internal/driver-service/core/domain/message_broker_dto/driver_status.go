package message_broker_dto

import "time"

// DriverStatusEvent is published to the driver_topic exchange on every status
// change so the trip scheduler can reconcile its own view of availability.
type DriverStatusEvent struct {
	DriverID  int64     `json:"driver_id"`
	Status    string    `json:"status"`
	IsActive  bool      `json:"is_active"`
	ChangedAt time.Time `json:"changed_at"`
}
