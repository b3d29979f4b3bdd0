package model

// DriverStatus is the tagged availability state of a driver. It replaces a raw
// boolean so that trip acceptance and trip completion are explicit causes of a
// state change instead of independent writes.
type DriverStatus string

const (
	StatusAvailable DriverStatus = "AVAILABLE"
	StatusOnTrip    DriverStatus = "ON_TRIP"
	StatusOffline   DriverStatus = "OFFLINE"
)

// IsActive reports whether the driver is eligible for new trip assignment.
// The HTTP boundary exposes this as the is_active flag.
func (s DriverStatus) IsActive() bool {
	return s == StatusAvailable
}

func (s DriverStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusOnTrip, StatusOffline:
		return true
	}
	return false
}

// CanTransition reports whether a change from s to the target state is
// allowed. An offline driver cannot be put on a trip without going online
// first; everything else is reachable.
func (s DriverStatus) CanTransition(to DriverStatus) bool {
	if s == to {
		return true
	}
	if s == StatusOffline && to == StatusOnTrip {
		return false
	}
	return to.Valid()
}

// StatusForActive maps the boundary's is_active flag onto the tagged state.
func StatusForActive(active bool) DriverStatus {
	if active {
		return StatusAvailable
	}
	return StatusOffline
}

type Driver struct {
	DriverID     int64
	Name         string
	Phone        string
	VehicleType  string
	VehiclePlate string
	Status       DriverStatus
}

// DriverUpdate carries the fields of a partial update; nil means "leave as is".
type DriverUpdate struct {
	Name         *string
	Phone        *string
	VehicleType  *string
	VehiclePlate *string
}
