package driven

import (
	"context"
	"encoding/json"

	"driver-service/internal/driver-service/core/domain/model"
)

// ITripGateway is the network boundary to the external Trip Service. Failed
// calls return *myerrors.GatewayError so callers can tell a rejection from an
// unreachable service.
type ITripGateway interface {
	AvailableTrips(ctx context.Context) ([]model.Trip, error)
	TripsByDriver(ctx context.Context, driverID string) ([]model.Trip, error)
	AcceptTrip(ctx context.Context, tripID, driverID string) (json.RawMessage, error)
	CancelTrip(ctx context.Context, tripID string) (json.RawMessage, error)
	EndTrip(ctx context.Context, tripID string, distance float64) (json.RawMessage, error)
}
