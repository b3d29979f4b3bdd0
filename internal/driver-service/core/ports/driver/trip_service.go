package driver

import (
	"context"

	"driver-service/internal/driver-service/core/domain/dto"
)

type ITripService interface {
	AvailableTrips(ctx context.Context) ([]dto.TripSummary, error)
	TripsByDriver(ctx context.Context, driverID string) ([]dto.DriverTrip, error)
	AcceptTrip(ctx context.Context, tripID, driverID string) (dto.TripActionResponse, error)
	CancelTrip(ctx context.Context, tripID, driverID string) (dto.TripActionResponse, error)
	EndTrip(ctx context.Context, tripID, driverID, distance string) (dto.TripActionResponse, error)
}
