package driver

import (
	"context"

	"driver-service/internal/driver-service/core/domain/dto"
	"driver-service/internal/driver-service/core/domain/model"
)

// IDriverStatusAuthority is the single choke point for driver status changes.
// Every component that needs to flip availability goes through it.
type IDriverStatusAuthority interface {
	TransitionStatus(ctx context.Context, driverID int64, to model.DriverStatus) (*dto.DriverResponse, error)
}

type IDriverService interface {
	IDriverStatusAuthority

	Register(ctx context.Context, req dto.RegisterDriverRequest) (dto.DriverResponse, error)
	GetAll(ctx context.Context) ([]dto.DriverResponse, error)
	GetByID(ctx context.Context, driverID int64) (*dto.DriverResponse, error)
	FindAvailable(ctx context.Context, vehicleType string) ([]dto.DriverResponse, error)
	Update(ctx context.Context, driverID int64, req dto.UpdateDriverRequest) (*dto.DriverResponse, error)
	Delete(ctx context.Context, driverID int64) (bool, error)
	SetAvailability(ctx context.Context, driverID int64, active bool) (*dto.DriverResponse, error)
}
