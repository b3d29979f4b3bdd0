package driven

import (
	"context"

	"driver-service/internal/driver-service/core/domain/model"
)

// IDriverRepository is the driver record store. Lookups return (nil, nil)
// when the identifier does not resolve to a record; absence is a value here,
// not an error.
type IDriverRepository interface {
	Create(ctx context.Context, driver model.Driver) (model.Driver, error)
	GetAll(ctx context.Context) ([]model.Driver, error)
	GetByID(ctx context.Context, driverID int64) (*model.Driver, error)
	FindAvailable(ctx context.Context, vehicleType string) ([]model.Driver, error)
	Update(ctx context.Context, driverID int64, upd model.DriverUpdate) (*model.Driver, error)
	UpdateStatus(ctx context.Context, driverID int64, status model.DriverStatus) (*model.Driver, error)
	Delete(ctx context.Context, driverID int64) (bool, error)
}
