package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"driver-service/internal/driver-service/core/domain/dto"
	"driver-service/internal/driver-service/core/domain/message_broker_dto"
	"driver-service/internal/driver-service/core/domain/model"
	"driver-service/internal/driver-service/core/myerrors"
	"driver-service/internal/driver-service/core/ports/driven"
	"driver-service/internal/mylogger"
)

const (
	driverExchange          = "driver_topic"
	statusChangedRoutingKey = "driver.status_changed"
)

// DriverService owns driver records and is the only writer of the
// availability state.
type DriverService struct {
	repo     driven.IDriverRepository
	log      mylogger.Logger
	broker   driven.IStatusBroker
	notifier driven.IDriverNotifier
}

func NewDriverService(repo driven.IDriverRepository, log mylogger.Logger, broker driven.IStatusBroker, notifier driven.IDriverNotifier) *DriverService {
	return &DriverService{repo: repo, log: log, broker: broker, notifier: notifier}
}

func (ds *DriverService) Register(ctx context.Context, req dto.RegisterDriverRequest) (dto.DriverResponse, error) {
	driver := model.Driver{
		Name:         req.Name,
		Phone:        req.Phone,
		VehicleType:  req.VehicleType,
		VehiclePlate: req.VehiclePlate,
		Status:       model.StatusAvailable,
	}
	created, err := ds.repo.Create(ctx, driver)
	if err != nil {
		return dto.DriverResponse{}, err
	}
	return dto.DriverResponseFrom(created), nil
}

func (ds *DriverService) GetAll(ctx context.Context) ([]dto.DriverResponse, error) {
	drivers, err := ds.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DriverResponse, 0, len(drivers))
	for _, driver := range drivers {
		results = append(results, dto.DriverResponseFrom(driver))
	}
	return results, nil
}

func (ds *DriverService) GetByID(ctx context.Context, driverID int64) (*dto.DriverResponse, error) {
	driver, err := ds.repo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, nil
	}
	response := dto.DriverResponseFrom(*driver)
	return &response, nil
}

func (ds *DriverService) FindAvailable(ctx context.Context, vehicleType string) ([]dto.DriverResponse, error) {
	drivers, err := ds.repo.FindAvailable(ctx, vehicleType)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DriverResponse, 0, len(drivers))
	for _, driver := range drivers {
		results = append(results, dto.DriverResponseFrom(driver))
	}
	return results, nil
}

func (ds *DriverService) Update(ctx context.Context, driverID int64, req dto.UpdateDriverRequest) (*dto.DriverResponse, error) {
	upd := model.DriverUpdate{
		Name:         req.Name,
		Phone:        req.Phone,
		VehicleType:  req.VehicleType,
		VehiclePlate: req.VehiclePlate,
	}
	driver, err := ds.repo.Update(ctx, driverID, upd)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, nil
	}
	response := dto.DriverResponseFrom(*driver)
	return &response, nil
}

func (ds *DriverService) Delete(ctx context.Context, driverID int64) (bool, error) {
	return ds.repo.Delete(ctx, driverID)
}

// SetAvailability maps the scheduler-facing is_active flag onto the tagged
// state: true puts the driver back on the market, false takes them off it.
func (ds *DriverService) SetAvailability(ctx context.Context, driverID int64, active bool) (*dto.DriverResponse, error) {
	return ds.TransitionStatus(ctx, driverID, model.StatusForActive(active))
}

// TransitionStatus validates and persists a status change, then announces it.
// It returns (nil, nil) when the driver does not exist.
func (ds *DriverService) TransitionStatus(ctx context.Context, driverID int64, to model.DriverStatus) (*dto.DriverResponse, error) {
	current, err := ds.repo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}
	if !current.Status.CanTransition(to) {
		return nil, &myerrors.ServiceError{
			Status:  http.StatusConflict,
			Message: fmt.Sprintf("cannot change driver status from %s to %s", current.Status, to),
		}
	}

	updated, err := ds.repo.UpdateStatus(ctx, driverID, to)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	ds.announceStatus(ctx, *updated)

	response := dto.DriverResponseFrom(*updated)
	return &response, nil
}

// announceStatus is best effort: the store row is the source of truth, a
// failed broadcast only delays the scheduler's reconciliation.
func (ds *DriverService) announceStatus(ctx context.Context, driver model.Driver) {
	event := message_broker_dto.DriverStatusEvent{
		DriverID:  driver.DriverID,
		Status:    string(driver.Status),
		IsActive:  driver.Status.IsActive(),
		ChangedAt: time.Now().UTC(),
	}

	if ds.broker != nil {
		if err := ds.broker.PublishJSON(ctx, driverExchange, statusChangedRoutingKey, event); err != nil {
			ds.log.Error("failed to publish driver status event", err, "driver_id", driver.DriverID)
		}
	}

	if ds.notifier != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			ds.log.Error("failed to marshal driver status event", err, "driver_id", driver.DriverID)
			return
		}
		driverID := strconv.FormatInt(driver.DriverID, 10)
		if err := ds.notifier.SendToDriver(ctx, driverID, payload); err != nil {
			ds.log.Warn("failed to notify driver over websocket", "driver_id", driver.DriverID)
		}
	}
}
