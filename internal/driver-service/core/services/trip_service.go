package services

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"driver-service/internal/driver-service/core/domain/dto"
	"driver-service/internal/driver-service/core/domain/model"
	"driver-service/internal/driver-service/core/myerrors"
	"driver-service/internal/driver-service/core/ports/driven"
	"driver-service/internal/driver-service/core/ports/driver"
	"driver-service/internal/mylogger"
)

// TripService relays trip commands to the Trip Service and normalizes its
// failures. It holds no trip state of its own; the only local side effect is
// the driver status transition that a successful command causes.
type TripService struct {
	gateway driven.ITripGateway
	drivers driver.IDriverStatusAuthority
	log     mylogger.Logger
}

func NewTripService(gateway driven.ITripGateway, drivers driver.IDriverStatusAuthority, log mylogger.Logger) *TripService {
	return &TripService{gateway: gateway, drivers: drivers, log: log}
}

func (ts *TripService) AvailableTrips(ctx context.Context) ([]dto.TripSummary, error) {
	trips, err := ts.gateway.AvailableTrips(ctx)
	if err != nil {
		return nil, classifyFetchError(err, "Failed to fetch available trips")
	}
	summaries := make([]dto.TripSummary, 0, len(trips))
	for _, trip := range trips {
		summaries = append(summaries, dto.TripSummaryFrom(trip))
	}
	return summaries, nil
}

// TripsByDriver degrades to an empty history when the Trip Service cannot be
// asked, so a driver's profile page keeps working through an outage.
func (ts *TripService) TripsByDriver(ctx context.Context, driverID string) ([]dto.DriverTrip, error) {
	trips, err := ts.gateway.TripsByDriver(ctx, driverID)
	if err != nil {
		ts.log.Error("failed to fetch trips for driver", err, "driver_id", driverID)
		return []dto.DriverTrip{}, nil
	}
	results := make([]dto.DriverTrip, 0, len(trips))
	for _, trip := range trips {
		results = append(results, dto.DriverTripFrom(trip))
	}
	return results, nil
}

func (ts *TripService) AcceptTrip(ctx context.Context, tripID, driverID string) (dto.TripActionResponse, error) {
	if tripID == "" || driverID == "" {
		return dto.TripActionResponse{}, myerrors.Validation("trip_id and driver_id are required")
	}

	body, err := ts.gateway.AcceptTrip(ctx, tripID, driverID)
	if err != nil {
		return dto.TripActionResponse{}, classifyGatewayError(err, "Failed to accept trip")
	}

	if err := ts.markOnTrip(ctx, tripID, driverID); err != nil {
		return dto.TripActionResponse{}, err
	}

	return dto.TripActionResponse{Success: true, Data: body}, nil
}

func (ts *TripService) CancelTrip(ctx context.Context, tripID, driverID string) (dto.TripActionResponse, error) {
	if tripID == "" {
		return dto.TripActionResponse{}, myerrors.Validation("trip_id is required")
	}

	body, err := ts.gateway.CancelTrip(ctx, tripID)
	if err != nil {
		return dto.TripActionResponse{}, classifyGatewayError(err, "Failed to cancel trip")
	}

	ts.releaseDriver(ctx, driverID)

	return dto.TripActionResponse{Success: true, Data: body}, nil
}

func (ts *TripService) EndTrip(ctx context.Context, tripID, driverID, distance string) (dto.TripActionResponse, error) {
	if tripID == "" {
		return dto.TripActionResponse{}, myerrors.Validation("trip_id is required")
	}
	dist, err := strconv.ParseFloat(distance, 64)
	if err != nil || math.IsNaN(dist) || math.IsInf(dist, 0) {
		return dto.TripActionResponse{}, myerrors.Validation("distance is required and must be a valid number")
	}

	body, err := ts.gateway.EndTrip(ctx, tripID, dist)
	if err != nil {
		return dto.TripActionResponse{}, classifyGatewayError(err, "Failed to end trip")
	}

	ts.releaseDriver(ctx, driverID)

	return dto.TripActionResponse{Success: true, Data: body}, nil
}

// markOnTrip couples trip acceptance with the driver going busy. When the
// local transition cannot be made the remote accept is rolled back with an
// explicit cancel, so the trip is not left assigned to a driver this service
// never marked ON_TRIP.
func (ts *TripService) markOnTrip(ctx context.Context, tripID, driverID string) error {
	var updated *dto.DriverResponse
	id, err := strconv.ParseInt(driverID, 10, 64)
	if err == nil {
		updated, err = ts.drivers.TransitionStatus(ctx, id, model.StatusOnTrip)
	}
	if err == nil && updated != nil {
		return nil
	}

	if _, cancelErr := ts.gateway.CancelTrip(ctx, tripID); cancelErr != nil {
		ts.log.Error("compensating trip cancel failed", cancelErr, "trip_id", tripID, "driver_id", driverID)
	}

	if err == nil {
		return &myerrors.ServiceError{Status: http.StatusNotFound, Message: "Driver not found"}
	}
	var serviceErr *myerrors.ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr
	}
	return &myerrors.ServiceError{
		Status:  http.StatusInternalServerError,
		Message: "Failed to accept trip",
		Detail:  err.Error(),
	}
}

// releaseDriver puts the driver back on the market after a cancel or end.
// The remote trip is already closed at this point, so a failure here is
// logged and left to the scheduler's reconciliation rather than unwound.
func (ts *TripService) releaseDriver(ctx context.Context, driverID string) {
	if driverID == "" {
		return
	}
	id, err := strconv.ParseInt(driverID, 10, 64)
	if err != nil {
		ts.log.Warn("cannot release driver with non-numeric id", "driver_id", driverID)
		return
	}
	if _, err := ts.drivers.TransitionStatus(ctx, id, model.StatusAvailable); err != nil {
		ts.log.Error("failed to release driver after trip", err, "driver_id", driverID)
	}
}

// classifyGatewayError implements the two-tier failure taxonomy of the trip
// commands: a response from the Trip Service keeps its status and body, no
// response at all becomes a 500 with the operation's generic message.
func classifyGatewayError(err error, fallbackMessage string) *myerrors.ServiceError {
	var gatewayErr *myerrors.GatewayError
	if errors.As(err, &gatewayErr) {
		if gatewayErr.Responded() {
			return &myerrors.ServiceError{
				Status:  gatewayErr.Status,
				Message: "Trip Service Error",
				Detail:  gatewayErr.Body,
			}
		}
		return &myerrors.ServiceError{
			Status:  http.StatusInternalServerError,
			Message: fallbackMessage,
			Detail:  gatewayErr.Err.Error(),
		}
	}
	return &myerrors.ServiceError{
		Status:  http.StatusInternalServerError,
		Message: fallbackMessage,
		Detail:  err.Error(),
	}
}

// classifyFetchError keeps one message for both tiers and only varies the
// status, matching the listing endpoint's contract.
func classifyFetchError(err error, message string) *myerrors.ServiceError {
	var gatewayErr *myerrors.GatewayError
	if errors.As(err, &gatewayErr) {
		if gatewayErr.Responded() {
			return &myerrors.ServiceError{Status: gatewayErr.Status, Message: message, Detail: gatewayErr.Body}
		}
		return &myerrors.ServiceError{Status: http.StatusInternalServerError, Message: message, Detail: gatewayErr.Err.Error()}
	}
	return &myerrors.ServiceError{Status: http.StatusInternalServerError, Message: message, Detail: err.Error()}
}
