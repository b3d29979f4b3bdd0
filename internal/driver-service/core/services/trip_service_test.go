package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"driver-service/internal/driver-service/core/domain/dto"
	"driver-service/internal/driver-service/core/domain/model"
	"driver-service/internal/driver-service/core/myerrors"
)

// --- Mock trip gateway ---

type mockGateway struct {
	availableCalls   int
	driverTripsCalls int
	acceptCalls      int
	cancelCalls      int
	endCalls         int

	trips          []model.Trip
	body           json.RawMessage
	availableErr   error
	driverTripsErr error
	acceptErr      error
	cancelErr      error
	endErr         error

	lastDriverID string
	lastDistance float64
}

func (g *mockGateway) AvailableTrips(_ context.Context) ([]model.Trip, error) {
	g.availableCalls++
	if g.availableErr != nil {
		return nil, g.availableErr
	}
	return g.trips, nil
}

func (g *mockGateway) TripsByDriver(_ context.Context, driverID string) ([]model.Trip, error) {
	g.driverTripsCalls++
	g.lastDriverID = driverID
	if g.driverTripsErr != nil {
		return nil, g.driverTripsErr
	}
	return g.trips, nil
}

func (g *mockGateway) AcceptTrip(_ context.Context, tripID, driverID string) (json.RawMessage, error) {
	g.acceptCalls++
	g.lastDriverID = driverID
	if g.acceptErr != nil {
		return nil, g.acceptErr
	}
	return g.body, nil
}

func (g *mockGateway) CancelTrip(_ context.Context, tripID string) (json.RawMessage, error) {
	g.cancelCalls++
	if g.cancelErr != nil {
		return nil, g.cancelErr
	}
	return g.body, nil
}

func (g *mockGateway) EndTrip(_ context.Context, tripID string, distance float64) (json.RawMessage, error) {
	g.endCalls++
	g.lastDistance = distance
	if g.endErr != nil {
		return nil, g.endErr
	}
	return g.body, nil
}

// --- Mock status authority ---

type statusCall struct {
	driverID int64
	to       model.DriverStatus
}

type mockAuthority struct {
	calls   []statusCall
	err     error
	missing bool
}

func (a *mockAuthority) TransitionStatus(_ context.Context, driverID int64, to model.DriverStatus) (*dto.DriverResponse, error) {
	a.calls = append(a.calls, statusCall{driverID: driverID, to: to})
	if a.err != nil {
		return nil, a.err
	}
	if a.missing {
		return nil, nil
	}
	response := dto.DriverResponse{DriverID: driverID, Status: string(to), IsActive: to.IsActive()}
	return &response, nil
}

func newTripServiceForTest(t *testing.T) (*TripService, *mockGateway, *mockAuthority) {
	t.Helper()
	gateway := &mockGateway{body: json.RawMessage(`{"ok":true}`)}
	authority := &mockAuthority{}
	return NewTripService(gateway, authority, testLogger(t)), gateway, authority
}

func asServiceError(t *testing.T, err error) *myerrors.ServiceError {
	t.Helper()
	var svcErr *myerrors.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %T (%v)", err, err)
	}
	return svcErr
}

// --- Accept ---

func TestAcceptTripValidatesInput(t *testing.T) {
	cases := []struct {
		name     string
		tripID   string
		driverID string
	}{
		{"missing trip id", "", "7"},
		{"missing driver id", "t1", ""},
		{"both missing", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts, gateway, _ := newTripServiceForTest(t)

			_, err := ts.AcceptTrip(context.Background(), tc.tripID, tc.driverID)

			svcErr := asServiceError(t, err)
			if svcErr.Status != 400 {
				t.Errorf("status = %d, want 400", svcErr.Status)
			}
			if gateway.acceptCalls != 0 {
				t.Errorf("gateway called %d times before validation", gateway.acceptCalls)
			}
		})
	}
}

func TestAcceptTripSuccess(t *testing.T) {
	ts, gateway, authority := newTripServiceForTest(t)

	res, err := ts.AcceptTrip(context.Background(), "t1", "7")
	if err != nil {
		t.Fatalf("AcceptTrip: %v", err)
	}

	if !res.Success {
		t.Error("expected success")
	}
	if !bytes.Equal(res.Data, gateway.body) {
		t.Errorf("data = %s, want %s", res.Data, gateway.body)
	}
	if gateway.lastDriverID != "7" {
		t.Errorf("driver id sent = %q, want %q", gateway.lastDriverID, "7")
	}
	if len(authority.calls) != 1 || authority.calls[0] != (statusCall{driverID: 7, to: model.StatusOnTrip}) {
		t.Errorf("status calls = %+v, want one ON_TRIP transition for driver 7", authority.calls)
	}
}

func TestAcceptTripGatewayRejection(t *testing.T) {
	ts, gateway, authority := newTripServiceForTest(t)
	rejection := json.RawMessage(`{"reason":"already accepted"}`)
	gateway.acceptErr = &myerrors.GatewayError{Status: 409, Body: rejection}

	_, err := ts.AcceptTrip(context.Background(), "t1", "7")

	svcErr := asServiceError(t, err)
	if svcErr.Status != 409 {
		t.Errorf("status = %d, want 409", svcErr.Status)
	}
	if svcErr.Message != "Trip Service Error" {
		t.Errorf("message = %q, want %q", svcErr.Message, "Trip Service Error")
	}
	detail, ok := svcErr.Detail.(json.RawMessage)
	if !ok || !bytes.Equal(detail, rejection) {
		t.Errorf("detail = %v, want rejection body verbatim", svcErr.Detail)
	}
	if len(authority.calls) != 0 {
		t.Error("driver status must not change on a rejected accept")
	}
}

func TestAcceptTripTransportFailure(t *testing.T) {
	ts, gateway, _ := newTripServiceForTest(t)
	gateway.acceptErr = &myerrors.GatewayError{Err: errors.New("connection refused")}

	_, err := ts.AcceptTrip(context.Background(), "t1", "7")

	svcErr := asServiceError(t, err)
	if svcErr.Status != 500 {
		t.Errorf("status = %d, want 500", svcErr.Status)
	}
	if svcErr.Message != "Failed to accept trip" {
		t.Errorf("message = %q, want %q", svcErr.Message, "Failed to accept trip")
	}
	if svcErr.Detail != "connection refused" {
		t.Errorf("detail = %v, want transport cause", svcErr.Detail)
	}
}

func TestAcceptTripCompensatesWhenDriverMissing(t *testing.T) {
	ts, gateway, authority := newTripServiceForTest(t)
	authority.missing = true

	_, err := ts.AcceptTrip(context.Background(), "t1", "7")

	svcErr := asServiceError(t, err)
	if svcErr.Status != 404 {
		t.Errorf("status = %d, want 404", svcErr.Status)
	}
	if gateway.cancelCalls != 1 {
		t.Errorf("compensating cancels = %d, want 1", gateway.cancelCalls)
	}
}

func TestAcceptTripCompensatesOnTransitionConflict(t *testing.T) {
	ts, gateway, authority := newTripServiceForTest(t)
	authority.err = &myerrors.ServiceError{Status: 409, Message: "cannot change driver status from OFFLINE to ON_TRIP"}

	_, err := ts.AcceptTrip(context.Background(), "t1", "7")

	svcErr := asServiceError(t, err)
	if svcErr.Status != 409 {
		t.Errorf("status = %d, want 409", svcErr.Status)
	}
	if gateway.cancelCalls != 1 {
		t.Errorf("compensating cancels = %d, want 1", gateway.cancelCalls)
	}
}

// --- Cancel ---

func TestCancelTripRequiresTripID(t *testing.T) {
	ts, gateway, _ := newTripServiceForTest(t)

	_, err := ts.CancelTrip(context.Background(), "", "7")

	svcErr := asServiceError(t, err)
	if svcErr.Status != 400 {
		t.Errorf("status = %d, want 400", svcErr.Status)
	}
	if gateway.cancelCalls != 0 {
		t.Error("gateway must not be called on validation failure")
	}
}

func TestCancelTripReleasesDriver(t *testing.T) {
	ts, _, authority := newTripServiceForTest(t)

	res, err := ts.CancelTrip(context.Background(), "t1", "7")
	if err != nil {
		t.Fatalf("CancelTrip: %v", err)
	}
	if !res.Success {
		t.Error("expected success")
	}
	if len(authority.calls) != 1 || authority.calls[0].to != model.StatusAvailable {
		t.Errorf("status calls = %+v, want one AVAILABLE transition", authority.calls)
	}
}

func TestCancelTripTransportFailure(t *testing.T) {
	ts, gateway, authority := newTripServiceForTest(t)
	gateway.cancelErr = &myerrors.GatewayError{Err: errors.New("i/o timeout")}

	_, err := ts.CancelTrip(context.Background(), "t1", "7")

	svcErr := asServiceError(t, err)
	if svcErr.Status != 500 {
		t.Errorf("status = %d, want 500", svcErr.Status)
	}
	if svcErr.Message != "Failed to cancel trip" {
		t.Errorf("message = %q, want %q", svcErr.Message, "Failed to cancel trip")
	}
	if len(authority.calls) != 0 {
		t.Error("driver status must not change on a failed cancel")
	}
}

// --- End ---

func TestEndTripValidatesDistance(t *testing.T) {
	cases := []struct {
		name     string
		distance string
	}{
		{"non-numeric", "abc"},
		{"empty", ""},
		{"not a number", "NaN"},
		{"infinite", "Inf"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts, gateway, _ := newTripServiceForTest(t)

			_, err := ts.EndTrip(context.Background(), "t1", "7", tc.distance)

			svcErr := asServiceError(t, err)
			if svcErr.Status != 400 {
				t.Errorf("status = %d, want 400", svcErr.Status)
			}
			if gateway.endCalls != 0 {
				t.Error("gateway must not be called on validation failure")
			}
		})
	}
}

func TestEndTripSuccess(t *testing.T) {
	ts, gateway, authority := newTripServiceForTest(t)

	res, err := ts.EndTrip(context.Background(), "t1", "7", "12.5")
	if err != nil {
		t.Fatalf("EndTrip: %v", err)
	}
	if !res.Success {
		t.Error("expected success")
	}
	if gateway.lastDistance != 12.5 {
		t.Errorf("distance sent = %v, want 12.5", gateway.lastDistance)
	}
	if len(authority.calls) != 1 || authority.calls[0].to != model.StatusAvailable {
		t.Errorf("status calls = %+v, want one AVAILABLE transition", authority.calls)
	}
}

func TestEndTripTransportFailure(t *testing.T) {
	ts, gateway, _ := newTripServiceForTest(t)
	gateway.endErr = &myerrors.GatewayError{Err: errors.New("connection reset")}

	_, err := ts.EndTrip(context.Background(), "t1", "7", "3.2")

	svcErr := asServiceError(t, err)
	if svcErr.Status != 500 {
		t.Errorf("status = %d, want 500", svcErr.Status)
	}
	if svcErr.Message != "Failed to end trip" {
		t.Errorf("message = %q, want %q", svcErr.Message, "Failed to end trip")
	}
}

// --- Listings ---

func TestAvailableTripsProjection(t *testing.T) {
	ts, gateway, _ := newTripServiceForTest(t)
	gateway.trips = []model.Trip{
		{
			TripID:         "t1",
			RiderID:        "r1",
			DriverID:       "should not leak",
			PickupLocation: json.RawMessage(`"A"`),
			DropLocation:   json.RawMessage(`"B"`),
			Status:         "REQUESTED",
			Fare:           12.0,
			CreatedAt:      "2026-01-01T00:00:00Z",
		},
	}

	trips, err := ts.AvailableTrips(context.Background())
	if err != nil {
		t.Fatalf("AvailableTrips: %v", err)
	}
	if len(trips) != 1 {
		t.Fatalf("trips = %d, want 1", len(trips))
	}
	got := trips[0]
	if got.TripID != "t1" || got.RiderID != "r1" || got.Status != "REQUESTED" || got.CreatedAt != "2026-01-01T00:00:00Z" {
		t.Errorf("unexpected projection: %+v", got)
	}
}

func TestAvailableTripsFailureStatus(t *testing.T) {
	ts, gateway, _ := newTripServiceForTest(t)
	gateway.availableErr = &myerrors.GatewayError{Status: 503, Body: json.RawMessage(`{"error":"down"}`)}

	_, err := ts.AvailableTrips(context.Background())

	svcErr := asServiceError(t, err)
	if svcErr.Status != 503 {
		t.Errorf("status = %d, want 503", svcErr.Status)
	}
	if svcErr.Message != "Failed to fetch available trips" {
		t.Errorf("message = %q", svcErr.Message)
	}

	gateway.availableErr = &myerrors.GatewayError{Err: errors.New("no route to host")}
	_, err = ts.AvailableTrips(context.Background())

	svcErr = asServiceError(t, err)
	if svcErr.Status != 500 {
		t.Errorf("status = %d, want 500 on transport failure", svcErr.Status)
	}
	if svcErr.Message != "Failed to fetch available trips" {
		t.Errorf("message = %q", svcErr.Message)
	}
}

func TestTripsByDriverDegradesToEmpty(t *testing.T) {
	ts, gateway, _ := newTripServiceForTest(t)
	gateway.driverTripsErr = &myerrors.GatewayError{Err: errors.New("connection refused")}

	trips, err := ts.TripsByDriver(context.Background(), "7")
	if err != nil {
		t.Fatalf("TripsByDriver should swallow gateway failures, got %v", err)
	}
	if trips == nil || len(trips) != 0 {
		t.Errorf("trips = %v, want empty non-nil slice", trips)
	}
}
