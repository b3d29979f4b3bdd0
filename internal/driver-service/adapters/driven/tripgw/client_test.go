package tripgw

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"driver-service/internal/config"
	"driver-service/internal/driver-service/core/myerrors"
	"driver-service/internal/mylogger"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	log, err := mylogger.New(mylogger.LevelError)
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}
	return New(&config.TripServiceconfig{BaseURL: baseURL, TimeoutSeconds: 2}, log)
}

func TestAcceptTripRequest(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"trip_id":"t1","status":"ACCEPTED"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	body, err := client.AcceptTrip(context.Background(), "t1", "7")
	if err != nil {
		t.Fatalf("AcceptTrip: %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/v1/trips/t1/accept" {
		t.Errorf("request = %s %s, want POST /v1/trips/t1/accept", gotMethod, gotPath)
	}

	var sent struct {
		DriverID string `json:"driver_id"`
	}
	if err := json.Unmarshal(gotBody, &sent); err != nil {
		t.Fatalf("decoding sent body: %v", err)
	}
	if sent.DriverID != "7" {
		t.Errorf("driver_id sent = %q, want %q", sent.DriverID, "7")
	}

	if !bytes.Contains(body, []byte("ACCEPTED")) {
		t.Errorf("response body not passed through: %s", body)
	}
}

func TestEndTripSendsNumericDistance(t *testing.T) {
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"status":"COMPLETED"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	if _, err := client.EndTrip(context.Background(), "t9", 12.5); err != nil {
		t.Fatalf("EndTrip: %v", err)
	}

	var sent struct {
		Distance float64 `json:"distance"`
	}
	if err := json.Unmarshal(gotBody, &sent); err != nil {
		t.Fatalf("decoding sent body: %v", err)
	}
	if sent.Distance != 12.5 {
		t.Errorf("distance sent = %v, want 12.5", sent.Distance)
	}
}

func TestCancelTripUsesPatch(t *testing.T) {
	var gotMethod, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"status":"CANCELLED"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	if _, err := client.CancelTrip(context.Background(), "t3"); err != nil {
		t.Fatalf("CancelTrip: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/v1/trips/t3/cancel" {
		t.Errorf("request = %s %s, want PATCH /v1/trips/t3/cancel", gotMethod, gotPath)
	}
}

func TestGatewayRejectionKeepsStatusAndBody(t *testing.T) {
	rejection := `{"reason":"already accepted"}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(rejection))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.AcceptTrip(context.Background(), "t1", "7")

	var gatewayErr *myerrors.GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("expected *GatewayError, got %T (%v)", err, err)
	}
	if !gatewayErr.Responded() {
		t.Error("a 409 response should count as responded")
	}
	if gatewayErr.Status != http.StatusConflict {
		t.Errorf("status = %d, want 409", gatewayErr.Status)
	}
	if string(gatewayErr.Body) != rejection {
		t.Errorf("body = %s, want %s", gatewayErr.Body, rejection)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	client := newTestClient(t, srv.URL)

	_, err := client.CancelTrip(context.Background(), "t1")

	var gatewayErr *myerrors.GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("expected *GatewayError, got %T (%v)", err, err)
	}
	if gatewayErr.Responded() {
		t.Error("a refused connection is not a response")
	}
	if gatewayErr.Err == nil {
		t.Error("transport cause should be attached")
	}
}

func TestAvailableTripsDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/trips/available" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"trips":[{"trip_id":"t1","rider_id":"r1","status":"REQUESTED"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	trips, err := client.AvailableTrips(context.Background())
	if err != nil {
		t.Fatalf("AvailableTrips: %v", err)
	}
	if len(trips) != 1 || trips[0].TripID != "t1" || trips[0].Status != "REQUESTED" {
		t.Errorf("trips = %+v", trips)
	}
}

func TestTripsByDriverPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/trips/driver/7" {
			t.Errorf("path = %s, want /v1/trips/driver/7", r.URL.Path)
		}
		w.Write([]byte(`{"trips":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	trips, err := client.TripsByDriver(context.Background(), "7")
	if err != nil {
		t.Fatalf("TripsByDriver: %v", err)
	}
	if len(trips) != 0 {
		t.Errorf("trips = %+v, want none", trips)
	}
}
