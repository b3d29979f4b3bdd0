package handle

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"driver-service/internal/driver-service/core/domain/dto"
	"driver-service/internal/driver-service/core/ports/driver"
	"driver-service/internal/mylogger"
)

type TripHandler struct {
	tripService driver.ITripService
	log         mylogger.Logger
}

func NewTripHandler(tripService driver.ITripService, log mylogger.Logger) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		log:         log,
	}
}

func (th *TripHandler) AvailableTrips() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trips, err := th.tripService.AvailableTrips(context.Background())
		if err != nil {
			th.log.Error("failed to fetch available trips", err)
			serviceError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, dto.AvailableTripsResponse{
			Message: "Available trips fetched successfully",
			Trips:   trips,
		})
	}
}

func (th *TripHandler) TripsByDriver() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID := r.PathValue("id")

		trips, err := th.tripService.TripsByDriver(context.Background(), driverID)
		if err != nil {
			th.log.Error("failed to fetch driver trips", err, "driver_id", driverID)
			serviceError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, trips)
	}
}

func (th *TripHandler) Accept() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID := r.PathValue("driver_id")
		tripID := r.PathValue("trip_id")

		res, err := th.tripService.AcceptTrip(context.Background(), tripID, driverID)
		if err != nil {
			th.log.Error("failed to accept trip", err, "trip_id", tripID, "driver_id", driverID)
			serviceError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"message": "Trip accepted successfully",
			"data":    res.Data,
		})
	}
}

func (th *TripHandler) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID := r.PathValue("driver_id")
		tripID := r.PathValue("trip_id")

		res, err := th.tripService.CancelTrip(context.Background(), tripID, driverID)
		if err != nil {
			th.log.Error("failed to cancel trip", err, "trip_id", tripID, "driver_id", driverID)
			serviceError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"message": "Trip cancelled successfully",
			"data":    res.Data,
		})
	}
}

func (th *TripHandler) End() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID := r.PathValue("driver_id")
		tripID := r.PathValue("trip_id")

		// distance may arrive as a JSON number or a quoted string; both are
		// passed on for numeric validation in the orchestrator.
		var body struct {
			Distance json.RawMessage `json:"distance"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			jsonMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		distance := strings.Trim(string(body.Distance), `"`)

		res, err := th.tripService.EndTrip(context.Background(), tripID, driverID, distance)
		if err != nil {
			th.log.Error("failed to end trip", err, "trip_id", tripID, "driver_id", driverID)
			serviceError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"message": "Trip ended successfully",
			"data":    res.Data,
		})
	}
}
