package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"driver-service/internal/driver-service/core/domain/dto"
	"driver-service/internal/driver-service/core/ports/driver"
	"driver-service/internal/mylogger"
)

type DriverHandler struct {
	driverService driver.IDriverService
	log           mylogger.Logger
}

func NewDriverHandler(driverService driver.IDriverService, log mylogger.Logger) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
		log:           log,
	}
}

func (dh *DriverHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.RegisterDriverRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonResponse(w, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
			return
		}

		res, err := dh.driverService.Register(context.Background(), req)
		if err != nil {
			dh.log.Error("failed to register driver", err)
			jsonResponse(w, http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
			return
		}

		jsonResponse(w, http.StatusCreated, res)
	}
}

func (dh *DriverHandler) GetAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := dh.driverService.GetAll(context.Background())
		if err != nil {
			dh.log.Error("failed to list drivers", err)
			serviceError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, res)
	}
}

func (dh *DriverHandler) GetByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID, ok := pathDriverID(r, "id")
		if !ok {
			jsonMessage(w, http.StatusNotFound, "Driver not found")
			return
		}

		res, err := dh.driverService.GetByID(context.Background(), driverID)
		if err != nil {
			dh.log.Error("failed to get driver", err, "driver_id", driverID)
			serviceError(w, err)
			return
		}
		if res == nil {
			jsonMessage(w, http.StatusNotFound, "Driver not found")
			return
		}
		jsonResponse(w, http.StatusOK, res)
	}
}

func (dh *DriverHandler) FindAvailable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vehicleType := r.URL.Query().Get("vehicleType")
		if vehicleType == "" {
			vehicleType = r.URL.Query().Get("vehicle_type")
		}

		res, err := dh.driverService.FindAvailable(context.Background(), vehicleType)
		if err != nil {
			dh.log.Error("failed to find available drivers", err)
			serviceError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, res)
	}
}

func (dh *DriverHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID, ok := pathDriverID(r, "id")
		if !ok {
			jsonMessage(w, http.StatusNotFound, "Driver not found")
			return
		}

		req := dto.UpdateDriverRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := dh.driverService.Update(context.Background(), driverID, req)
		if err != nil {
			dh.log.Error("failed to update driver", err, "driver_id", driverID)
			serviceError(w, err)
			return
		}
		if res == nil {
			jsonMessage(w, http.StatusNotFound, "Driver not found")
			return
		}
		jsonResponse(w, http.StatusOK, res)
	}
}

func (dh *DriverHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID, ok := pathDriverID(r, "id")
		if !ok {
			jsonMessage(w, http.StatusNotFound, "Driver not found")
			return
		}

		deleted, err := dh.driverService.Delete(context.Background(), driverID)
		if err != nil {
			dh.log.Error("failed to delete driver", err, "driver_id", driverID)
			serviceError(w, err)
			return
		}
		if !deleted {
			jsonMessage(w, http.StatusNotFound, "Driver not found")
			return
		}
		jsonMessage(w, http.StatusOK, "Driver deleted successfully")
	}
}

// SetStatus is the scheduler-facing availability toggle.
func (dh *DriverHandler) SetStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID, ok := pathDriverID(r, "id")
		if !ok {
			jsonMessage(w, http.StatusNotFound, "Driver not found")
			return
		}

		req := dto.StatusRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.IsActive == nil {
			jsonMessage(w, http.StatusBadRequest, "is_active is required")
			return
		}

		res, err := dh.driverService.SetAvailability(context.Background(), driverID, *req.IsActive)
		if err != nil {
			dh.log.Error("failed to update driver status", err, "driver_id", driverID)
			serviceError(w, err)
			return
		}
		if res == nil {
			jsonMessage(w, http.StatusNotFound, "Driver not found")
			return
		}

		jsonResponse(w, http.StatusOK, dto.StatusUpdateResponse{
			Message: "Status updated",
			Driver:  *res,
		})
	}
}

// pathDriverID parses the numeric driver id path segment. A value that is not
// a number cannot name an existing record, so callers treat it as not found.
func pathDriverID(r *http.Request, name string) (int64, bool) {
	driverID, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return driverID, true
}
