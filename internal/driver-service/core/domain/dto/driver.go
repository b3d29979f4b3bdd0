package dto

import (
	"driver-service/internal/driver-service/core/domain/model"
)

type RegisterDriverRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	VehicleType  string `json:"vehicle_type"`
	VehiclePlate string `json:"vehicle_plate"`
}

type UpdateDriverRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	VehicleType  *string `json:"vehicle_type"`
	VehiclePlate *string `json:"vehicle_plate"`
}

type StatusRequest struct {
	IsActive *bool `json:"is_active"`
}

type DriverResponse struct {
	DriverID     int64  `json:"driver_id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	VehicleType  string `json:"vehicle_type,omitempty"`
	VehiclePlate string `json:"vehicle_plate,omitempty"`
	Status       string `json:"status"`
	IsActive     bool   `json:"is_active"`
}

type StatusUpdateResponse struct {
	Message string         `json:"message"`
	Driver  DriverResponse `json:"driver"`
}

func DriverResponseFrom(d model.Driver) DriverResponse {
	var response DriverResponse
	response.DriverID = d.DriverID
	response.Name = d.Name
	response.Phone = d.Phone
	response.VehicleType = d.VehicleType
	response.VehiclePlate = d.VehiclePlate
	response.Status = string(d.Status)
	response.IsActive = d.Status.IsActive()
	return response
}
