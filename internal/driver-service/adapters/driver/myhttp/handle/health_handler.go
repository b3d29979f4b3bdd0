package handle

import "net/http"

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Message string `json:"message"`
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, healthResponse{
			Status:  "healthy",
			Service: "driver-service",
			Message: "Driver Service is running",
		})
	}
}
