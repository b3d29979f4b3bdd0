package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"driver-service/internal/driver-service/core/myerrors"
)

// jsonResponse writes the given data as a JSON-encoded HTTP response with the given status code.
func jsonResponse(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// jsonMessage writes a bare {"message": ...} body.
func jsonMessage(w http.ResponseWriter, code int, message string) {
	jsonResponse(w, code, map[string]interface{}{
		"message": message,
	})
}

// serviceError maps a core error onto the wire: a *myerrors.ServiceError
// keeps its status, message and detail under "error"; anything else is a
// plain 500.
func serviceError(w http.ResponseWriter, err error) {
	var svcErr *myerrors.ServiceError
	if errors.As(err, &svcErr) {
		body := map[string]interface{}{
			"message": svcErr.Message,
		}
		if svcErr.Detail != nil {
			body["error"] = svcErr.Detail
		}
		jsonResponse(w, svcErr.Status, body)
		return
	}
	jsonResponse(w, http.StatusInternalServerError, map[string]interface{}{
		"message": "internal error, please try again later",
		"error":   err.Error(),
	})
}
