package myerrors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ServiceError is the normalized failure shape of the trip orchestration and
// availability flows: an HTTP-like status, a human readable message and an
// optional detail payload surfaced to the caller under "error".
type ServiceError struct {
	Status  int
	Message string
	Detail  any
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func Validation(message string) *ServiceError {
	return &ServiceError{Status: http.StatusBadRequest, Message: message}
}

// GatewayError is returned by the trip gateway adapter. Status and Body are
// set when the Trip Service responded with an error status; Err carries the
// transport-level cause when no response was received at all.
type GatewayError struct {
	Status int
	Body   json.RawMessage
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Responded() {
		return fmt.Sprintf("trip service responded %d: %s", e.Status, string(e.Body))
	}
	return fmt.Sprintf("trip service unreachable: %v", e.Err)
}

// Responded reports whether the Trip Service sent back a response at all,
// which separates a deliberate rejection from a transport failure.
func (e *GatewayError) Responded() bool {
	return e.Status != 0
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
