package driven

import "context"

// IDriverNotifier pushes messages to a driver's live websocket connection.
// Delivery is best effort; a disconnected driver is not an error.
type IDriverNotifier interface {
	SendToDriver(ctx context.Context, driverID string, message []byte) error
	IsDriverConnected(driverID string) bool
}
