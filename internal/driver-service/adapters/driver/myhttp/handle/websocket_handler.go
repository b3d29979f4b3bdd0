package handle

import (
	"net/http"

	"driver-service/internal/driver-service/adapters/driven/ws"
	"driver-service/internal/mylogger"

	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	manager *ws.WebSocketManager
	log     mylogger.Logger
	up      websocket.Upgrader
}

func NewWebSocketHandler(manager *ws.WebSocketManager, log mylogger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		manager: manager,
		log:     log,
		up: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleDriverWebSocket keeps a notification stream open for one driver.
// Inbound frames are drained and discarded; the socket exists so the service
// can push status and trip events out.
func (wh *WebSocketHandler) HandleDriverWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID := r.PathValue("driver_id")
		if driverID == "" {
			jsonMessage(w, http.StatusBadRequest, "driver_id is required")
			return
		}

		conn, err := wh.up.Upgrade(w, r, nil)
		if err != nil {
			wh.log.Error("websocket upgrade failed", err, "driver_id", driverID)
			return
		}

		wh.manager.Register(driverID, conn)
		wh.log.Info("driver websocket connected", "driver_id", driverID)

		go func() {
			defer wh.manager.Unregister(driverID, conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					wh.log.Debug("driver websocket closed", "driver_id", driverID)
					return
				}
			}
		}()
	}
}
