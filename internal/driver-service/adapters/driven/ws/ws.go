package ws

import (
	"context"
	"sync"

	"driver-service/internal/driver-service/core/ports/driven"

	"github.com/gorilla/websocket"
)

// WebSocketManager keeps one live connection per driver and pushes status and
// trip notifications to it. A reconnect replaces the previous connection.
type WebSocketManager struct {
	connections map[string]*driverConnection
	mu          sync.RWMutex
}

type driverConnection struct {
	driverID string
	conn     *websocket.Conn
	mu       sync.Mutex
}

var _ driven.IDriverNotifier = (*WebSocketManager)(nil)

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		connections: make(map[string]*driverConnection),
	}
}

func (m *WebSocketManager) Register(driverID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, exists := m.connections[driverID]; exists {
		existing.conn.Close()
	}

	m.connections[driverID] = &driverConnection{
		driverID: driverID,
		conn:     conn,
	}
}

// Unregister drops the driver's entry, but only if it still belongs to the
// given connection; a newer registration is left alone.
func (m *WebSocketManager) Unregister(driverID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, exists := m.connections[driverID]; exists && existing.conn == conn {
		existing.conn.Close()
		delete(m.connections, driverID)
	}
}

func (m *WebSocketManager) IsDriverConnected(driverID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.connections[driverID]
	return exists
}

func (m *WebSocketManager) SendToDriver(ctx context.Context, driverID string, message []byte) error {
	m.mu.RLock()
	driverConn, exists := m.connections[driverID]
	m.mu.RUnlock()

	if !exists {
		return nil
	}

	driverConn.mu.Lock()
	defer driverConn.mu.Unlock()
	return driverConn.conn.WriteMessage(websocket.TextMessage, message)
}
