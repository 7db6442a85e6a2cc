package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// Manager keeps track of active client websocket connections by username.
type Manager struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn // username -> conn
}

func NewManager() *Manager {
	return &Manager{connections: make(map[string]*websocket.Conn)}
}

// Register registers a user's connection, replacing any existing one.
func (m *Manager) Register(username string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.connections[username]; ok && old != nil && old != conn {
		// close old connection to avoid leaks
		_ = old.Close()
	}
	m.connections[username] = conn
}

// Unregister removes a user's connection.
func (m *Manager) Unregister(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if conn, ok := m.connections[username]; ok {
		if conn != nil {
			_ = conn.Close()
		}
		delete(m.connections, username)
	}
}

// SendToUser sends a JSON event to a user if connected.
func (m *Manager) SendToUser(username string, event interface{}) error {
	m.mu.RLock()
	conn, ok := m.connections[username]
	m.mu.RUnlock()
	if !ok || conn == nil {
		return errors.New("user not connected")
	}
	return conn.WriteJSON(event)
}

// Broadcast sends a JSON event to every connected user.
func (m *Manager) Broadcast(event interface{}) {
	m.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(m.connections))
	for _, conn := range m.connections {
		conns = append(conns, conn)
	}
	m.mu.RUnlock()
	for _, conn := range conns {
		if conn != nil {
			_ = conn.WriteJSON(event)
		}
	}
}

// IsConnected returns whether a user currently has a connection.
func (m *Manager) IsConnected(username string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.connections[username]
	return ok
}

// List returns a copy of current connected usernames.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.connections))
	for name := range m.connections {
		names = append(names, name)
	}
	return names
}
