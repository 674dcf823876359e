package room

import (
	"context"
	"sync"
	"telemed-service/internal/app/config"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/metrics"
	"telemed-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const defaultSendTimeout = 5 * time.Second

// Manager tracks the live connections of every consultation room. Structural
// changes happen under mu; sends work on a snapshot so a slow peer never
// blocks registration.
type Manager struct {
	mu          sync.Mutex
	rooms       map[string][]*Connection
	sendTimeout time.Duration
	Metrics     *metrics.Collector
	Log         *zap.Logger
}

func NewManager(cfg *config.InternalConfig, collector *metrics.Collector, logger *zap.Logger) *Manager {
	sendTimeout := time.Duration(cfg.Realtime.SendTimeoutInSeconds) * time.Second
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}
	return &Manager{
		rooms:       make(map[string][]*Connection),
		sendTimeout: sendTimeout,
		Metrics:     collector,
		Log:         logger,
	}
}

// Register appends conn to the room and returns the room size including it.
func (m *Manager) Register(consultationID string, conn *Connection) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rooms[consultationID] = append(m.rooms[consultationID], conn)
	m.Metrics.RoomConnections.Inc()
	return len(m.rooms[consultationID])
}

// Unregister removes the connection with connectionID and reports whether it
// was present. Empty rooms are dropped.
func (m *Manager) Unregister(consultationID, connectionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	connections := m.rooms[consultationID]
	for i, conn := range connections {
		if conn.ID != connectionID {
			continue
		}
		remaining := make([]*Connection, 0, len(connections)-1)
		remaining = append(remaining, connections[:i]...)
		remaining = append(remaining, connections[i+1:]...)
		if len(remaining) == 0 {
			delete(m.rooms, consultationID)
		} else {
			m.rooms[consultationID] = remaining
		}
		m.Metrics.RoomConnections.Dec()
		return true
	}
	return false
}

func (m *Manager) Size(consultationID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms[consultationID])
}

func (m *Manager) snapshot(consultationID string) []*Connection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Connection(nil), m.rooms[consultationID]...)
}

// Broadcast sends message to every connection of the room whose user is not
// excludeUserID. An empty excludeUserID reaches everyone.
func (m *Manager) Broadcast(ctx context.Context, consultationID string, message Message, excludeUserID string) {
	payload, err := json.Marshal(message)
	if err != nil {
		m.Log.Error("room.Manager.Broadcast error marshalling message",
			zap.String(constvars.LoggingConsultationIDKey, consultationID),
			zap.String(constvars.LoggingMessageTypeKey, message.Type),
			zap.Error(err),
		)
		return
	}

	for _, conn := range m.snapshot(consultationID) {
		if excludeUserID != "" && conn.UserID == excludeUserID {
			continue
		}
		m.deliver(ctx, consultationID, conn, payload)
	}
}

// SendTo delivers message to a single connection.
func (m *Manager) SendTo(ctx context.Context, consultationID string, conn *Connection, message Message) {
	payload, err := json.Marshal(message)
	if err != nil {
		m.Log.Error("room.Manager.SendTo error marshalling message",
			zap.String(constvars.LoggingConsultationIDKey, consultationID),
			zap.Error(err),
		)
		return
	}
	m.deliver(ctx, consultationID, conn, payload)
}

// BroadcastEvent implements contracts.RoomBroadcaster.
func (m *Manager) BroadcastEvent(ctx context.Context, consultationID string, messageType string, payload interface{}) {
	m.Broadcast(ctx, consultationID, Message{Type: messageType, Payload: payload}, "")
}

// deliver bounds one send by the send timeout. A failed recipient is dropped
// from the room and its transport closed; the error never reaches the caller.
func (m *Manager) deliver(ctx context.Context, consultationID string, conn *Connection, payload []byte) {
	sendCtx, cancel := context.WithTimeout(ctx, m.sendTimeout)
	defer cancel()

	err := conn.Transport.Send(sendCtx, payload)
	if err == nil {
		return
	}

	m.Metrics.RoomSendFailuresTotal.Inc()
	m.Log.Warn("room.Manager.deliver dropping unreachable connection",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingConsultationIDKey, consultationID),
		zap.String(constvars.LoggingUserIDKey, conn.UserID),
		zap.Error(err),
	)
	m.Unregister(consultationID, conn.ID)
	_ = conn.Transport.Close(constvars.RoomCloseServerError, "send failed")
}

// CloseAll closes every registered connection and empties the manager.
func (m *Manager) CloseAll(code int, reason string) {
	m.mu.Lock()
	rooms := m.rooms
	m.rooms = make(map[string][]*Connection)
	m.mu.Unlock()

	for _, connections := range rooms {
		for _, conn := range connections {
			m.Metrics.RoomConnections.Dec()
			_ = conn.Transport.Close(code, reason)
		}
	}
}
