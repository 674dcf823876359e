package room

import (
	"context"
	"telemed-service/internal/app/models"

	"github.com/goccy/go-json"
)

// Transport delivers frames to one connected peer. Implementations must be
// safe for concurrent Send and Close.
type Transport interface {
	Send(ctx context.Context, payload []byte) error
	Close(code int, reason string) error
}

// Connection is one registered peer in a consultation room.
type Connection struct {
	ID          string
	UserID      string
	DisplayName string
	Role        models.Role
	Transport   Transport
}

// Envelope is an inbound client frame.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message is an outbound frame. System events set Event.
type Message struct {
	Type       string      `json:"type"`
	Event      string      `json:"event,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
	SenderID   string      `json:"senderId,omitempty"`
	SenderRole string      `json:"senderRole,omitempty"`
}

type connectedPayload struct {
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
	RoomSize    int    `json:"roomSize"`
}

type readyPayload struct {
	ShouldCreateOffer bool `json:"shouldCreateOffer"`
}

type peerPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName,omitempty"`
	Role        string `json:"role,omitempty"`
}

type callEndedPayload struct {
	By string `json:"by"`
}

type chatInbound struct {
	Text string `json:"text"`
}

type chatPayload struct {
	Text       string `json:"text"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Timestamp  string `json:"timestamp"`
}
