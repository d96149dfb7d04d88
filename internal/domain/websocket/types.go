// internal/domain/websocket/types.go
package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"crm-service/internal/domain/customer"
)

// EventType represents different real-time event types
type EventType string

const (
	// Connection events
	EventTypePing         EventType = "ping"
	EventTypePong         EventType = "pong"
	EventTypeConnected    EventType = "connected"
	EventTypeDisconnected EventType = "disconnected"
	EventTypeError        EventType = "error"

	// Auth events (client -> server). Auth carries a token and switches
	// the connection to that identity's partition, logout drops back to
	// the shared guest partition.
	EventTypeAuth   EventType = "auth"
	EventTypeLogout EventType = "logout"

	// Feed events
	EventTypeSubscribe EventType = "subscribe"
	EventTypeSnapshot  EventType = "snapshot"

	// Customer change events (server -> client)
	EventTypeCustomerCreated EventType = "customer:created"
	EventTypeCustomerUpdated EventType = "customer:updated"
	EventTypeCustomerDeleted EventType = "customer:deleted"
)

// WSMessage is the universal message format
type WSMessage struct {
	Type      EventType              `json:"type"`
	Data      interface{}            `json:"data,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	ID        string                 `json:"id,omitempty"` // For message tracking/acknowledgment
}

// AuthRequest sent by a client to bind the connection to a signed-in identity.
type AuthRequest struct {
	Token string `json:"token"`
}

// SnapshotData carries a full customer list for the partition the
// connection is currently bound to. Clients replace their local state
// with it wholesale.
type SnapshotData struct {
	Partition string              `json:"partition"`
	Customers []customer.Customer `json:"customers"`
}

// ChangeData describes a single customer mutation within a partition.
// Customer is nil for deletions.
type ChangeData struct {
	Partition string             `json:"partition"`
	ID        string             `json:"id"`
	Customer  *customer.Customer `json:"customer,omitempty"`
}

// ErrorData for error events
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Helper to create messages
func NewMessage(eventType EventType, data interface{}) *WSMessage {
	return &WSMessage{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
		ID:        generateMessageID(),
	}
}

func (m *WSMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ParseMessage(data []byte) (*WSMessage, error) {
	var msg WSMessage
	err := json.Unmarshal(data, &msg)
	return &msg, err
}

func generateMessageID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
