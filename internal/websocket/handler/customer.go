// internal/websocket/handlers/customer_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"crm-service/internal/domain/identity"
	wstypes "crm-service/internal/domain/websocket"
	customersvc "crm-service/internal/service/customer"
	ws "crm-service/internal/websocket"
)

// CustomerFeedHandler serves the customer feed over an open connection:
// snapshot requests, and auth/logout messages that rebind the connection
// to a different partition without reconnecting.
type CustomerFeedHandler struct {
	hub       *ws.Hub
	customers *customersvc.CustomerService
}

func NewCustomerFeedHandler(hub *ws.Hub, customers *customersvc.CustomerService) *CustomerFeedHandler {
	return &CustomerFeedHandler{
		hub:       hub,
		customers: customers,
	}
}

// SupportedEvents returns events this handler supports
func (h *CustomerFeedHandler) SupportedEvents() []wstypes.EventType {
	return []wstypes.EventType{
		wstypes.EventTypeSubscribe,
		wstypes.EventTypeAuth,
		wstypes.EventTypeLogout,
	}
}

// HandleMessage processes customer feed messages
func (h *CustomerFeedHandler) HandleMessage(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	switch msg.Type {
	case wstypes.EventTypeSubscribe:
		go h.sendSnapshot(client)
		return nil

	case wstypes.EventTypeAuth:
		return h.handleAuth(ctx, client, msg)

	case wstypes.EventTypeLogout:
		return h.handleLogout(client)

	default:
		return fmt.Errorf("unsupported event type: %s", msg.Type)
	}
}

// handleAuth verifies the supplied token and rebinds the connection to the
// authenticated identity's partition.
func (h *CustomerFeedHandler) handleAuth(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	var req wstypes.AuthRequest
	if err := mapToStruct(msg.Data, &req); err != nil {
		client.SendError("invalid_request", "Invalid auth request", err.Error())
		return err
	}

	id, jti, err := h.hub.Authenticate(ctx, req.Token)
	if err != nil {
		client.SendError("auth_failed", "Authentication failed", err.Error())
		return nil
	}

	p := client.Rebind(id, jti)
	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"partition": p,
		"mode":      id.Mode,
	}))

	go h.sendSnapshot(client)
	return nil
}

// handleLogout drops the connection back to the shared guest partition.
func (h *CustomerFeedHandler) handleLogout(client *ws.Client) error {
	p := client.Rebind(identity.Guest(), "")
	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"partition": p,
		"mode":      identity.ModeGuest,
	}))

	go h.sendSnapshot(client)
	return nil
}

// sendSnapshot loads the full record set for the partition the connection
// is bound to right now. The load is tagged with that partition; if the
// connection rebinds before the load finishes, the result is discarded and
// nothing is sent.
func (h *CustomerFeedHandler) sendSnapshot(client *ws.Client) {
	view := client.View()
	tag := view.Partition()

	records, err := h.customers.List(context.Background(), tag)
	if err != nil {
		client.SendError("snapshot_failed", "Failed to load customers", err.Error())
		return
	}

	if !view.Apply(tag, records) {
		return
	}

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeSnapshot, wstypes.SnapshotData{
		Partition: tag,
		Customers: view.Records(),
	}))
}

// Helper function to convert interface{} to struct
func mapToStruct(data interface{}, target interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, target)
}
