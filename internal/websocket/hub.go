// internal/websocket/hub.go
package websocket

import (
	"context"
	"log"
	"sync"

	"crm-service/internal/domain/customer"
	"crm-service/internal/domain/identity"
	wstypes "crm-service/internal/domain/websocket"
	"crm-service/internal/pkg/jwt"
	"crm-service/internal/pkg/partition"
	"crm-service/internal/pkg/session"
)

// Hub fans customer change events out to connected clients. Clients are
// grouped by the partition their identity resolves to, so a change in one
// partition is invisible to every other one.
type Hub struct {
	// Registered clients by partition
	clients map[string]map[*Client]bool
	mu      sync.RWMutex

	// Registration/unregistration
	Register   chan *Client
	unregister chan *Client

	// Broadcasting
	broadcast chan *BroadcastMessage

	// Handler registry for modular message handling
	handlerRegistry *HandlerRegistry

	// Auth dependencies
	jwtVerifier    *jwt.Verifier
	sessionManager *session.Manager
}

type BroadcastMessage struct {
	Partition string
	Message   *wstypes.WSMessage
}

func NewHub(jwtVerifier *jwt.Verifier, sessionManager *session.Manager) *Hub {
	return &Hub{
		clients:         make(map[string]map[*Client]bool),
		Register:        make(chan *Client),
		unregister:      make(chan *Client),
		broadcast:       make(chan *BroadcastMessage, 256),
		handlerRegistry: NewHandlerRegistry(),
		jwtVerifier:     jwtVerifier,
		sessionManager:  sessionManager,
	}
}

// Authenticate validates a JWT token and returns the identity it carries.
// The token's session must still be alive in redis.
func (h *Hub) Authenticate(ctx context.Context, token string) (identity.Identity, string, error) {
	claims, err := h.jwtVerifier.VerifyAccessToken(token)
	if err != nil {
		return identity.Guest(), "", ErrInvalidToken
	}

	if _, err := h.sessionManager.GetSession(ctx, claims.IdentityKey, claims.ID); err != nil {
		return identity.Guest(), "", ErrSessionExpired
	}

	return identity.User(claims.IdentityKey, claims.Email, claims.Roles), claims.ID, nil
}

// RegisterHandler registers a message handler
func (h *Hub) RegisterHandler(handler MessageHandler) {
	h.handlerRegistry.Register(handler)
}

// HandleClientMessage processes a message from a client using registered handlers
func (h *Hub) HandleClientMessage(ctx context.Context, client *Client, msg *wstypes.WSMessage) error {
	handler, exists := h.handlerRegistry.GetHandler(msg.Type)
	if !exists {
		return nil // Will be handled by client's default handler
	}

	return handler.HandleMessage(ctx, client, msg)
}

// PublishCustomerEvent pushes a customer change to every client bound to
// the event's partition.
func (h *Hub) PublishCustomerEvent(event customer.Event) {
	var eventType wstypes.EventType
	switch event.Action {
	case customer.EventCreated:
		eventType = wstypes.EventTypeCustomerCreated
	case customer.EventUpdated:
		eventType = wstypes.EventTypeCustomerUpdated
	case customer.EventDeleted:
		eventType = wstypes.EventTypeCustomerDeleted
	default:
		return
	}

	msg := wstypes.NewMessage(eventType, wstypes.ChangeData{
		Partition: event.Partition,
		ID:        event.ID,
		Customer:  event.Record,
	})
	h.broadcast <- &BroadcastMessage{
		Partition: event.Partition,
		Message:   msg,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.BroadcastMessage(msg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	p := client.Partition()
	if h.clients[p] == nil {
		h.clients[p] = make(map[*Client]bool)
	}
	h.clients[p][client] = true
	total := h.totalClients()
	h.mu.Unlock()

	log.Printf("Client connected: partition=%s, mode=%s, total=%d",
		p, client.Identity().Mode, total)

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"partition": p,
		"mode":      client.Identity().Mode,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p := client.Partition()
	if clients, ok := h.clients[p]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			client.Close()

			if len(clients) == 0 {
				delete(h.clients, p)
			}

			log.Printf("Client disconnected: partition=%s, total=%d", p, h.totalClients())
		}
	}
}

// rebind moves a client into the room of a new identity's partition and
// resets its view, so in-flight loads for the old partition get dropped.
func (h *Hub) rebind(client *Client, id identity.Identity, jti string) string {
	p := partition.Resolve(id)

	h.mu.Lock()
	old := client.Partition()
	if clients, ok := h.clients[old]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, old)
		}
	}
	if h.clients[p] == nil {
		h.clients[p] = make(map[*Client]bool)
	}
	h.clients[p][client] = true
	h.mu.Unlock()

	client.setIdentity(id, jti, p)
	return p
}

func (h *Hub) BroadcastMessage(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[msg.Partition] {
		client.SendMessage(msg.Message)
	}
}

// PartitionClients returns the number of clients bound to a partition.
func (h *Hub) PartitionClients(p string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[p])
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	goodbye := wstypes.NewMessage(wstypes.EventTypeDisconnected, map[string]interface{}{
		"reason": "server shutting down",
	})
	for _, clients := range h.clients {
		for client := range clients {
			client.SendMessage(goodbye)
			client.Close()
		}
	}
}
