// internal/websocket/client.go
package websocket

import (
	"context"
	"log"
	"sync"
	"time"

	"crm-service/internal/domain/identity"
	wstypes "crm-service/internal/domain/websocket"
	"crm-service/internal/pkg/partition"
	customersvc "crm-service/internal/service/customer"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024 // 512KB
)

// Client is one websocket connection. It is bound to exactly one partition
// at a time; re-authentication rebinds it without reconnecting.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	mu        sync.RWMutex
	id        identity.Identity
	jti       string
	partition string

	// view holds the record snapshot loaded for this connection and
	// drops loads that finish after a partition switch.
	view *customersvc.PartitionView

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

func NewClient(hub *Hub, conn *websocket.Conn, id identity.Identity, jti string) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	p := partition.Resolve(id)

	return &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, 256),
		id:        id,
		jti:       jti,
		partition: p,
		view:      customersvc.NewPartitionView(p),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Identity returns the identity the connection is currently bound to.
func (c *Client) Identity() identity.Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

// Partition returns the partition the connection is currently bound to.
func (c *Client) Partition() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.partition
}

// View returns the connection's record view.
func (c *Client) View() *customersvc.PartitionView {
	return c.view
}

// Rebind switches the connection to a new identity. The hub moves the
// client between partition rooms and the view is reset, which invalidates
// any snapshot load still in flight for the old partition.
func (c *Client) Rebind(id identity.Identity, jti string) string {
	return c.hub.rebind(c, id, jti)
}

func (c *Client) setIdentity(id identity.Identity, jti, p string) {
	c.mu.Lock()
	c.id = id
	c.jti = jti
	c.partition = p
	c.mu.Unlock()

	c.view.SetPartition(p)
}

// ReadPump handles incoming messages from client
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
			_, message, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("websocket error: %v", err)
				}
				return
			}

			c.handleMessage(message)
		}
	}
}

// WritePump handles outgoing messages to client
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes incoming messages from client
func (c *Client) handleMessage(data []byte) {
	msg, err := wstypes.ParseMessage(data)
	if err != nil {
		c.SendError("invalid_message", "Failed to parse message", err.Error())
		return
	}

	// Try to handle with registered handlers first
	if err := c.hub.HandleClientMessage(context.Background(), c, msg); err != nil {
		c.SendError("handler_error", "Failed to process message", err.Error())
		return
	}

	// Built-in message handling
	switch msg.Type {
	case wstypes.EventTypePing:
		c.SendMessage(wstypes.NewMessage(wstypes.EventTypePong, nil))
	}
}

// SendMessage sends a message to the client. The send buffer is never
// closed and a full buffer never blocks the caller: slow consumers get the
// message dropped and the client detached, so the hub's fan-out loop (and
// the write path publishing through it) can always make progress.
func (c *Client) SendMessage(msg *wstypes.WSMessage) {
	data, err := msg.ToJSON()
	if err != nil {
		log.Printf("failed to marshal message: %v", err)
		return
	}

	select {
	case c.send <- data:
	case <-c.ctx.Done():
	default:
		// Buffer full. Drop the message and request unregistration off
		// the calling goroutine; the hub may be the caller here.
		go func() {
			select {
			case c.hub.unregister <- c:
			case <-c.ctx.Done():
			}
		}()
	}
}

// SendError sends an error message to the client
func (c *Client) SendError(code, message, details string) {
	c.SendMessage(wstypes.NewMessage(wstypes.EventTypeError, wstypes.ErrorData{
		Code:    code,
		Message: message,
		Details: details,
	}))
}

// Close gracefully closes the client connection. Safe to call more than
// once: it only cancels the client context; the send buffer stays open so
// a concurrent SendMessage can never hit a closed channel.
func (c *Client) Close() {
	c.cancel()
}
