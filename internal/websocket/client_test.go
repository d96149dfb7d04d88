// internal/websocket/client_test.go
package websocket

import (
	"testing"
	"time"

	"crm-service/internal/domain/identity"
	wstypes "crm-service/internal/domain/websocket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdleClient(t *testing.T) (*Hub, *Client) {
	t.Helper()
	hub := NewHub(nil, nil)
	// No pumps are started: the send buffer only fills, never drains,
	// which is exactly the slow-consumer case.
	client := NewClient(hub, nil, identity.Guest(), "")
	t.Cleanup(client.Close)
	return hub, client
}

func fillSendBuffer(c *Client) {
	msg := wstypes.NewMessage(wstypes.EventTypePong, nil)
	for len(c.send) < cap(c.send) {
		c.SendMessage(msg)
	}
}

func TestSendMessageFullBufferDoesNotBlock(t *testing.T) {
	hub, client := newIdleClient(t)
	fillSendBuffer(client)

	done := make(chan struct{})
	go func() {
		client.SendMessage(wstypes.NewMessage(wstypes.EventTypePong, nil))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SendMessage blocked on a full buffer")
	}

	// The overflow requests detachment instead of tearing the channel
	// down inline.
	select {
	case got := <-hub.unregister:
		assert.Same(t, client, got)
	case <-time.After(time.Second):
		t.Fatal("no unregister request after overflow")
	}
}

func TestUnregisterAfterOverflowDoesNotPanic(t *testing.T) {
	hub, client := newIdleClient(t)
	hub.registerClient(client)
	fillSendBuffer(client)

	// Overflow, then the hub processing the resulting unregistration.
	client.SendMessage(wstypes.NewMessage(wstypes.EventTypePong, nil))
	require.NotPanics(t, func() { hub.unregisterClient(client) })

	// Close is idempotent and a late send finds no closed channel.
	require.NotPanics(t, client.Close)
	require.NotPanics(t, func() {
		client.SendMessage(wstypes.NewMessage(wstypes.EventTypePong, nil))
	})
}

func TestHubSelfSendOverflowKeepsHubResponsive(t *testing.T) {
	hub, client := newIdleClient(t)
	hub.registerClient(client)
	fillSendBuffer(client)

	// Fan-out from the hub's own loop against a saturated client must
	// return; an inline blocking unregister would deadlock here.
	done := make(chan struct{})
	go func() {
		hub.BroadcastMessage(&BroadcastMessage{
			Partition: client.Partition(),
			Message:   wstypes.NewMessage(wstypes.EventTypeCustomerCreated, nil),
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast against a saturated client blocked")
	}
}
