// file: internal/server/events_test.go
// version: 1.0.0
// guid: 0a1b2c3d-4e5f-6a7b-8c9d-0e1f2a3b4c5d

package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcast(t *testing.T) {
	h := NewEventHub()
	client := &Client{ID: "c1", Channel: make(chan *Event, 4)}
	h.RegisterClient(client)
	defer h.UnregisterClient("c1")

	h.Broadcast(&Event{Type: EventQueryResult, Timestamp: time.Now()})

	select {
	case ev := <-client.Channel:
		assert.Equal(t, EventQueryResult, ev.Type)
	default:
		t.Fatal("expected event in client channel")
	}
}

func TestHubFullChannelDoesNotBlock(t *testing.T) {
	h := NewEventHub()
	client := &Client{ID: "c1", Channel: make(chan *Event, 1)}
	h.RegisterClient(client)
	defer h.UnregisterClient("c1")

	done := make(chan struct{})
	go func() {
		h.Broadcast(&Event{Type: EventQueryResult})
		h.Broadcast(&Event{Type: EventQueryResult}) // channel full, must drop
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a full client channel")
	}
}

func TestHubUnregisterClosesChannel(t *testing.T) {
	h := NewEventHub()
	client := &Client{ID: "c1", Channel: make(chan *Event, 1)}
	h.RegisterClient(client)
	require.Equal(t, 1, h.ClientCount())

	h.UnregisterClient("c1")
	assert.Equal(t, 0, h.ClientCount())

	_, open := <-client.Channel
	assert.False(t, open, "channel should be closed after unregister")
}
