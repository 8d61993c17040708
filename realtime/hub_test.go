package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(buffer int) *Client {
	return &Client{ID: "test", Send: make(chan []byte, buffer)}
}

func TestRegisterAndUnregister(t *testing.T) {
	hub := NewHub()
	client := newTestClient(1)

	hub.Register(client)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(client)
	assert.Equal(t, 0, hub.ClientCount())

	// Channel is closed after unregister.
	_, open := <-client.Send
	assert.False(t, open)
}

func TestUnregisterUnknownClientIsNoop(t *testing.T) {
	hub := NewHub()
	client := newTestClient(1)

	hub.Unregister(client)
	assert.Equal(t, 0, hub.ClientCount())

	// Send channel was never closed.
	select {
	case <-client.Send:
		t.Fatal("send channel should be open and empty")
	default:
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	first := newTestClient(1)
	second := newTestClient(1)
	hub.Register(first)
	hub.Register(second)

	hub.NotifyWaitingQueue()

	for _, client := range []*Client{first, second} {
		var event Event
		require.NoError(t, json.Unmarshal(<-client.Send, &event))
		assert.Equal(t, EventWaitingQueueUpdate, event.Event)
		assert.False(t, event.Timestamp.IsZero())
	}
}

func TestBroadcastSkipsFullClients(t *testing.T) {
	hub := NewHub()
	full := newTestClient(1)
	full.Send <- []byte("stale")
	healthy := newTestClient(1)
	hub.Register(full)
	hub.Register(healthy)

	// Must not block on the full client.
	hub.NotifyCalledQueue()

	var event Event
	require.NoError(t, json.Unmarshal(<-healthy.Send, &event))
	assert.Equal(t, EventCalledQueueUpdate, event.Event)

	assert.Equal(t, []byte("stale"), <-full.Send)
	select {
	case <-full.Send:
		t.Fatal("full client should have been skipped")
	default:
	}
}
