package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unisell/internal/domain/service"
)

func TestNotifyUserDeliversToConnectedUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	client := &Client{UserID: "seller", Send: make(chan []byte, 1)}
	require.True(t, m.Add(client))
	require.Eventually(t, func() bool { return m.IsConnected("seller") }, time.Second, 5*time.Millisecond)

	m.NotifyUser(ctx, "seller", service.BidEvent{Type: service.BidEventPlaced, ItemID: "i1", BidID: "b1", Price: 40})
	m.NotifyUser(ctx, "nobody", service.BidEvent{Type: service.BidEventPlaced})

	var got service.BidEvent
	require.NoError(t, json.Unmarshal(<-client.Send, &got))
	assert.Equal(t, "b1", got.BidID)
	assert.Equal(t, 40, got.Price)

	// Buffer of one: the second send is dropped instead of blocking.
	assert.True(t, m.SendToUser("seller", []byte("a")))
	assert.False(t, m.SendToUser("seller", []byte("b")))
}

func TestUnregisterIgnoresReplacedClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	first := &Client{UserID: "u", Send: make(chan []byte, 1)}
	second := &Client{UserID: "u", Send: make(chan []byte, 1)}
	m.Add(first)
	m.Add(second)

	_, open := <-first.Send
	assert.False(t, open, "replaced connection is closed")

	m.Remove(first)
	assert.True(t, m.SendToUser("u", []byte("still here")))
	assert.Equal(t, []byte("still here"), <-second.Send)
}

func TestStoppedManagerNeverBlocks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	m := NewManager()
	m.Start(ctx)

	client := &Client{UserID: "buyer", Send: make(chan []byte, 1)}
	require.True(t, m.Add(client))
	cancel()

	_, open := <-client.Send
	assert.False(t, open, "live connection is closed on shutdown")

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Remove(client)
		assert.False(t, m.Add(&Client{UserID: "late", Send: make(chan []byte, 1)}))
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("register or unregister blocked after shutdown")
	}
	assert.False(t, m.IsConnected("late"))
}
