package sse

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestManager_BroadcastFiltersByIdentity(t *testing.T) {
	m := NewManager(discardLogger())

	alice, err := m.Connect("15551110000")
	require.NoError(t, err)
	bob, err := m.Connect("15552220000")
	require.NoError(t, err)

	m.broadcast(NewReminderDueEvent("15551110000", "2025-03-15", "task-1", "buy milk", "09:00", time.Now()))

	select {
	case evt := <-alice.EventChan:
		assert.Equal(t, EventReminderDue, evt.Type)
	default:
		t.Fatal("targeted client should receive the event")
	}

	select {
	case <-bob.EventChan:
		t.Fatal("other identity must not receive a targeted event")
	default:
	}
}

func TestManager_BroadcastToAll(t *testing.T) {
	m := NewManager(discardLogger())

	a, err := m.Connect("a")
	require.NoError(t, err)
	b, err := m.Connect("b")
	require.NoError(t, err)

	m.broadcast(NewHeartbeatEvent())

	for _, c := range []*Client{a, b} {
		select {
		case evt := <-c.EventChan:
			assert.Equal(t, EventHeartbeat, evt.Type)
		default:
			t.Fatal("heartbeat should reach every client")
		}
	}
}

func TestManager_IsConnected(t *testing.T) {
	m := NewManager(discardLogger())

	assert.False(t, m.IsConnected("15551110000"))

	client, err := m.Connect("15551110000")
	require.NoError(t, err)
	assert.True(t, m.IsConnected("15551110000"))
	assert.Equal(t, 1, m.ClientCount())

	m.Disconnect(client.ID)
	assert.False(t, m.IsConnected("15551110000"))
	assert.Equal(t, 0, m.ClientCount())
}

func TestManager_EmitDeliversThroughStart(t *testing.T) {
	m := NewManager(discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	client, err := m.Connect("15551110000")
	require.NoError(t, err)

	m.Emit(NewDocumentUpdatedEvent("15551110000"))

	select {
	case evt := <-client.EventChan:
		assert.Equal(t, EventDocumentUpdated, evt.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestManager_EmitAfterShutdownIsDropped(t *testing.T) {
	m := NewManager(discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.Shutdown(ctx))

	// Must not panic on the closed channel.
	m.Emit(NewHeartbeatEvent())
}
