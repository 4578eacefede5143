package websocket

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdhadshhd/med-point/internal/core/domain"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := NewHub(logger, nil)
	go hub.Run()
	t.Cleanup(hub.Shutdown)
	return hub
}

func newTestClient(hub *Hub, role domain.Role) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(hub, nil, uuid.New(), role, "Test User", "test@example.com", logger)
}

// receive reads one envelope off a client's send channel or fails the test.
func receive(t *testing.T, c *Client) envelope {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return envelope{}
	}
}

// expectSilence asserts no event arrives for the client.
func expectSilence(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.Send:
		t.Fatalf("unexpected event delivered: %s", msg.Event)
	case <-time.After(100 * time.Millisecond):
	}
}

func register(t *testing.T, hub *Hub, c *Client) {
	t.Helper()
	hub.Register <- c
	require.Eventually(t, func() bool {
		return hub.IsUserConnected(c.UserID)
	}, time.Second, 5*time.Millisecond)
}

func TestHub_PublishToUser(t *testing.T) {
	hub := newTestHub(t)

	client := newTestClient(hub, domain.RolePatient)
	other := newTestClient(hub, domain.RolePatient)
	register(t, hub, client)
	register(t, hub, other)

	hub.PublishToUser(client.UserID, domain.NotificationEvent{
		Type:    domain.NotificationAppointmentNew,
		Message: "New appointment scheduled",
	})

	msg := receive(t, client)
	assert.Equal(t, "notification", msg.Event)

	data, ok := msg.Data.(domain.NotificationEvent)
	require.True(t, ok)
	assert.Equal(t, domain.NotificationAppointmentNew, data.Type)
	assert.Equal(t, "New appointment scheduled", data.Message)

	expectSilence(t, other)
}

func TestHub_PublishToUser_AllConnections(t *testing.T) {
	hub := newTestHub(t)

	first := newTestClient(hub, domain.RoleDoctor)
	second := newTestClient(hub, domain.RoleDoctor)
	second.UserID = first.UserID

	register(t, hub, first)
	hub.Register <- second
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 2
	}, time.Second, 5*time.Millisecond)

	hub.PublishToUser(first.UserID, domain.SupportSystemEvent{Message: "hello"})

	assert.Equal(t, "support:system", receive(t, first).Event)
	assert.Equal(t, "support:system", receive(t, second).Event)
}

func TestHub_PublishToRole(t *testing.T) {
	hub := newTestHub(t)

	admin := newTestClient(hub, domain.RoleAdmin)
	secondAdmin := newTestClient(hub, domain.RoleAdmin)
	patient := newTestClient(hub, domain.RolePatient)
	register(t, hub, admin)
	register(t, hub, secondAdmin)
	register(t, hub, patient)

	hub.PublishToRole(domain.RoleAdmin, domain.TicketUpdatedEvent{
		TicketID: 42,
		Message:  "New support ticket",
	})

	for _, c := range []*Client{admin, secondAdmin} {
		msg := receive(t, c)
		assert.Equal(t, "ticket:updated", msg.Event)

		data, ok := msg.Data.(domain.TicketUpdatedEvent)
		require.True(t, ok)
		assert.Equal(t, int64(42), data.TicketID)
	}

	expectSilence(t, patient)
}

func TestHub_PublishToDisconnectedUser(t *testing.T) {
	hub := newTestHub(t)

	// Publishing to a user with no connections must not block or panic.
	hub.PublishToUser(uuid.New(), domain.SupportSystemEvent{Message: "nobody home"})
	hub.PublishToRole(domain.RoleDoctor, domain.SupportSystemEvent{Message: "nobody home"})

	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_Unregister(t *testing.T) {
	hub := newTestHub(t)

	client := newTestClient(hub, domain.RoleDoctor)
	register(t, hub, client)
	require.Equal(t, 1, hub.RoleConnectionCount(domain.RoleDoctor))

	hub.Unregister <- client
	require.Eventually(t, func() bool {
		return !hub.IsUserConnected(client.UserID)
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 0, hub.RoleConnectionCount(domain.RoleDoctor))

	// Send channel must be closed so the write pump exits.
	select {
	case _, open := <-client.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}

	// Events published after disconnect go nowhere.
	hub.PublishToUser(client.UserID, domain.SupportSystemEvent{Message: "late"})
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_UnregisterTwice(t *testing.T) {
	hub := newTestHub(t)

	client := newTestClient(hub, domain.RolePatient)
	register(t, hub, client)

	hub.Unregister <- client
	hub.Unregister <- client

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestHub_SlowClientDropped(t *testing.T) {
	hub := newTestHub(t)

	client := newTestClient(hub, domain.RolePatient)
	// Shrink the buffer so a single undrained event fills it.
	client.Send = make(chan envelope, 1)
	register(t, hub, client)

	hub.PublishToUser(client.UserID, domain.SupportSystemEvent{Message: "first"})
	hub.PublishToUser(client.UserID, domain.SupportSystemEvent{Message: "second"})

	// The second event overflows the buffer and the client is dropped.
	require.Eventually(t, func() bool {
		return !hub.IsUserConnected(client.UserID)
	}, time.Second, 5*time.Millisecond)
}
