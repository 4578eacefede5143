package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdhadshhd/med-point/internal/core/domain"
)

func TestClient_SupportMessageRelayedToAdmins(t *testing.T) {
	hub := newTestHub(t)

	patient := newTestClient(hub, domain.RolePatient)
	admin := newTestClient(hub, domain.RoleAdmin)
	register(t, hub, patient)
	register(t, hub, admin)

	patient.handleIncomingMessage([]byte(`{"event":"support:message","payload":{"message":"I need help"}}`))

	msg := receive(t, admin)
	assert.Equal(t, "support:message", msg.Event)

	data, ok := msg.Data.(domain.SupportMessageEvent)
	require.True(t, ok)
	assert.Equal(t, patient.UserID.String(), data.From.ID)
	assert.Equal(t, patient.Name, data.From.Name)
	assert.Equal(t, "I need help", data.Message)

	// The sender gets an acknowledgement on its own connection.
	ack := receive(t, patient)
	assert.Equal(t, "support:system", ack.Event)
}

func TestClient_EmptySupportMessageIgnored(t *testing.T) {
	hub := newTestHub(t)

	patient := newTestClient(hub, domain.RolePatient)
	admin := newTestClient(hub, domain.RoleAdmin)
	register(t, hub, patient)
	register(t, hub, admin)

	patient.handleIncomingMessage([]byte(`{"event":"support:message","payload":{"message":""}}`))

	expectSilence(t, admin)
	expectSilence(t, patient)
}

func TestClient_AckAfterDisconnectDoesNotPanic(t *testing.T) {
	hub := newTestHub(t)

	patient := newTestClient(hub, domain.RolePatient)
	register(t, hub, patient)

	hub.Unregister <- patient
	require.Eventually(t, func() bool {
		return !hub.IsUserConnected(patient.UserID)
	}, time.Second, 5*time.Millisecond)

	// The read side may still try to acknowledge after the hub closed the
	// send channel. The ack is routed through the hub loop and dropped.
	patient.sendSystemMessage("late ack")

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 5*time.Millisecond)
}
