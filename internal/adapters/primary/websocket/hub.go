package websocket

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jdhadshhd/med-point/internal/core/domain"
	"github.com/jdhadshhd/med-point/internal/core/ports"
	"github.com/jdhadshhd/med-point/internal/infrastructure/metrics"
)

// envelope is the wire format for outbound events: the event name plus
// its JSON payload.
type envelope struct {
	Event string              `json:"event"`
	Data  domain.RealtimeEvent `json:"data"`
}

// publication is a routed event waiting to be delivered. Exactly one of
// the target fields is set.
type publication struct {
	userID *uuid.UUID
	role   *domain.Role
	event  domain.RealtimeEvent
}

// direct carries an event addressed to one specific connection.
type direct struct {
	client *Client
	event  domain.RealtimeEvent
}

// Hub maintains the set of active Clients and routes events to them.
// Clients are grouped by user ID and by role, so an event can be
// delivered to every connection of one user or to every connection of
// everyone holding a role.
type Hub struct {
	// clients maps user IDs to their active connections.
	// A single user can have multiple connections (multiple tabs/devices).
	clients map[uuid.UUID]map[*Client]bool

	// roles maps roles to the connections of users holding that role.
	roles map[domain.Role]map[*Client]bool

	// publish carries routed events
	publish chan publication

	// sendDirect carries single-connection acknowledgements. Routing them
	// through the event loop keeps all sends on a client's channel in the
	// same goroutine that closes it.
	sendDirect chan direct

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// done stops the event loop
	done chan struct{}

	// mu protects the clients and roles maps
	mu sync.RWMutex

	logger  *slog.Logger
	metrics *metrics.Collector
}

// Ensure Hub implements the EventPublisher interface.
var _ ports.EventPublisher = (*Hub)(nil)

// NewHub creates a new WebSocket hub. The metrics collector may be nil.
func NewHub(logger *slog.Logger, collector *metrics.Collector) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		roles:      make(map[domain.Role]map[*Client]bool),
		publish:    make(chan publication, 256),
		sendDirect: make(chan direct, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.With("component", "websocket_hub"),
		metrics:    collector,
	}
}

// PublishToUser queues an event for delivery to every connection of the
// given user. Delivery is best effort: if the hub's queue is full the
// event is dropped and logged.
func (h *Hub) PublishToUser(userID uuid.UUID, event domain.RealtimeEvent) {
	select {
	case h.publish <- publication{userID: &userID, event: event}:
		if h.metrics != nil {
			h.metrics.EventsPublished.WithLabelValues(event.EventName(), "user").Inc()
		}
	default:
		h.logger.Warn("publish queue full, dropping event",
			"event", event.EventName(),
			"user_id", userID,
		)
		if h.metrics != nil {
			h.metrics.EventsDropped.Inc()
		}
	}
}

// PublishToRole queues an event for delivery to every connection of
// every user holding the given role.
func (h *Hub) PublishToRole(role domain.Role, event domain.RealtimeEvent) {
	select {
	case h.publish <- publication{role: &role, event: event}:
		if h.metrics != nil {
			h.metrics.EventsPublished.WithLabelValues(event.EventName(), "role").Inc()
		}
	default:
		h.logger.Warn("publish queue full, dropping event",
			"event", event.EventName(),
			"role", role,
		)
		if h.metrics != nil {
			h.metrics.EventsDropped.Inc()
		}
	}
}

// SendToClient queues an event for one specific connection. Used for
// acknowledgements addressed to the originating socket rather than to
// every connection of the user.
func (h *Hub) SendToClient(client *Client, event domain.RealtimeEvent) {
	select {
	case h.sendDirect <- direct{client: client, event: event}:
	default:
		h.logger.Warn("direct queue full, dropping event",
			"event", event.EventName(),
			"user_id", client.UserID,
		)
		if h.metrics != nil {
			h.metrics.EventsDropped.Inc()
		}
	}
}

// Run starts the hub's event loop. This MUST be run as a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case pub := <-h.publish:
			h.deliver(pub)

		case d := <-h.sendDirect:
			h.deliverDirect(d)

		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Shutdown stops the event loop and closes every client connection.
func (h *Hub) Shutdown() {
	close(h.done)
}

// registerClient adds a client to its user and role groups
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.UserID] == nil {
		h.clients[client.UserID] = make(map[*Client]bool)
	}
	h.clients[client.UserID][client] = true

	if h.roles[client.Role] == nil {
		h.roles[client.Role] = make(map[*Client]bool)
	}
	h.roles[client.Role][client] = true

	if h.metrics != nil {
		h.metrics.ConnectedClients.Inc()
	}

	h.logger.Info("client registered",
		"user_id", client.UserID,
		"role", client.Role,
		"total_connections", len(h.clients[client.UserID]),
	)
}

// unregisterClient removes a client from both groups
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := false
	if userClients, ok := h.clients[client.UserID]; ok {
		if _, exists := userClients[client]; exists {
			removed = true
			delete(userClients, client)
			if len(userClients) == 0 {
				delete(h.clients, client.UserID)
			}
		}
	}

	if roleClients, ok := h.roles[client.Role]; ok {
		delete(roleClients, client)
		if len(roleClients) == 0 {
			delete(h.roles, client.Role)
		}
	}

	client.CloseSend()

	if removed {
		if h.metrics != nil {
			h.metrics.ConnectedClients.Dec()
		}
		h.logger.Info("client unregistered",
			"user_id", client.UserID,
			"role", client.Role,
		)
	}
}

// deliver fans an event out to the targeted clients
func (h *Hub) deliver(pub publication) {
	h.mu.RLock()
	var group map[*Client]bool
	switch {
	case pub.userID != nil:
		group = h.clients[*pub.userID]
	case pub.role != nil:
		group = h.roles[*pub.role]
	}
	if len(group) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy the client list to avoid holding the lock while sending
	clients := make([]*Client, 0, len(group))
	for client := range group {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	h.logger.Debug("delivering event",
		"event", pub.event.EventName(),
		"client_count", len(clients),
	)

	msg := envelope{Event: pub.event.EventName(), Data: pub.event}
	for _, client := range clients {
		select {
		case client.Send <- msg:
			// Successfully queued
		default:
			// Client's send buffer is full, drop the connection
			h.logger.Warn("client send buffer full, unregistering",
				"user_id", client.UserID,
			)
			if h.metrics != nil {
				h.metrics.EventsDropped.Inc()
			}
			h.unregisterClient(client)
		}
	}
}

// deliverDirect sends an event to a single connection, skipping clients
// that have already been unregistered.
func (h *Hub) deliverDirect(d direct) {
	h.mu.RLock()
	registered := h.clients[d.client.UserID][d.client]
	h.mu.RUnlock()
	if !registered {
		return
	}

	select {
	case d.client.Send <- envelope{Event: d.event.EventName(), Data: d.event}:
	default:
		h.logger.Warn("client send buffer full, unregistering",
			"user_id", d.client.UserID,
		)
		if h.metrics != nil {
			h.metrics.EventsDropped.Inc()
		}
		h.unregisterClient(d.client)
	}
}

// closeAll closes every connected client's send channel
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, userClients := range h.clients {
		for client := range userClients {
			client.CloseSend()
		}
	}
	h.clients = make(map[uuid.UUID]map[*Client]bool)
	h.roles = make(map[domain.Role]map[*Client]bool)
}

// ClientCount returns the total number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, userClients := range h.clients {
		count += len(userClients)
	}
	return count
}

// IsUserConnected checks if a user has any active connections
func (h *Hub) IsUserConnected(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.clients[userID]
	return ok && len(clients) > 0
}

// RoleConnectionCount returns the number of connections held by a role
func (h *Hub) RoleConnectionCount(role domain.Role) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.roles[role])
}
