package domain

import "time"

// RealtimeEvent is implemented by every payload pushed over the websocket
// relay. EventName is the wire event the client listens for; the payload is
// the implementing struct itself. The set of variants is closed: services
// construct one of the types below rather than ad hoc maps.
type RealtimeEvent interface {
	EventName() string
}

// NotificationEvent is the generic "you have a new notification" push.
type NotificationEvent struct {
	Type     NotificationType `json:"type"`
	Message  string           `json:"message"`
	TicketID int64            `json:"ticketId,omitempty"`
}

func (NotificationEvent) EventName() string { return "notification" }

// AppointmentUpdatedEvent is pushed to the affected patient or doctor when
// an appointment changes state.
type AppointmentUpdatedEvent struct {
	AppointmentID int64  `json:"appointmentId"`
	Status        string `json:"status,omitempty"`
	Message       string `json:"message"`
}

func (AppointmentUpdatedEvent) EventName() string { return "appointment:updated" }

// TicketUpdatedEvent is pushed to the ticket owner on replies and status
// changes.
type TicketUpdatedEvent struct {
	TicketID int64  `json:"ticketId"`
	Status   string `json:"status,omitempty"`
	Message  string `json:"message"`
}

func (TicketUpdatedEvent) EventName() string { return "ticket:updated" }

// SupportSender identifies the author of a support-chat message. It is
// filled from verified connection claims, never from the client payload.
type SupportSender struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SupportMessageEvent relays a patient chat message to all admins.
type SupportMessageEvent struct {
	From      SupportSender `json:"from"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
}

func (SupportMessageEvent) EventName() string { return "support:message" }

// SupportReplyEvent relays an admin chat reply to a specific user.
type SupportReplyEvent struct {
	From    SupportSender `json:"from"`
	Message string        `json:"message"`
}

func (SupportReplyEvent) EventName() string { return "support:reply" }

// SupportSystemEvent is an advisory acknowledgment sent back to the
// originating connection.
type SupportSystemEvent struct {
	Message string `json:"message"`
}

func (SupportSystemEvent) EventName() string { return "support:system" }
