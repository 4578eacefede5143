package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	mw "github.com/jdhadshhd/med-point/internal/adapters/primary/http/middleware"
	"github.com/jdhadshhd/med-point/internal/adapters/primary/validation"
	"github.com/jdhadshhd/med-point/internal/auth"
	"github.com/jdhadshhd/med-point/internal/core/domain"
	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
	"github.com/jdhadshhd/med-point/internal/core/ports"
)

// TicketHandler handles HTTP requests for support tickets
type TicketHandler struct {
	ticketService ports.TicketService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(
	ticketService ports.TicketService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "ticket"),
	}
}

// RegisterRoutes sets up the routing for all ticket endpoints.
func (h *TicketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListTickets)
	r.Post("/", h.HandleCreateTicket)
	r.With(mw.RequireRole(domain.RoleAdmin)).Get("/counts", h.HandleTicketCounts)

	r.Route("/{ticketID}", func(r chi.Router) {
		r.Get("/", h.HandleGetTicket)
		r.Get("/messages", h.HandleListMessages)
		r.Post("/messages", h.HandleAddReply)
		r.With(mw.RequireRole(domain.RoleAdmin)).Patch("/status", h.HandleUpdateTicketStatus)
	})
}

// --- Request/Response DTOs ---

// CreateTicketRequest defines the expected JSON body for creating a ticket
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// Validate validates the create ticket request
func (r *CreateTicketRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("title", r.Title).
		MaxLength("title", r.Title, domain.MaxTitleLength)

	v.MaxLength("description", r.Description, domain.MaxDescriptionLength)

	// Priority defaults to MEDIUM when omitted
	v.OneOf("priority", r.Priority, []string{"LOW", "MEDIUM", "HIGH"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// AddReplyRequest defines the expected JSON body for replying on a ticket
type AddReplyRequest struct {
	Body string `json:"body"`
}

// Validate validates the add reply request
func (r *AddReplyRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("body", r.Body).
		MaxLength("body", r.Body, domain.MaxMessageLength)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdateTicketStatusRequest defines the expected JSON body for status updates
type UpdateTicketStatusRequest struct {
	Status string `json:"status"`
}

// Validate validates the update status request
func (r *UpdateTicketStatusRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("status", r.Status).
		OneOf("status", r.Status, []string{"OPEN", "IN_PROGRESS", "RESOLVED", "CLOSED"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// TicketDTO defines the JSON response for tickets.
type TicketDTO struct {
	ID          int64   `json:"id"`
	UserID      string  `json:"userId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   *string `json:"updatedAt"`
}

func toTicketDTO(ticket *domain.SupportTicket) TicketDTO {
	var updatedAt *string
	if ticket.UpdatedAt != nil {
		value := ticket.UpdatedAt.Format(time.RFC3339)
		updatedAt = &value
	}

	return TicketDTO{
		ID:          ticket.ID,
		UserID:      ticket.UserID.String(),
		Title:       ticket.Title,
		Description: ticket.Description,
		Priority:    string(ticket.Priority),
		Status:      string(ticket.Status),
		CreatedAt:   ticket.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   updatedAt,
	}
}

func toTicketDTOs(tickets []*domain.SupportTicket) []TicketDTO {
	response := make([]TicketDTO, 0, len(tickets))
	for _, ticket := range tickets {
		response = append(response, toTicketDTO(ticket))
	}
	return response
}

// TicketMessageDTO defines the JSON response for ticket messages.
type TicketMessageDTO struct {
	ID        int64  `json:"id"`
	TicketID  int64  `json:"ticketId"`
	SenderID  string `json:"senderId"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
}

func toTicketMessageDTO(msg *domain.TicketMessage) TicketMessageDTO {
	return TicketMessageDTO{
		ID:        msg.ID,
		TicketID:  msg.TicketID,
		SenderID:  msg.SenderID.String(),
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt.Format(time.RFC3339),
	}
}

// TicketCountsDTO summarizes tickets per status.
type TicketCountsDTO struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
}

// --- Handlers ---

// HandleListTickets handles GET /tickets. Admins see every ticket, other
// users only their own.
func (h *TicketHandler) HandleListTickets(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	var (
		tickets []*domain.SupportTicket
		err     error
	)
	if claims.Role == domain.RoleAdmin {
		tickets, err = h.ticketService.ListAll(r.Context())
	} else {
		tickets, err = h.ticketService.ListForUser(r.Context(), claims.UserID)
	}
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toTicketDTOs(tickets))
}

// HandleCreateTicket handles POST /tickets
func (h *TicketHandler) HandleCreateTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[CreateTicketRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ticket, err := h.ticketService.Create(r.Context(), ports.CreateTicketParams{
		UserID:      claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.TicketPriority(req.Priority),
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket created",
		"ticket_id", ticket.ID,
		"user_id", claims.UserID,
	)

	WriteCreated(w, toTicketDTO(ticket))
}

// HandleTicketCounts handles GET /tickets/counts
func (h *TicketHandler) HandleTicketCounts(w http.ResponseWriter, r *http.Request) {
	if _, ok := getClaims(w, r); !ok {
		return
	}

	counts, err := h.ticketService.Counts(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, TicketCountsDTO{
		Total:      counts.Total,
		Open:       counts.Open,
		InProgress: counts.InProgress,
		Resolved:   counts.Resolved,
		Closed:     counts.Closed,
	})
}

// HandleGetTicket handles GET /tickets/{ticketID}
func (h *TicketHandler) HandleGetTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := parseIDParam(r, "ticketID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ticket, err := h.ticketService.GetByID(r.Context(), ticketID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if !h.canView(claims, ticket) {
		h.errorHandler.Handle(w, r, apperrors.ErrForbidden)
		return
	}

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// HandleListMessages handles GET /tickets/{ticketID}/messages
func (h *TicketHandler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := parseIDParam(r, "ticketID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ticket, err := h.ticketService.GetByID(r.Context(), ticketID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if !h.canView(claims, ticket) {
		h.errorHandler.Handle(w, r, apperrors.ErrForbidden)
		return
	}

	messages, err := h.ticketService.ListMessages(r.Context(), ticketID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]TicketMessageDTO, 0, len(messages))
	for _, msg := range messages {
		response = append(response, toTicketMessageDTO(msg))
	}

	WriteList(w, response)
}

// HandleAddReply handles POST /tickets/{ticketID}/messages
func (h *TicketHandler) HandleAddReply(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := parseIDParam(r, "ticketID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[AddReplyRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ticket, err := h.ticketService.GetByID(r.Context(), ticketID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if !h.canView(claims, ticket) {
		h.errorHandler.Handle(w, r, apperrors.ErrForbidden)
		return
	}

	message, err := h.ticketService.AddReply(r.Context(), ports.AddReplyParams{
		TicketID:   ticketID,
		SenderID:   claims.UserID,
		SenderRole: claims.Role,
		Body:       req.Body,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket reply added",
		"ticket_id", ticketID,
		"user_id", claims.UserID,
	)

	WriteCreated(w, toTicketMessageDTO(message))
}

// HandleUpdateTicketStatus handles PATCH /tickets/{ticketID}/status
func (h *TicketHandler) HandleUpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	ticketID, err := parseIDParam(r, "ticketID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateTicketStatusRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ticket, err := h.ticketService.UpdateStatus(r.Context(), ports.UpdateTicketStatusParams{
		TicketID: ticketID,
		Status:   domain.TicketStatus(req.Status),
		ActorID:  claims.UserID,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket status updated",
		"ticket_id", ticketID,
		"new_status", req.Status,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// canView reports whether the caller may read the ticket and its thread.
func (h *TicketHandler) canView(claims *auth.Claims, ticket *domain.SupportTicket) bool {
	return claims.Role == domain.RoleAdmin || ticket.IsOwnedBy(claims.UserID)
}
