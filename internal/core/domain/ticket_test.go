package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdhadshhd/med-point/internal/core/domain"
	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
)

func TestNewTicket(t *testing.T) {
	userID := uuid.New()

	t.Run("valid ticket", func(t *testing.T) {
		ticket, err := domain.NewTicket(domain.TicketParams{
			UserID:      userID,
			Title:       "App crashes on login",
			Description: "Every time I enter my password",
			Priority:    domain.PriorityHigh,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.TicketOpen, ticket.Status)
		assert.Equal(t, domain.PriorityHigh, ticket.Priority)
		assert.True(t, ticket.IsOwnedBy(userID))
		assert.False(t, ticket.IsOwnedBy(uuid.New()))
	})

	t.Run("priority defaults to medium", func(t *testing.T) {
		ticket, err := domain.NewTicket(domain.TicketParams{
			UserID: userID,
			Title:  "Question",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.PriorityMedium, ticket.Priority)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name    string
			params  domain.TicketParams
			wantErr error
		}{
			{"missing user", domain.TicketParams{Title: "x"}, apperrors.ErrRequesterRequired},
			{"missing title", domain.TicketParams{UserID: userID}, apperrors.ErrTitleRequired},
			{"title too long", domain.TicketParams{UserID: userID, Title: strings.Repeat("a", 256)}, apperrors.ErrTitleTooLong},
			{"description too long", domain.TicketParams{UserID: userID, Title: "x", Description: strings.Repeat("a", 5001)}, apperrors.ErrDescriptionTooLong},
			{"bad priority", domain.TicketParams{UserID: userID, Title: "x", Priority: domain.TicketPriority("URGENT")}, apperrors.ErrInvalidPriority},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := domain.NewTicket(tt.params)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})
}

func TestSupportTicket_SetStatus(t *testing.T) {
	ticket, err := domain.NewTicket(domain.TicketParams{UserID: uuid.New(), Title: "x"})
	require.NoError(t, err)

	require.NoError(t, ticket.SetStatus(domain.TicketInProgress))
	assert.Equal(t, domain.TicketInProgress, ticket.Status)
	assert.NotNil(t, ticket.UpdatedAt)

	err = ticket.SetStatus(domain.TicketStatus("ARCHIVED"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidTicketStatus)
	// Failed transition leaves the status untouched
	assert.Equal(t, domain.TicketInProgress, ticket.Status)
}

func TestNewTicketMessage(t *testing.T) {
	senderID := uuid.New()

	t.Run("valid message", func(t *testing.T) {
		msg, err := domain.NewTicketMessage(1, senderID, "Thanks for the report")
		require.NoError(t, err)
		assert.Equal(t, int64(1), msg.TicketID)
		assert.Equal(t, senderID, msg.SenderID)
	})

	t.Run("validation failures", func(t *testing.T) {
		_, err := domain.NewTicketMessage(0, senderID, "x")
		assert.ErrorIs(t, err, apperrors.ErrTicketIDRequired)

		_, err = domain.NewTicketMessage(1, uuid.Nil, "x")
		assert.ErrorIs(t, err, apperrors.ErrSenderRequired)

		_, err = domain.NewTicketMessage(1, senderID, "")
		assert.ErrorIs(t, err, apperrors.ErrMessageRequired)

		_, err = domain.NewTicketMessage(1, senderID, strings.Repeat("a", 5001))
		assert.ErrorIs(t, err, apperrors.ErrMessageTooLong)
	})
}
