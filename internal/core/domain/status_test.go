package domain_test

import (
	"testing"

	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.Status
	}{
		{"open lowercase", "open", domain.StatusOpen},
		{"open mixed case", "Open", domain.StatusOpen},
		{"on hold", "On Hold", domain.StatusHold},
		{"bare hold", "hold", domain.StatusHold},
		{"in progress", "In Progress", domain.StatusInProgress},
		{"escalated", "Escalated", domain.StatusEscalated},
		{"closed", "Closed", domain.StatusClosed},
		{"empty is unassigned", "", domain.StatusUnassigned},
		{"whitespace only is unassigned", "   ", domain.StatusUnassigned},
		{"unknown passes through lowercased", "Awaiting Customer", domain.Status("awaiting customer")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NormalizeStatus(tt.raw))
		})
	}
}

func TestStatus_ResolvedLike(t *testing.T) {
	tests := []struct {
		name   string
		status domain.Status
		want   bool
	}{
		{"closed", domain.StatusClosed, true},
		{"resolved", domain.Status("resolved"), true},
		{"archived", domain.Status("archived"), true},
		{"completed", domain.Status("completed"), true},
		{"open", domain.StatusOpen, false},
		{"hold", domain.StatusHold, false},
		{"in progress", domain.StatusInProgress, false},
		{"escalated", domain.StatusEscalated, false},
		{"unassigned", domain.StatusUnassigned, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.ResolvedLike())
		})
	}
}

func TestTicket_EffectiveStatus(t *testing.T) {
	t.Run("base status when not escalated", func(t *testing.T) {
		ticket := domain.Ticket{Status: "On Hold"}
		assert.Equal(t, domain.StatusHold, ticket.EffectiveStatus())
	})

	t.Run("escalation flag overrides base status", func(t *testing.T) {
		ticket := domain.Ticket{Status: "Open", IsEscalated: true}
		assert.Equal(t, domain.StatusEscalated, ticket.EffectiveStatus())

		// The raw status string is untouched for display.
		assert.Equal(t, "Open", ticket.Status)
	})

	t.Run("escalation flag wins even over closed", func(t *testing.T) {
		ticket := domain.Ticket{Status: "Closed", IsEscalated: true}
		assert.Equal(t, domain.StatusEscalated, ticket.EffectiveStatus())
	})
}
