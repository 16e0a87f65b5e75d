package services

import (
	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
)

// ReconcileService merges the two overlapping upstream ticket sources into
// one deduplicated set and owns the identity-resolution fallback chains used
// by every aggregator.
type ReconcileService struct {
	departments map[string]string // id -> display name, read-only after construction
}

// NewReconcileService creates a reconciler over the static department table.
func NewReconcileService(departments []domain.Department) *ReconcileService {
	byID := make(map[string]string, len(departments))
	for _, dept := range departments {
		byID[dept.ID] = dept.Name
	}
	return &ReconcileService{departments: byID}
}

// Reconcile concatenates the active and archived sets and deduplicates by
// ticket ID in a single pass. On conflict the archived record wins: it
// carries the authoritative closure and resolution data for a ticket that
// appears in both sources. Each distinct ID appears exactly once in the
// result.
func (s *ReconcileService) Reconcile(active, archived []domain.Ticket) []domain.Ticket {
	merged := make([]domain.Ticket, 0, len(active)+len(archived))
	position := make(map[string]int, len(active)+len(archived))

	consume := func(tickets []domain.Ticket) {
		for _, ticket := range tickets {
			pos, seen := position[ticket.ID]
			if !seen {
				position[ticket.ID] = len(merged)
				merged = append(merged, ticket)
				continue
			}
			if ticket.Provenance == domain.ProvenanceArchived {
				merged[pos] = ticket
			}
		}
	}

	consume(active)
	consume(archived)
	return merged
}

// ResolveAgentName derives a ticket's agent display name through the full
// fallback chain: explicit directory entry, embedded assignee fields,
// ticket-level assignee name, then the "Unassigned" sentinel. The same chain
// is applied everywhere a name is derived so different views can never
// disagree about who owns a ticket.
func (s *ReconcileService) ResolveAgentName(ticket domain.Ticket, nameMap map[string]string) string {
	if ticket.AssigneeID != "" {
		if name, ok := nameMap[ticket.AssigneeID]; ok && name != "" {
			return name
		}
	}

	if a := ticket.Assignee; a != nil {
		for _, candidate := range []string{a.DisplayName, a.FullName, a.Name, a.Email} {
			if candidate != "" {
				return candidate
			}
		}
	}

	if ticket.AssigneeName != "" {
		return ticket.AssigneeName
	}

	return domain.UnassignedAgent
}

// ResolveDepartmentName maps a ticket's department ID against the static
// table. Unknown IDs resolve to "", never an error.
func (s *ReconcileService) ResolveDepartmentName(ticket domain.Ticket) string {
	return s.departments[ticket.DepartmentID]
}
