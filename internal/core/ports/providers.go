package ports

import (
	"context"

	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
)

// TicketProvider is the port to the upstream helpdesk's two overlapping
// ticket sources. Implementations own fetching, rate limiting, retries and
// caching; the aggregation core only ever sees complete in-memory
// collections. A failed fetch surfaces as a single error, never as a
// partial collection.
type TicketProvider interface {
	// ActiveTickets returns the currently-open ticket set (which may
	// include recently closed tickets not yet archived).
	ActiveTickets(ctx context.Context) ([]domain.Ticket, error)

	// ArchivedTickets returns the archived/closed ticket set.
	ArchivedTickets(ctx context.Context) ([]domain.Ticket, error)
}

// MetricsProvider is the port to the upstream per-ticket metrics endpoint.
// The upstream caps how many tickets can be enriched, so the returned slice
// may cover only a subset of the requested ticket numbers; absence of a
// metrics record contributes zero to every aggregate.
type MetricsProvider interface {
	TicketMetrics(ctx context.Context, ticketNumbers []string) ([]domain.TicketMetrics, error)
}

// AgentDirectory is the port to the upstream agent listing, used as the
// first step of the agent-name fallback chain. The returned map is keyed by
// assignee ID and must be treated as read-only by the core.
type AgentDirectory interface {
	AgentNames(ctx context.Context) (map[string]string, error)
}
