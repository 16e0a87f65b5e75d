package domain

import "time"

// Provenance records which upstream source a ticket record came from. It is
// used only for dedup priority during reconciliation and is never displayed.
type Provenance string

const (
	// ProvenanceArchived marks records from the archived-ticket source,
	// authoritative for closed tickets.
	ProvenanceArchived Provenance = "archived"
	// ProvenanceActiveClosed marks records from the currently-open source.
	ProvenanceActiveClosed Provenance = "activeClosed"
)

// UnassignedAgent is the sentinel display name used when every step of the
// agent-name fallback chain comes up empty.
const UnassignedAgent = "Unassigned"

// Assignee is the embedded assignee object some upstream records carry.
// Any of its fields may be empty.
type Assignee struct {
	DisplayName string
	FullName    string
	Name        string
	Email       string
}

// Ticket is a single helpdesk ticket as consumed by the aggregation core.
// Optional timestamps are nil when absent or unparsable upstream; downstream
// logic treats nil as "unknown" and excludes the ticket from date-dependent
// computations rather than failing.
type Ticket struct {
	ID           string
	TicketNumber string
	Status       string // raw; normalize before aggregating
	CreatedTime  *time.Time
	ClosedTime   *time.Time
	AssigneeID   string
	Assignee     *Assignee
	AssigneeName string
	DepartmentID string
	IsEscalated  bool
	Provenance   Provenance
}

// EffectiveStatus returns the canonical status used for per-status totals
// and bucket classification. An escalation flag overrides the base lifecycle
// status in that classification only; the raw Status string is retained for
// display.
func (t Ticket) EffectiveStatus() Status {
	if t.IsEscalated {
		return StatusEscalated
	}
	return NormalizeStatus(t.Status)
}

// Resolved reports whether the ticket's base status is resolved-like. The
// escalation flag is an overlay on status classification, not on outcome: an
// escalated ticket that has been closed still counts as resolved here.
func (t Ticket) Resolved() bool {
	return NormalizeStatus(t.Status).ResolvedLike()
}

// Department is one row of the static department lookup table.
type Department struct {
	ID   string
	Name string
}

// StagingEntry is a status/timestamp pair from a ticket's metrics record,
// passed through for display without further aggregation.
type StagingEntry struct {
	Status string
	At     *time.Time
}

// AgentHandling is an agent-name/duration pair from a ticket's metrics
// record, passed through for display.
type AgentHandling struct {
	AgentName string
	Duration  string
}

// TicketMetrics is the per-ticket enrichment record, keyed by TicketNumber.
// Not every ticket has one; absence contributes zero to every aggregate.
// Duration fields keep the upstream's raw encoding (see duration.go).
type TicketMetrics struct {
	TicketNumber      string
	FirstResponseTime string
	ResolutionTime    string
	ThreadCount       int
	ResponseCount     int
	OutgoingCount     int
	ReopenCount       int
	ReassignCount     int
	StagingData       []StagingEntry
	AgentsHandled     []AgentHandling
}
