package domain

import "strings"

// Status is a canonical ticket status tag. Raw upstream status strings are
// freeform and case-inconsistent; they must pass through NormalizeStatus
// before being used in any aggregation.
type Status string

const (
	StatusOpen       Status = "open"
	StatusHold       Status = "hold"
	StatusInProgress Status = "inProgress"
	StatusEscalated  Status = "escalated"
	StatusClosed     Status = "closed"
	StatusUnassigned Status = "unassigned"
)

// NormalizeStatus maps a raw upstream status string onto the canonical set.
// Unknown values pass through lowercased rather than being rejected, since
// the upstream vocabulary is not closed.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return StatusUnassigned
	case "open":
		return StatusOpen
	case "on hold", "hold":
		return StatusHold
	case "in progress":
		return StatusInProgress
	case "escalated":
		return StatusEscalated
	case "closed":
		return StatusClosed
	default:
		return Status(strings.ToLower(strings.TrimSpace(raw)))
	}
}

// ResolvedLike reports whether the status counts as a terminal, successful
// outcome. Every aggregator must use this single predicate so that resolved
// counts in different views never diverge.
func (s Status) ResolvedLike() bool {
	switch s {
	case StatusClosed, "resolved", "archived", "completed":
		return true
	}
	return false
}
