package services

import (
	"math"

	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
	"github.com/Asha9112/ticket-dashboard/internal/core/views"
)

// PerformanceService builds the one-row-per-agent performance table from
// reconciled tickets, their metrics records and pending counts.
type PerformanceService struct {
	reconciler *ReconcileService
}

func NewPerformanceService(reconciler *ReconcileService) *PerformanceService {
	return &PerformanceService{reconciler: reconciler}
}

// rollupAccumulator carries the mutable sums for one agent during the
// aggregation pass; the immutable AgentRollup is produced at the end.
type rollupAccumulator struct {
	rollup domain.AgentRollup

	deptSeen map[string]bool

	firstResponseSum   int
	firstResponseCount int
	resolutionSumHours float64
	resolutionCount    int
	threadSum          int
	threadCount        int
}

// BuildAgentRollups aggregates in a single pass keyed by resolved agent
// name.
//
// Each metrics record contributes one created ticket, one per-status count
// from the ticket's effective status, a resolved count when the status is
// resolved-like, first-response minutes when the duration is known, and a
// thread count only when it is positive (tickets with zero threads are
// deliberately excluded from the threads-per-active-ticket average).
//
// The resolution average is computed from archived closure timestamps
// (wall-clock), never from the metrics API's business-hours resolution
// field; the two clocks are not interchangeable.
func (s *PerformanceService) BuildAgentRollups(
	tickets []domain.Ticket,
	metrics []domain.TicketMetrics,
	pendingCounts map[string]int,
	nameMap map[string]string,
) []domain.AgentRollup {
	byNumber := make(map[string]domain.Ticket, len(tickets))
	for _, ticket := range tickets {
		byNumber[ticket.TicketNumber] = ticket
	}

	accumulators := make(map[string]*rollupAccumulator)
	order := make([]string, 0)

	acc := func(agent string) *rollupAccumulator {
		a, ok := accumulators[agent]
		if !ok {
			a = &rollupAccumulator{
				rollup:   domain.AgentRollup{AgentName: agent},
				deptSeen: make(map[string]bool),
			}
			accumulators[agent] = a
			order = append(order, agent)
		}
		return a
	}

	touchDepartment := func(a *rollupAccumulator, dept string) {
		if dept == "" || a.deptSeen[dept] {
			return
		}
		a.deptSeen[dept] = true
		a.rollup.Departments = append(a.rollup.Departments, dept)
	}

	for _, m := range metrics {
		ticket, ok := byNumber[m.TicketNumber]
		if !ok {
			continue
		}

		agent := s.reconciler.ResolveAgentName(ticket, nameMap)
		a := acc(agent)
		touchDepartment(a, s.reconciler.ResolveDepartmentName(ticket))

		a.rollup.TicketsCreated++

		status := ticket.EffectiveStatus()
		switch status {
		case domain.StatusOpen:
			a.rollup.OpenCount++
		case domain.StatusHold:
			a.rollup.HoldCount++
		case domain.StatusInProgress:
			a.rollup.InProgressCount++
		case domain.StatusEscalated:
			a.rollup.EscalatedCount++
		}
		// Resolution is judged on the base status: escalation overlays the
		// per-status counters above but never hides a closed outcome.
		if ticket.Resolved() {
			a.rollup.TicketsResolved++
		}

		if minutes, known := domain.DurationMinutes(m.FirstResponseTime); known {
			a.firstResponseSum += minutes
			a.firstResponseCount++
		}

		if m.ThreadCount > 0 {
			a.threadSum += m.ThreadCount
			a.threadCount++
		}
	}

	// Resolution durations come from the archived subset's wall-clock
	// closure timestamps, a separate notion from the metrics field above.
	for _, ticket := range tickets {
		if ticket.Provenance != domain.ProvenanceArchived {
			continue
		}
		if ticket.CreatedTime == nil || ticket.ClosedTime == nil {
			continue
		}

		agent := s.reconciler.ResolveAgentName(ticket, nameMap)
		a := acc(agent)
		touchDepartment(a, s.reconciler.ResolveDepartmentName(ticket))

		a.resolutionSumHours += ticket.ClosedTime.Sub(*ticket.CreatedTime).Hours()
		a.resolutionCount++
	}

	for agent, pending := range pendingCounts {
		acc(agent).rollup.PendingCount = pending
	}

	rollups := make([]domain.AgentRollup, 0, len(order))
	for _, agent := range order {
		a := accumulators[agent]

		// An average is only present when at least one ticket
		// contributed a measured value; dividing by the total ticket
		// count would let missing values drag the mean toward zero.
		if a.firstResponseCount > 0 {
			avg := int(math.Round(float64(a.firstResponseSum) / float64(a.firstResponseCount)))
			a.rollup.AvgFirstResponseMinutes = &avg
		}
		if a.resolutionCount > 0 {
			avg := a.resolutionSumHours / float64(a.resolutionCount)
			a.rollup.AvgResolutionHours = &avg
		}
		if a.threadCount > 0 {
			avg := float64(a.threadSum) / float64(a.threadCount)
			a.rollup.AvgThreadCount = &avg
		}

		rollups = append(rollups, a.rollup)
	}

	views.SortStable(rollups, func(x, y domain.AgentRollup) bool {
		return views.CompareNames(x.AgentName, y.AgentName) < 0
	})
	return rollups
}

// PendingByAgent counts each agent's unresolved tickets from the reconciled
// set. This is the pendingCounts input to BuildAgentRollups; the aggregator
// takes it as a parameter so callers can substitute an upstream-provided
// count when one exists.
func (s *PerformanceService) PendingByAgent(tickets []domain.Ticket, nameMap map[string]string) map[string]int {
	pending := make(map[string]int)
	for _, ticket := range tickets {
		if ticket.Resolved() {
			continue
		}
		pending[s.reconciler.ResolveAgentName(ticket, nameMap)]++
	}
	return pending
}
