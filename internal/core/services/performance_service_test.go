package services_test

import (
	"testing"

	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
	"github.com/Asha9112/ticket-dashboard/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformanceService_BuildAgentRollups(t *testing.T) {
	reconciler := services.NewReconcileService(testDepartments())
	svc := services.NewPerformanceService(reconciler)

	t.Run("average excludes tickets with unknown first response", func(t *testing.T) {
		tickets := []domain.Ticket{
			{ID: "1", TicketNumber: "101", Status: "Open", AssigneeName: "Priya Nair", DepartmentID: "d1"},
			{ID: "2", TicketNumber: "102", Status: "Open", AssigneeName: "Priya Nair", DepartmentID: "d1"},
			{ID: "3", TicketNumber: "103", Status: "Open", AssigneeName: "Priya Nair", DepartmentID: "d1"},
		}
		metrics := []domain.TicketMetrics{
			{TicketNumber: "101", FirstResponseTime: "1:00 hrs"},
			{TicketNumber: "102", FirstResponseTime: ""},
			{TicketNumber: "103", FirstResponseTime: "3:00 hrs"},
		}

		rollups := svc.BuildAgentRollups(tickets, metrics, nil, nil)

		require.Len(t, rollups, 1)
		row := rollups[0]
		assert.Equal(t, 3, row.TicketsCreated)

		// (60 + 180) / 2 contributing tickets, never / 3.
		require.NotNil(t, row.AvgFirstResponseMinutes)
		assert.Equal(t, 120, *row.AvgFirstResponseMinutes)
		assert.Equal(t, "2:00", domain.FormatMinutes(*row.AvgFirstResponseMinutes))
	})

	t.Run("no contributing tickets leaves average absent not zero", func(t *testing.T) {
		tickets := []domain.Ticket{
			{ID: "1", TicketNumber: "101", Status: "Open", AssigneeName: "Omar Diaz"},
		}
		metrics := []domain.TicketMetrics{{TicketNumber: "101"}}

		rollups := svc.BuildAgentRollups(tickets, metrics, nil, nil)

		require.Len(t, rollups, 1)
		assert.Nil(t, rollups[0].AvgFirstResponseMinutes)
		assert.Nil(t, rollups[0].AvgResolutionHours)
		assert.Nil(t, rollups[0].AvgThreadCount)
	})

	t.Run("status breakdown uses effective status", func(t *testing.T) {
		tickets := []domain.Ticket{
			{ID: "1", TicketNumber: "101", Status: "Open", AssigneeName: "Priya Nair"},
			{ID: "2", TicketNumber: "102", Status: "On Hold", AssigneeName: "Priya Nair"},
			{ID: "3", TicketNumber: "103", Status: "In Progress", AssigneeName: "Priya Nair"},
			{ID: "4", TicketNumber: "104", Status: "Open", IsEscalated: true, AssigneeName: "Priya Nair"},
			{ID: "5", TicketNumber: "105", Status: "Closed", AssigneeName: "Priya Nair"},
		}
		metrics := make([]domain.TicketMetrics, 0, len(tickets))
		for _, ticket := range tickets {
			metrics = append(metrics, domain.TicketMetrics{TicketNumber: ticket.TicketNumber})
		}

		rollups := svc.BuildAgentRollups(tickets, metrics, nil, nil)

		require.Len(t, rollups, 1)
		row := rollups[0]
		assert.Equal(t, 5, row.TicketsCreated)
		assert.Equal(t, 1, row.OpenCount)
		assert.Equal(t, 1, row.HoldCount)
		assert.Equal(t, 1, row.InProgressCount)
		assert.Equal(t, 1, row.EscalatedCount)
		assert.Equal(t, 1, row.TicketsResolved)
	})

	t.Run("escalated closed ticket counts as both escalated and resolved", func(t *testing.T) {
		tickets := []domain.Ticket{
			{ID: "1", TicketNumber: "101", Status: "Closed", IsEscalated: true, AssigneeName: "Priya Nair"},
		}
		metrics := []domain.TicketMetrics{{TicketNumber: "101"}}

		rollups := svc.BuildAgentRollups(tickets, metrics, nil, nil)

		require.Len(t, rollups, 1)
		row := rollups[0]
		assert.Equal(t, 1, row.EscalatedCount)
		assert.Equal(t, 1, row.TicketsResolved)
	})

	t.Run("zero-thread tickets excluded from thread average", func(t *testing.T) {
		tickets := []domain.Ticket{
			{ID: "1", TicketNumber: "101", Status: "Open", AssigneeName: "Priya Nair"},
			{ID: "2", TicketNumber: "102", Status: "Open", AssigneeName: "Priya Nair"},
			{ID: "3", TicketNumber: "103", Status: "Open", AssigneeName: "Priya Nair"},
		}
		metrics := []domain.TicketMetrics{
			{TicketNumber: "101", ThreadCount: 4},
			{TicketNumber: "102", ThreadCount: 0},
			{TicketNumber: "103", ThreadCount: 2},
		}

		rollups := svc.BuildAgentRollups(tickets, metrics, nil, nil)

		require.Len(t, rollups, 1)
		require.NotNil(t, rollups[0].AvgThreadCount)
		assert.InDelta(t, 3.0, *rollups[0].AvgThreadCount, 1e-9)
	})

	t.Run("resolution average comes from archived wall-clock timestamps", func(t *testing.T) {
		tickets := []domain.Ticket{
			{
				ID: "1", TicketNumber: "101", Status: "Closed", AssigneeName: "Priya Nair",
				CreatedTime: ts("2024-01-10"), ClosedTime: ts("2024-01-12"),
				Provenance: domain.ProvenanceArchived,
			},
			{
				// Active ticket with a metrics resolution field; must not
				// feed the wall-clock average.
				ID: "2", TicketNumber: "102", Status: "Open", AssigneeName: "Priya Nair",
				CreatedTime: ts("2024-01-01"),
			},
		}
		metrics := []domain.TicketMetrics{
			{TicketNumber: "101"},
			{TicketNumber: "102", ResolutionTime: "500:00 hrs"},
		}

		rollups := svc.BuildAgentRollups(tickets, metrics, nil, nil)

		require.Len(t, rollups, 1)
		require.NotNil(t, rollups[0].AvgResolutionHours)
		assert.InDelta(t, 48.0, *rollups[0].AvgResolutionHours, 1e-9)
	})

	t.Run("pending counts and derived created total", func(t *testing.T) {
		tickets := []domain.Ticket{
			{ID: "1", TicketNumber: "101", Status: "Closed", AssigneeName: "Priya Nair"},
		}
		metrics := []domain.TicketMetrics{{TicketNumber: "101"}}
		pending := map[string]int{"Priya Nair": 4}

		rollups := svc.BuildAgentRollups(tickets, metrics, pending, nil)

		require.Len(t, rollups, 1)
		row := rollups[0]
		assert.Equal(t, 4, row.PendingCount)
		assert.Equal(t, 1, row.TicketsResolved)

		// Display "created" derives from resolved + pending, not from an
		// upstream count that could contradict the breakdown.
		assert.Equal(t, 5, row.TotalHandled())
	})

	t.Run("agent with only pending tickets still gets a row", func(t *testing.T) {
		rollups := svc.BuildAgentRollups(nil, nil, map[string]int{"Omar Diaz": 2}, nil)

		require.Len(t, rollups, 1)
		assert.Equal(t, "Omar Diaz", rollups[0].AgentName)
		assert.Equal(t, 2, rollups[0].PendingCount)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, svc.BuildAgentRollups(nil, nil, nil, nil))
	})

	t.Run("rows sorted by agent name", func(t *testing.T) {
		tickets := []domain.Ticket{
			{ID: "1", TicketNumber: "101", Status: "Open", AssigneeName: "zoe"},
			{ID: "2", TicketNumber: "102", Status: "Open", AssigneeName: "Alice"},
		}
		metrics := []domain.TicketMetrics{
			{TicketNumber: "101"},
			{TicketNumber: "102"},
		}

		rollups := svc.BuildAgentRollups(tickets, metrics, nil, nil)

		require.Len(t, rollups, 2)
		assert.Equal(t, "Alice", rollups[0].AgentName)
		assert.Equal(t, "zoe", rollups[1].AgentName)
	})
}

func TestPerformanceService_PendingByAgent(t *testing.T) {
	reconciler := services.NewReconcileService(testDepartments())
	svc := services.NewPerformanceService(reconciler)

	tickets := []domain.Ticket{
		{ID: "1", Status: "Open", AssigneeName: "Priya Nair"},
		{ID: "2", Status: "In Progress", AssigneeName: "Priya Nair"},
		{ID: "3", Status: "Closed", AssigneeName: "Priya Nair"},
		{ID: "4", Status: "Closed", IsEscalated: true, AssigneeName: "Priya Nair"},
		{ID: "5", Status: "Open"},
	}

	pending := svc.PendingByAgent(tickets, nil)

	// Closed tickets stay out of pending even while flagged escalated.
	assert.Equal(t, 2, pending["Priya Nair"])
	assert.Equal(t, 1, pending[domain.UnassignedAgent])
}
