package services_test

import (
	"testing"
	"time"

	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
	"github.com/Asha9112/ticket-dashboard/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgingService_AgeInDays(t *testing.T) {
	svc := services.NewAgingService(services.NewReconcileService(testDepartments()))
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("known creation time", func(t *testing.T) {
		created := now.AddDate(0, 0, -10)
		age, ok := svc.AgeInDays(&created, now)
		require.True(t, ok)
		assert.Equal(t, 10, age)
	})

	t.Run("nil creation time is unknown", func(t *testing.T) {
		_, ok := svc.AgeInDays(nil, now)
		assert.False(t, ok)
	})
}

func TestAgingService_BuildAgeTables(t *testing.T) {
	reconciler := services.NewReconcileService(testDepartments())
	svc := services.NewAgingService(reconciler)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	created := func(daysAgo int) *time.Time {
		at := now.AddDate(0, 0, -daysAgo)
		return &at
	}

	tickets := []domain.Ticket{
		{ID: "1", TicketNumber: "101", Status: "Open", AssigneeName: "Priya Nair", DepartmentID: "d1", CreatedTime: created(3)},
		{ID: "2", TicketNumber: "102", Status: "Open", AssigneeName: "Priya Nair", DepartmentID: "d1", CreatedTime: created(10)},
		{ID: "3", TicketNumber: "103", Status: "Open", AssigneeName: "Priya Nair", DepartmentID: "d2", CreatedTime: created(3)},
		{ID: "4", TicketNumber: "104", Status: "On Hold", AssigneeName: "Omar Diaz", DepartmentID: "d1", CreatedTime: created(40)},
		{ID: "5", TicketNumber: "105", Status: "Open", AssigneeName: "Priya Nair", DepartmentID: "d1", CreatedTime: nil},
	}

	tables := svc.BuildAgeTables(tickets, now, nil)

	t.Run("fine buckets scoped by agent and department", func(t *testing.T) {
		entry := tables.ByAgent.Entry(domain.BucketKey{
			Owner:       "Priya Nair",
			Department:  "Billing",
			Status:      domain.StatusOpen,
			Granularity: domain.GranularityFine,
			Bucket:      domain.BucketFine1To7,
		})
		assert.Equal(t, 1, entry.Count)
		assert.Equal(t, []string{"101"}, entry.TicketNumbers)
	})

	t.Run("ticket with unknown creation time contributes to no bucket", func(t *testing.T) {
		found := false
		tables.ByAgent.Each(func(_ domain.BucketKey, entry domain.AgeBucketEntry) {
			for _, num := range entry.TicketNumbers {
				if num == "105" {
					found = true
				}
			}
		})
		assert.False(t, found)
	})

	t.Run("coarse bucket for old ticket", func(t *testing.T) {
		entry := tables.ByDepartment.Entry(domain.BucketKey{
			Owner:       "Billing",
			Status:      domain.StatusHold,
			Granularity: domain.GranularityCoarse,
			Bucket:      domain.BucketCoarse30Plus,
		})
		assert.Equal(t, []string{"104"}, entry.TicketNumbers)
	})

	t.Run("count always equals list length", func(t *testing.T) {
		for _, table := range []*domain.AgeTable{tables.ByAgent, tables.ByDepartment} {
			table.Each(func(_ domain.BucketKey, entry domain.AgeBucketEntry) {
				require.Equal(t, len(entry.TicketNumbers), entry.Count)
			})
		}
	})
}

func TestAgingService_AgentRows(t *testing.T) {
	reconciler := services.NewReconcileService(testDepartments())
	svc := services.NewAgingService(reconciler)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	created := func(daysAgo int) *time.Time {
		at := now.AddDate(0, 0, -daysAgo)
		return &at
	}

	// Priya has open tickets in two departments, same fine bucket.
	tickets := []domain.Ticket{
		{ID: "1", TicketNumber: "101", Status: "Open", AssigneeName: "Priya Nair", DepartmentID: "d1", CreatedTime: created(2)},
		{ID: "2", TicketNumber: "102", Status: "Open", AssigneeName: "Priya Nair", DepartmentID: "d2", CreatedTime: created(4)},
		{ID: "3", TicketNumber: "103", Status: "Open", AssigneeName: "Omar Diaz", DepartmentID: "d1", CreatedTime: created(20)},
	}

	tables := svc.BuildAgeTables(tickets, now, nil)

	t.Run("no department filter unions across departments", func(t *testing.T) {
		rows := svc.AgentRows(tables, domain.GranularityFine, "")

		require.Len(t, rows, 2)

		// Sorted by owner name: Omar before Priya.
		assert.Equal(t, "Omar Diaz", rows[0].Owner)
		assert.Equal(t, "Priya Nair", rows[1].Owner)

		priya := rows[1]
		assert.Equal(t, 2, priya.Total.Count)
		assert.ElementsMatch(t, []string{"101", "102"}, priya.Total.TicketNumbers)
		assert.Equal(t, 2, priya.Buckets[domain.BucketFine1To7].Count)
	})

	t.Run("department filter restricts to that department", func(t *testing.T) {
		rows := svc.AgentRows(tables, domain.GranularityFine, "Billing")

		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.Equal(t, "Billing", row.Department)
		}

		priya := rows[1]
		assert.Equal(t, []string{"101"}, priya.Total.TicketNumbers)
	})
}

func TestAgingService_DepartmentRows(t *testing.T) {
	reconciler := services.NewReconcileService(testDepartments())
	svc := services.NewAgingService(reconciler)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	created := now.AddDate(0, 0, -5)
	tickets := []domain.Ticket{
		{ID: "1", TicketNumber: "101", Status: "Open", DepartmentID: "d1", CreatedTime: &created},
		{ID: "2", TicketNumber: "102", Status: "Open", DepartmentID: "d1", CreatedTime: &created},
	}

	tables := svc.BuildAgeTables(tickets, now, nil)
	rows := svc.DepartmentRows(tables, domain.GranularityCoarse)

	require.Len(t, rows, 1)
	assert.Equal(t, "Billing", rows[0].Owner)
	assert.Equal(t, domain.StatusOpen, rows[0].Status)
	assert.Equal(t, 2, rows[0].Buckets[domain.BucketCoarse1To15].Count)
	assert.Equal(t, 2, rows[0].Total.Count)
}
