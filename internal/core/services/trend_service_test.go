package services_test

import (
	"testing"

	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
	"github.com/Asha9112/ticket-dashboard/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendService_BuildYearlyTrend(t *testing.T) {
	svc := services.NewTrendService()

	t.Run("creation and closure years increment independently", func(t *testing.T) {
		tickets := []domain.Ticket{
			{ID: "1", Status: "closed", CreatedTime: ts("2023-11-20"), ClosedTime: ts("2024-01-05")},
		}

		trend := svc.BuildYearlyTrend(tickets)

		assert.Equal(t, domain.YearlyBucket{Created: 1, Resolved: 0}, trend[2023])
		assert.Equal(t, domain.YearlyBucket{Created: 0, Resolved: 1}, trend[2024])
	})

	t.Run("unresolved status does not count toward resolved", func(t *testing.T) {
		tickets := []domain.Ticket{
			{ID: "1", Status: "open", CreatedTime: ts("2024-02-01"), ClosedTime: ts("2024-03-01")},
		}

		trend := svc.BuildYearlyTrend(tickets)

		assert.Equal(t, domain.YearlyBucket{Created: 1, Resolved: 0}, trend[2024])
	})

	t.Run("missing closure time excludes the resolved increment", func(t *testing.T) {
		tickets := []domain.Ticket{
			{ID: "1", Status: "closed", CreatedTime: ts("2024-02-01")},
		}

		trend := svc.BuildYearlyTrend(tickets)

		assert.Equal(t, domain.YearlyBucket{Created: 1, Resolved: 0}, trend[2024])
	})

	t.Run("escalated closed ticket still counts as resolved", func(t *testing.T) {
		tickets := []domain.Ticket{
			{ID: "1", Status: "closed", IsEscalated: true, CreatedTime: ts("2024-02-01"), ClosedTime: ts("2024-03-01")},
		}

		trend := svc.BuildYearlyTrend(tickets)

		assert.Equal(t, domain.YearlyBucket{Created: 1, Resolved: 1}, trend[2024])
	})

	t.Run("missing creation time excludes the created increment", func(t *testing.T) {
		tickets := []domain.Ticket{
			{ID: "1", Status: "closed", ClosedTime: ts("2024-02-01")},
		}

		trend := svc.BuildYearlyTrend(tickets)

		assert.Equal(t, domain.YearlyBucket{Created: 0, Resolved: 1}, trend[2024])
	})

	t.Run("empty input yields empty map", func(t *testing.T) {
		assert.Empty(t, svc.BuildYearlyTrend(nil))
	})
}

func TestTrendService_TrendSeries(t *testing.T) {
	svc := services.NewTrendService()
	trend := map[int]domain.YearlyBucket{
		2021: {Created: 5, Resolved: 4},
		2024: {Created: 9, Resolved: 7},
	}

	t.Run("sparse series covers only active years ascending", func(t *testing.T) {
		series := svc.TrendSeries(trend, 0, 0)

		require.Len(t, series, 2)
		assert.Equal(t, domain.YearPoint{Year: 2021, Created: 5, Resolved: 4}, series[0])
		assert.Equal(t, domain.YearPoint{Year: 2024, Created: 9, Resolved: 7}, series[1])
	})

	t.Run("explicit range zero-fills inactive years", func(t *testing.T) {
		series := svc.TrendSeries(trend, 2020, 2025)

		require.Len(t, series, 6)
		assert.Equal(t, domain.YearPoint{Year: 2020}, series[0])
		assert.Equal(t, domain.YearPoint{Year: 2022}, series[2])
		assert.Equal(t, domain.YearPoint{Year: 2024, Created: 9, Resolved: 7}, series[4])
	})
}
