package ports

import (
	"context"
	"time"

	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
	"github.com/Asha9112/ticket-dashboard/internal/core/views"
)

// FilterParams is the conjunction of optional filter clauses shared by every
// dashboard view. A zero-valued clause passes all rows.
type FilterParams struct {
	AgentNames []string
	Department string
	Statuses   []domain.Status
	DateFrom   *time.Time
	DateTo     *time.Time
	Query      string
}

// PageParams selects a fixed-size page. Page is 1-based; out-of-range pages
// clamp to the last valid page.
type PageParams struct {
	Page     int
	PageSize int
}

// PerformanceParams is the input for the agent performance view.
type PerformanceParams struct {
	Filter FilterParams
	Page   PageParams

	// Leaderboard, when set, ranks rows by the named numeric metric
	// descending (resolved, pending, created) instead of by agent name.
	Leaderboard string
}

// AgingParams is the input to the aging views.
type AgingParams struct {
	Filter      FilterParams
	Page        PageParams
	Granularity domain.Granularity
}

// TrendParams is the input to the yearly trend view. FromYear/ToYear are
// optional; when both are zero the series is sparse, covering only years
// with activity.
type TrendParams struct {
	Filter   FilterParams
	FromYear int
	ToYear   int
}

// DashboardService is the primary port exposing the aggregation pipeline.
// Every call recomputes its rollups from freshly provided ticket data;
// results are independent across concurrent calls.
type DashboardService interface {
	AgentPerformance(ctx context.Context, params PerformanceParams) (*views.Page[domain.AgentRollup], error)
	AgingByAgent(ctx context.Context, params AgingParams) (*views.Page[domain.AgingRow], error)
	AgingByDepartment(ctx context.Context, params AgingParams) (*views.Page[domain.AgingRow], error)
	YearlyTrend(ctx context.Context, params TrendParams) ([]domain.YearPoint, error)
}
