package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
	apperrors "github.com/Asha9112/ticket-dashboard/internal/core/errors"
	"github.com/Asha9112/ticket-dashboard/internal/core/ports"
	"github.com/Asha9112/ticket-dashboard/internal/core/views"
)

// DashboardService orchestrates the aggregation pipeline: fetch both ticket
// sources through the provider ports, reconcile, aggregate, then filter,
// sort and paginate for the requested view. Each call works on its own
// freshly fetched collections and produces independent output, so
// concurrent requests cannot cross-talk.
type DashboardService struct {
	tickets    ports.TicketProvider
	metrics    ports.MetricsProvider
	agents     ports.AgentDirectory
	reconciler *ReconcileService
	aging      *AgingService
	perf       *PerformanceService
	trend      *TrendService
	logger     *slog.Logger
	now        func() time.Time
}

var _ ports.DashboardService = (*DashboardService)(nil)

// NewDashboardService wires the pipeline. The now function exists so tests
// can pin the clock the aging buckets are computed against.
func NewDashboardService(
	tickets ports.TicketProvider,
	metrics ports.MetricsProvider,
	agents ports.AgentDirectory,
	reconciler *ReconcileService,
	logger *slog.Logger,
) *DashboardService {
	return &DashboardService{
		tickets:    tickets,
		metrics:    metrics,
		agents:     agents,
		reconciler: reconciler,
		aging:      NewAgingService(reconciler),
		perf:       NewPerformanceService(reconciler),
		trend:      NewTrendService(),
		logger:     logger.With("service", "dashboard"),
		now:        time.Now,
	}
}

// WithClock replaces the time source. Test seam.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// fetchReconciled pulls both ticket sources and the agent directory, then
// reconciles. Any fetch failure aborts the whole aggregation: the core
// never runs against a known-incomplete input set.
func (s *DashboardService) fetchReconciled(ctx context.Context) ([]domain.Ticket, map[string]string, error) {
	active, err := s.tickets.ActiveTickets(ctx)
	if err != nil {
		return nil, nil, apperrors.NewUnavailableError(err)
	}

	archived, err := s.tickets.ArchivedTickets(ctx)
	if err != nil {
		return nil, nil, apperrors.NewUnavailableError(err)
	}

	nameMap, err := s.agents.AgentNames(ctx)
	if err != nil {
		return nil, nil, apperrors.NewUnavailableError(err)
	}

	reconciled := s.reconciler.Reconcile(active, archived)
	s.logger.Debug("tickets reconciled",
		"active", len(active),
		"archived", len(archived),
		"merged", len(reconciled),
	)
	return reconciled, nameMap, nil
}

// filterTicketsByDate restricts tickets to the requested creation-date
// range before aggregation; unset bounds are no constraint.
func filterTicketsByDate(tickets []domain.Ticket, from, to *time.Time) []domain.Ticket {
	if from == nil && to == nil {
		return tickets
	}
	return views.Filter(tickets, func(t domain.Ticket) bool {
		return views.InDateRange(t.CreatedTime, from, to)
	})
}

// AgentPerformance builds the per-agent performance table.
func (s *DashboardService) AgentPerformance(ctx context.Context, params ports.PerformanceParams) (*views.Page[domain.AgentRollup], error) {
	tickets, nameMap, err := s.fetchReconciled(ctx)
	if err != nil {
		return nil, err
	}
	tickets = filterTicketsByDate(tickets, params.Filter.DateFrom, params.Filter.DateTo)

	numbers := make([]string, 0, len(tickets))
	for _, t := range tickets {
		numbers = append(numbers, t.TicketNumber)
	}
	metrics, err := s.metrics.TicketMetrics(ctx, numbers)
	if err != nil {
		return nil, apperrors.NewUnavailableError(err)
	}

	pending := s.perf.PendingByAgent(tickets, nameMap)
	rollups := s.perf.BuildAgentRollups(tickets, metrics, pending, nameMap)

	rollups = views.Filter(rollups, views.All(
		func(r domain.AgentRollup) bool {
			return views.ContainsFold(params.Filter.AgentNames, r.AgentName)
		},
		func(r domain.AgentRollup) bool {
			if params.Filter.Department == "" {
				return true
			}
			for _, dept := range r.Departments {
				if strings.EqualFold(dept, params.Filter.Department) {
					return true
				}
			}
			return false
		},
		func(r domain.AgentRollup) bool {
			return views.MatchesQuery(params.Filter.Query, "", r.AgentName)
		},
	))

	if metric := leaderboardMetric(params.Leaderboard); metric != nil {
		views.SortStable(rollups, func(a, b domain.AgentRollup) bool {
			if ma, mb := metric(a), metric(b); ma != mb {
				return ma > mb
			}
			return views.CompareNames(a.AgentName, b.AgentName) < 0
		})
	}
	// Rollups arrive name-sorted from the aggregator; nothing to do for
	// the default ordering.

	page := views.Paginate(rollups, params.Page.Page, params.Page.PageSize)
	return &page, nil
}

// leaderboardMetric maps a leaderboard name onto its ranking metric, nil
// for the default name-ordered view.
func leaderboardMetric(name string) func(domain.AgentRollup) int {
	switch name {
	case "resolved":
		return func(r domain.AgentRollup) int { return r.TicketsResolved }
	case "pending":
		return func(r domain.AgentRollup) int { return r.PendingCount }
	case "created":
		return func(r domain.AgentRollup) int { return r.TotalHandled() }
	}
	return nil
}

// AgingByAgent builds the per-agent aging table.
func (s *DashboardService) AgingByAgent(ctx context.Context, params ports.AgingParams) (*views.Page[domain.AgingRow], error) {
	rows, err := s.agingRows(ctx, params, func(tables *AgeTables, granularity domain.Granularity) []domain.AgingRow {
		return s.aging.AgentRows(tables, granularity, params.Filter.Department)
	})
	if err != nil {
		return nil, err
	}

	rows = views.Filter(rows, views.All(
		func(r domain.AgingRow) bool {
			return views.ContainsFold(params.Filter.AgentNames, r.Owner)
		},
		statusClause(params.Filter.Statuses),
		queryClause(params.Filter.Query),
	))

	page := views.Paginate(rows, params.Page.Page, params.Page.PageSize)
	return &page, nil
}

// AgingByDepartment builds the per-department aging table.
func (s *DashboardService) AgingByDepartment(ctx context.Context, params ports.AgingParams) (*views.Page[domain.AgingRow], error) {
	rows, err := s.agingRows(ctx, params, func(tables *AgeTables, granularity domain.Granularity) []domain.AgingRow {
		return s.aging.DepartmentRows(tables, granularity)
	})
	if err != nil {
		return nil, err
	}

	rows = views.Filter(rows, views.All(
		func(r domain.AgingRow) bool {
			return params.Filter.Department == "" || strings.EqualFold(r.Owner, params.Filter.Department)
		},
		statusClause(params.Filter.Statuses),
		queryClause(params.Filter.Query),
	))

	page := views.Paginate(rows, params.Page.Page, params.Page.PageSize)
	return &page, nil
}

func (s *DashboardService) agingRows(
	ctx context.Context,
	params ports.AgingParams,
	build func(*AgeTables, domain.Granularity) []domain.AgingRow,
) ([]domain.AgingRow, error) {
	tickets, nameMap, err := s.fetchReconciled(ctx)
	if err != nil {
		return nil, err
	}
	tickets = filterTicketsByDate(tickets, params.Filter.DateFrom, params.Filter.DateTo)

	granularity := params.Granularity
	if granularity == "" {
		granularity = domain.GranularityFine
	}

	tables := s.aging.BuildAgeTables(tickets, s.now(), nameMap)
	return build(tables, granularity), nil
}

func statusClause(statuses []domain.Status) func(domain.AgingRow) bool {
	if len(statuses) == 0 {
		return nil
	}
	set := make(map[domain.Status]bool, len(statuses))
	for _, status := range statuses {
		set[status] = true
	}
	return func(r domain.AgingRow) bool { return set[r.Status] }
}

// queryClause implements free-text search over aging rows: a numeric query
// matches a row containing exactly that ticket number, a text query matches
// the owner name by word prefix.
func queryClause(query string) func(domain.AgingRow) bool {
	if query == "" {
		return nil
	}
	return func(r domain.AgingRow) bool {
		for _, number := range r.Total.TicketNumbers {
			if views.MatchesQuery(query, number, r.Owner) {
				return true
			}
		}
		return views.MatchesQuery(query, "", r.Owner)
	}
}

// YearlyTrend builds the created/resolved-per-year series.
func (s *DashboardService) YearlyTrend(ctx context.Context, params ports.TrendParams) ([]domain.YearPoint, error) {
	tickets, nameMap, err := s.fetchReconciled(ctx)
	if err != nil {
		return nil, err
	}

	tickets = views.Filter(tickets, views.All(
		func(t domain.Ticket) bool {
			return views.ContainsFold(params.Filter.AgentNames, s.reconciler.ResolveAgentName(t, nameMap))
		},
		func(t domain.Ticket) bool {
			return params.Filter.Department == "" ||
				strings.EqualFold(s.reconciler.ResolveDepartmentName(t), params.Filter.Department)
		},
	))

	trend := s.trend.BuildYearlyTrend(tickets)
	return s.trend.TrendSeries(trend, params.FromYear, params.ToYear), nil
}
