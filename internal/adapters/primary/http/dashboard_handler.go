package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Asha9112/ticket-dashboard/internal/adapters/primary/validation"
	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
	"github.com/Asha9112/ticket-dashboard/internal/core/ports"
	"github.com/Asha9112/ticket-dashboard/internal/core/views"
	"github.com/Asha9112/ticket-dashboard/internal/infrastructure/logging"
)

const maxRowsPerPage = 100

// DashboardHandler handles HTTP requests for the reporting dashboard
type DashboardHandler struct {
	dashboard    ports.DashboardService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	dashboard ports.DashboardService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		dashboard:    dashboard,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "dashboard"),
	}
}

// Router sets up a new chi Router for all dashboard routes.
func (h *DashboardHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all dashboard endpoints.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/performance", h.HandleAgentPerformance)
	r.Get("/aging/agents", h.HandleAgingByAgent)
	r.Get("/aging/departments", h.HandleAgingByDepartment)
	r.Get("/trends/yearly", h.HandleYearlyTrend)
}

// --- Response DTOs ---

// AgentPerformanceDTO defines the JSON response for one performance row.
// An absent average renders as "-"; a measured zero renders as a real zero
// value ("0:00", "0.0").
type AgentPerformanceDTO struct {
	AgentName          string `json:"agentName"`
	Department         string `json:"department"`
	TicketsCreated     int    `json:"ticketsCreated"`
	TicketsResolved    int    `json:"ticketsResolved"`
	PendingCount       int    `json:"pendingCount"`
	OpenCount          int    `json:"openCount"`
	HoldCount          int    `json:"holdCount"`
	InProgressCount    int    `json:"inProgressCount"`
	EscalatedCount     int    `json:"escalatedCount"`
	AvgFirstResponse   string `json:"avgFirstResponse"`
	AvgResolutionHours string `json:"avgResolutionHours"`
	AvgThreadCount     string `json:"avgThreadCount"`
}

func toAgentPerformanceDTO(rollup domain.AgentRollup) AgentPerformanceDTO {
	avgFirstResponse := "-"
	if rollup.AvgFirstResponseMinutes != nil {
		avgFirstResponse = domain.FormatMinutes(*rollup.AvgFirstResponseMinutes)
	}

	avgResolution := "-"
	if rollup.AvgResolutionHours != nil {
		avgResolution = fmt.Sprintf("%.1f", *rollup.AvgResolutionHours)
	}

	avgThreads := "-"
	if rollup.AvgThreadCount != nil {
		avgThreads = fmt.Sprintf("%.1f", *rollup.AvgThreadCount)
	}

	return AgentPerformanceDTO{
		AgentName:          rollup.AgentName,
		Department:         rollup.Department(),
		TicketsCreated:     rollup.TicketsCreated,
		TicketsResolved:    rollup.TicketsResolved,
		PendingCount:       rollup.PendingCount,
		OpenCount:          rollup.OpenCount,
		HoldCount:          rollup.HoldCount,
		InProgressCount:    rollup.InProgressCount,
		EscalatedCount:     rollup.EscalatedCount,
		AvgFirstResponse:   avgFirstResponse,
		AvgResolutionHours: avgResolution,
		AvgThreadCount:     avgThreads,
	}
}

// AgingRowDTO defines the JSON response for one aging row.
type AgingRowDTO struct {
	Owner      string                                     `json:"owner"`
	Department string                                     `json:"department,omitempty"`
	Status     string                                     `json:"status"`
	Buckets    map[domain.AgeBucket]domain.AgeBucketEntry `json:"buckets"`
	Total      domain.AgeBucketEntry                      `json:"total"`
}

func toAgingRowDTO(row domain.AgingRow) AgingRowDTO {
	return AgingRowDTO{
		Owner:      row.Owner,
		Department: row.Department,
		Status:     string(row.Status),
		Buckets:    row.Buckets,
		Total:      row.Total,
	}
}

// YearPointDTO defines the JSON response for one year of the trend series.
type YearPointDTO struct {
	Year     int `json:"year"`
	Created  int `json:"created"`
	Resolved int `json:"resolved"`
}

func toYearPointDTOs(series []domain.YearPoint) []YearPointDTO {
	response := make([]YearPointDTO, 0, len(series))
	for _, point := range series {
		response = append(response, YearPointDTO{
			Year:     point.Year,
			Created:  point.Created,
			Resolved: point.Resolved,
		})
	}
	return response
}

// mapPage converts the rows of a view page while keeping its page metadata.
func mapPage[A, B any](page *views.Page[A], fn func(A) B) *views.Page[B] {
	rows := make([]B, 0, len(page.Rows))
	for _, row := range page.Rows {
		rows = append(rows, fn(row))
	}
	return &views.Page[B]{
		Rows:       rows,
		Page:       page.Page,
		TotalPages: page.TotalPages,
		TotalRows:  page.TotalRows,
	}
}

// parseFilter extracts the filter clauses shared by every dashboard view.
func (h *DashboardHandler) parseFilter(r *http.Request, v *validation.Validator) ports.FilterParams {
	filter := ports.FilterParams{
		AgentNames: validation.ParseListQueryParam(r, "agents"),
		Department: validation.ParseStringQueryParam(r, "department"),
		Query:      validation.ParseStringQueryParam(r, "q"),
	}

	for _, raw := range validation.ParseListQueryParam(r, "statuses") {
		filter.Statuses = append(filter.Statuses, domain.NormalizeStatus(raw))
	}

	fromStr := validation.ParseStringQueryParam(r, "dateFrom")
	toStr := validation.ParseStringQueryParam(r, "dateTo")
	from, to := views.ParseDateRange(fromStr, toStr)

	v.Custom("dateFrom", fromStr == "" || from != nil, "Must be a date in YYYY-MM-DD format")
	v.Custom("dateTo", toStr == "" || to != nil, "Must be a date in YYYY-MM-DD format")
	if from != nil && to != nil {
		v.Custom("dateFrom", !from.After(*to), "Must be before dateTo")
	}

	filter.DateFrom = from
	filter.DateTo = to
	return filter
}

// parseAgingParams extracts the shared parameters for both aging views.
func (h *DashboardHandler) parseAgingParams(r *http.Request) (ports.AgingParams, error) {
	v := validation.NewValidator()

	filter := h.parseFilter(r, v)
	pagination := validation.ParsePage(r, maxRowsPerPage)

	granularity := validation.ParseStringQueryParam(r, "granularity")
	v.OneOf("granularity", granularity, []string{string(domain.GranularityFine), string(domain.GranularityCoarse)})

	if v.HasErrors() {
		return ports.AgingParams{}, v.Errors()
	}

	return ports.AgingParams{
		Filter:      filter,
		Page:        ports.PageParams{Page: pagination.Page, PageSize: pagination.PageSize},
		Granularity: domain.Granularity(granularity),
	}, nil
}

// HandleAgentPerformance handles GET /dashboard/performance
func (h *DashboardHandler) HandleAgentPerformance(w http.ResponseWriter, r *http.Request) {
	v := validation.NewValidator()

	filter := h.parseFilter(r, v)
	pagination := validation.ParsePage(r, maxRowsPerPage)

	leaderboard := validation.ParseStringQueryParam(r, "leaderboard")
	v.OneOf("leaderboard", leaderboard, []string{"resolved", "pending", "created"})

	if v.HasErrors() {
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	params := ports.PerformanceParams{
		Filter:      filter,
		Page:        ports.PageParams{Page: pagination.Page, PageSize: pagination.PageSize},
		Leaderboard: leaderboard,
	}

	ctx := logging.WithView(r.Context(), "performance")
	page, err := h.dashboard.AgentPerformance(ctx, params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WritePage(w, mapPage(page, toAgentPerformanceDTO))
}

// HandleAgingByAgent handles GET /dashboard/aging/agents
func (h *DashboardHandler) HandleAgingByAgent(w http.ResponseWriter, r *http.Request) {
	params, err := h.parseAgingParams(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ctx := logging.WithView(r.Context(), "aging-agents")
	page, err := h.dashboard.AgingByAgent(ctx, params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WritePage(w, mapPage(page, toAgingRowDTO))
}

// HandleAgingByDepartment handles GET /dashboard/aging/departments
func (h *DashboardHandler) HandleAgingByDepartment(w http.ResponseWriter, r *http.Request) {
	params, err := h.parseAgingParams(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ctx := logging.WithView(r.Context(), "aging-departments")
	page, err := h.dashboard.AgingByDepartment(ctx, params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WritePage(w, mapPage(page, toAgingRowDTO))
}

// HandleYearlyTrend handles GET /dashboard/trends/yearly
func (h *DashboardHandler) HandleYearlyTrend(w http.ResponseWriter, r *http.Request) {
	v := validation.NewValidator()

	filter := h.parseFilter(r, v)

	fromYear := validation.ParseIntQueryParam(r, "fromYear", 0)
	toYear := validation.ParseIntQueryParam(r, "toYear", 0)

	// Years come as a pair: either both set for a fixed range, or neither
	// for a sparse series covering only years with activity.
	v.Custom("fromYear", (fromYear == 0) == (toYear == 0), "Must be set together with toYear")
	if fromYear != 0 && toYear != 0 {
		v.Custom("fromYear", fromYear <= toYear, "Must not be after toYear")
	}

	if v.HasErrors() {
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	params := ports.TrendParams{
		Filter:   filter,
		FromYear: fromYear,
		ToYear:   toYear,
	}

	ctx := logging.WithView(r.Context(), "trends-yearly")
	series, err := h.dashboard.YearlyTrend(ctx, params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toYearPointDTOs(series))
}
