package mocks

import (
	"context"

	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
	"github.com/Asha9112/ticket-dashboard/internal/core/ports"
	"github.com/Asha9112/ticket-dashboard/internal/core/views"
	"github.com/stretchr/testify/mock"
)

// MockTicketProvider is a mock implementation of ports.TicketProvider
type MockTicketProvider struct {
	mock.Mock
}

func NewMockTicketProvider() *MockTicketProvider {
	return &MockTicketProvider{}
}

func (m *MockTicketProvider) ActiveTickets(ctx context.Context) ([]domain.Ticket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketProvider) ArchivedTickets(ctx context.Context) ([]domain.Ticket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

// MockMetricsProvider is a mock implementation of ports.MetricsProvider
type MockMetricsProvider struct {
	mock.Mock
}

func NewMockMetricsProvider() *MockMetricsProvider {
	return &MockMetricsProvider{}
}

func (m *MockMetricsProvider) TicketMetrics(ctx context.Context, ticketNumbers []string) ([]domain.TicketMetrics, error) {
	args := m.Called(ctx, ticketNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TicketMetrics), args.Error(1)
}

// MockAgentDirectory is a mock implementation of ports.AgentDirectory
type MockAgentDirectory struct {
	mock.Mock
}

func NewMockAgentDirectory() *MockAgentDirectory {
	return &MockAgentDirectory{}
}

func (m *MockAgentDirectory) AgentNames(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// MockDashboardService is a mock implementation of ports.DashboardService
type MockDashboardService struct {
	mock.Mock
}

func NewMockDashboardService() *MockDashboardService {
	return &MockDashboardService{}
}

func (m *MockDashboardService) AgentPerformance(ctx context.Context, params ports.PerformanceParams) (*views.Page[domain.AgentRollup], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*views.Page[domain.AgentRollup]), args.Error(1)
}

func (m *MockDashboardService) AgingByAgent(ctx context.Context, params ports.AgingParams) (*views.Page[domain.AgingRow], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*views.Page[domain.AgingRow]), args.Error(1)
}

func (m *MockDashboardService) AgingByDepartment(ctx context.Context, params ports.AgingParams) (*views.Page[domain.AgingRow], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*views.Page[domain.AgingRow]), args.Error(1)
}

func (m *MockDashboardService) YearlyTrend(ctx context.Context, params ports.TrendParams) ([]domain.YearPoint, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.YearPoint), args.Error(1)
}
