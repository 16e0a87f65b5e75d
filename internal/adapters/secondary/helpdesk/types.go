package helpdesk

import (
	"time"

	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
)

// Wire DTOs for the upstream helpdesk API. Decoding is deliberately
// lenient: missing or malformed optional fields become absent values, never
// errors, because the upstream populates them inconsistently.

type ticketDTO struct {
	ID           string       `json:"id"`
	TicketNumber string       `json:"ticketNumber"`
	Status       string       `json:"status"`
	CreatedTime  string       `json:"createdTime"`
	ClosedTime   string       `json:"closedTime"`
	AssigneeID   string       `json:"assigneeId"`
	Assignee     *assigneeDTO `json:"assignee"`
	AssigneeName string       `json:"assigneeName"`
	DepartmentID string       `json:"departmentId"`
	IsEscalated  bool         `json:"isEscalated"`
	Escalated    bool         `json:"escalated"`
}

type assigneeDTO struct {
	DisplayName string `json:"displayName"`
	FullName    string `json:"fullName"`
	Name        string `json:"name"`
	Email       string `json:"email"`
}

type ticketListDTO struct {
	Data []ticketDTO `json:"data"`
}

type metricsDTO struct {
	TicketNumber      string          `json:"ticketNumber"`
	FirstResponseTime string          `json:"firstResponseTime"`
	ResolutionTime    string          `json:"resolutionTime"`
	ThreadCount       int             `json:"threadCount"`
	ResponseCount     int             `json:"responseCount"`
	OutgoingCount     int             `json:"outgoingCount"`
	ReopenCount       int             `json:"reopenCount"`
	ReassignCount     int             `json:"reassignCount"`
	StagingData       []stagingDTO    `json:"stagingData"`
	AgentsHandled     []agentTimeDTO  `json:"agentsHandled"`
}

type stagingDTO struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

type agentTimeDTO struct {
	AgentName string `json:"agentName"`
	Duration  string `json:"duration"`
}

type agentDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type agentListDTO struct {
	Data []agentDTO `json:"data"`
}

// timeLayouts are tried in order; the upstream has used all of these.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTime returns nil for empty or unparsable input so downstream logic
// treats the timestamp as unknown.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func (d ticketDTO) toDomain(provenance domain.Provenance) domain.Ticket {
	ticket := domain.Ticket{
		ID:           d.ID,
		TicketNumber: d.TicketNumber,
		Status:       d.Status,
		CreatedTime:  parseTime(d.CreatedTime),
		ClosedTime:   parseTime(d.ClosedTime),
		AssigneeID:   d.AssigneeID,
		AssigneeName: d.AssigneeName,
		DepartmentID: d.DepartmentID,
		IsEscalated:  d.IsEscalated || d.Escalated,
		Provenance:   provenance,
	}
	if d.Assignee != nil {
		ticket.Assignee = &domain.Assignee{
			DisplayName: d.Assignee.DisplayName,
			FullName:    d.Assignee.FullName,
			Name:        d.Assignee.Name,
			Email:       d.Assignee.Email,
		}
	}
	return ticket
}

func (d metricsDTO) toDomain() domain.TicketMetrics {
	metrics := domain.TicketMetrics{
		TicketNumber:      d.TicketNumber,
		FirstResponseTime: d.FirstResponseTime,
		ResolutionTime:    d.ResolutionTime,
		ThreadCount:       d.ThreadCount,
		ResponseCount:     d.ResponseCount,
		OutgoingCount:     d.OutgoingCount,
		ReopenCount:       d.ReopenCount,
		ReassignCount:     d.ReassignCount,
	}
	for _, s := range d.StagingData {
		metrics.StagingData = append(metrics.StagingData, domain.StagingEntry{
			Status: s.Status,
			At:     parseTime(s.Time),
		})
	}
	for _, a := range d.AgentsHandled {
		metrics.AgentsHandled = append(metrics.AgentsHandled, domain.AgentHandling{
			AgentName: a.AgentName,
			Duration:  a.Duration,
		})
	}
	return metrics
}
