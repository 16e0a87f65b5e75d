package domain

// AgentRollup is one derived row of the agent performance table. Rollups are
// recomputed from scratch on every request and never mutated after the
// aggregation pass that builds them.
//
// Average fields are nil when no ticket contributed a measured value; a nil
// average renders as "-" while a measured zero renders as "0:00". A ticket
// missing a duration is excluded from both the sum and the denominator.
type AgentRollup struct {
	AgentName string

	// Departments the agent has tickets in, in first-encountered order.
	// The first entry is the single display value when one is required.
	Departments []string

	TicketsCreated  int
	TicketsResolved int
	PendingCount    int

	OpenCount       int
	HoldCount       int
	InProgressCount int
	EscalatedCount  int

	AvgFirstResponseMinutes *int
	AvgResolutionHours      *float64
	AvgThreadCount          *float64
}

// Department returns the single department display value, or "" when the
// agent has no department at all.
func (r AgentRollup) Department() string {
	if len(r.Departments) == 0 {
		return ""
	}
	return r.Departments[0]
}

// TotalHandled recomputes the created total as resolved + pending. Display
// contexts that derive "created" from the two independent sources must use
// this sum rather than an upstream count, so the column can never contradict
// its own breakdown.
func (r AgentRollup) TotalHandled() int {
	return r.TicketsResolved + r.PendingCount
}

// YearlyBucket is one year's activity in the yearly trend series. Created
// counts key on the creation year, resolved counts on the closure year; a
// ticket created in 2023 and closed in 2024 contributes to two different
// buckets.
type YearlyBucket struct {
	Created  int
	Resolved int
}

// YearPoint is one element of a sorted trend series.
type YearPoint struct {
	Year     int
	Created  int
	Resolved int
}
