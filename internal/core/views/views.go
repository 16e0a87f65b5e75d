// Package views provides the generic filter, sort and paginate transform
// applied to every rollup before it is handed to the presentation layer.
package views

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Page is one fixed-size slice of a result set together with the metadata
// the frontend needs to render pagination controls.
type Page[T any] struct {
	Rows       []T `json:"rows"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	TotalRows  int `json:"totalRows"`
}

// Filter applies a predicate, returning the rows for which it holds. A nil
// predicate passes everything.
func Filter[T any](rows []T, pred func(T) bool) []T {
	if pred == nil {
		return rows
	}
	filtered := make([]T, 0, len(rows))
	for _, row := range rows {
		if pred(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// All combines predicates as a conjunction, skipping nil clauses. With no
// effective clauses the result passes everything, matching the rule that an
// unset filter is no constraint.
func All[T any](preds ...func(T) bool) func(T) bool {
	return func(row T) bool {
		for _, pred := range preds {
			if pred != nil && !pred(row) {
				return false
			}
		}
		return true
	}
}

// SortStable sorts rows in place with a stable sort so equal keys keep their
// prior relative order across multi-key passes.
func SortStable[T any](rows []T, less func(a, b T) bool) {
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
}

// Paginate slices rows into the requested 1-based page. Pages out of range
// clamp to the nearest valid page rather than erroring or returning empty,
// so Prev/Next controls can always recover. An empty input yields one empty
// page.
func Paginate[T any](rows []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (len(rows) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}

	return Page[T]{
		Rows:       rows[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalRows:  len(rows),
	}
}

// nameCollator compares agent names the way they are displayed. Collators
// are not safe for concurrent use, so each comparison helper takes its own.
func nameCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

// CompareNames is the locale-aware, case-insensitive comparison used for
// every agent-name sort key.
func CompareNames(a, b string) int {
	return nameCollator().CompareString(a, b)
}

// MatchesQuery implements the free-text search policy. A purely numeric
// query means "find this exact ticket" and matches the ticket number by
// equality; any other query matches when some whitespace-delimited token of
// the agent name starts with it, case-insensitively.
func MatchesQuery(query, ticketNumber, agentName string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}

	if isNumeric(query) {
		return ticketNumber == query
	}

	lowered := strings.ToLower(query)
	for _, token := range strings.Fields(agentName) {
		if strings.HasPrefix(strings.ToLower(token), lowered) {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// InDateRange reports whether at falls inside the inclusive [from, to]
// range. A nil bound is no constraint; a nil timestamp only passes when the
// range is unbounded, since a ticket with an unknown date cannot be shown to
// satisfy a date filter.
func InDateRange(at, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if at == nil {
		return false
	}
	if from != nil && at.Before(*from) {
		return false
	}
	if to != nil && at.After(*to) {
		return false
	}
	return true
}

// ParseDateRange converts inclusive ISO date strings to time bounds: the
// start defaults to midnight and the end to the last instant of its day.
// Empty or malformed inputs yield nil bounds (no constraint).
func ParseDateRange(fromStr, toStr string) (from, to *time.Time) {
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(fromStr)); err == nil {
		from = &t
	}
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(toStr)); err == nil {
		endOfDay := t.Add(24*time.Hour - time.Nanosecond)
		to = &endOfDay
	}
	return from, to
}

// ContainsFold reports set membership ignoring case, with an empty set
// meaning no constraint.
func ContainsFold(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	for _, item := range set {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
