package services

import (
	"strings"
	"time"

	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
	"github.com/Asha9112/ticket-dashboard/internal/core/views"
)

// AgingService classifies reconciled tickets into age buckets and rolls the
// cells up into per-agent and per-department display rows.
type AgingService struct {
	reconciler *ReconcileService
}

func NewAgingService(reconciler *ReconcileService) *AgingService {
	return &AgingService{reconciler: reconciler}
}

// AgeInDays returns the whole days elapsed since created. ok is false when
// the creation time is unknown; such tickets contribute to no bucket.
func (s *AgingService) AgeInDays(created *time.Time, now time.Time) (int, bool) {
	if created == nil {
		return 0, false
	}
	age := int(now.Sub(*created).Hours() / 24)
	return age, true
}

// AgeTables holds the two accumulation scopes built in one pass.
type AgeTables struct {
	ByAgent      *domain.AgeTable
	ByDepartment *domain.AgeTable
}

// BuildAgeTables accumulates every ticket with a known age into both bucket
// scales, scoped per agent (with department context) and per department.
// Count and ticket-number list move together through AgeTable.Add.
func (s *AgingService) BuildAgeTables(tickets []domain.Ticket, now time.Time, nameMap map[string]string) *AgeTables {
	tables := &AgeTables{
		ByAgent:      domain.NewAgeTable(),
		ByDepartment: domain.NewAgeTable(),
	}

	for _, ticket := range tickets {
		age, ok := s.AgeInDays(ticket.CreatedTime, now)
		if !ok {
			continue
		}

		status := ticket.EffectiveStatus()
		agent := s.reconciler.ResolveAgentName(ticket, nameMap)
		dept := s.reconciler.ResolveDepartmentName(ticket)

		for _, granularity := range []domain.Granularity{domain.GranularityFine, domain.GranularityCoarse} {
			bucket, ok := domain.BucketForAge(age, granularity)
			if !ok {
				continue
			}

			tables.ByAgent.Add(domain.BucketKey{
				Owner:       agent,
				Department:  dept,
				Status:      status,
				Granularity: granularity,
				Bucket:      bucket,
			}, ticket.TicketNumber)

			tables.ByDepartment.Add(domain.BucketKey{
				Owner:       dept,
				Status:      status,
				Granularity: granularity,
				Bucket:      bucket,
			}, ticket.TicketNumber)
		}
	}

	return tables
}

type agingRowKey struct {
	owner  string
	status domain.Status
}

// AgentRows rolls the per-agent table up into one row per (agent, status)
// for the chosen scale. With no department filter an agent's cells are the
// union across every department they have tickets in; a ticket present
// under two departments is still counted once. With a filter only that
// department's cells contribute.
func (s *AgingService) AgentRows(tables *AgeTables, granularity domain.Granularity, department string) []domain.AgingRow {
	grouped := make(map[agingRowKey]map[domain.AgeBucket][]domain.AgeBucketEntry)
	firstDept := make(map[agingRowKey]string)

	tables.ByAgent.Each(func(key domain.BucketKey, entry domain.AgeBucketEntry) {
		if key.Granularity != granularity {
			return
		}
		if department != "" && !strings.EqualFold(key.Department, department) {
			return
		}

		rowKey := agingRowKey{owner: key.Owner, status: key.Status}
		if grouped[rowKey] == nil {
			grouped[rowKey] = make(map[domain.AgeBucket][]domain.AgeBucketEntry)
		}
		grouped[rowKey][key.Bucket] = append(grouped[rowKey][key.Bucket], entry)
		if _, ok := firstDept[rowKey]; !ok {
			firstDept[rowKey] = key.Department
		}
	})

	rows := make([]domain.AgingRow, 0, len(grouped))
	for rowKey, buckets := range grouped {
		row := domain.AgingRow{
			Owner:      rowKey.owner,
			Department: department,
			Status:     rowKey.status,
			Buckets:    make(map[domain.AgeBucket]domain.AgeBucketEntry, len(buckets)),
		}
		if department == "" {
			row.Department = firstDept[rowKey]
		}

		all := make([]domain.AgeBucketEntry, 0, len(buckets))
		for bucket, entries := range buckets {
			merged := domain.MergeEntries(entries...)
			row.Buckets[bucket] = merged
			all = append(all, merged)
		}
		row.Total = domain.MergeEntries(all...)
		rows = append(rows, row)
	}

	sortAgingRows(rows)
	return rows
}

// DepartmentRows rolls the per-department table up into one row per
// (department, status) for the chosen scale.
func (s *AgingService) DepartmentRows(tables *AgeTables, granularity domain.Granularity) []domain.AgingRow {
	grouped := make(map[agingRowKey]map[domain.AgeBucket][]domain.AgeBucketEntry)

	tables.ByDepartment.Each(func(key domain.BucketKey, entry domain.AgeBucketEntry) {
		if key.Granularity != granularity {
			return
		}

		rowKey := agingRowKey{owner: key.Owner, status: key.Status}
		if grouped[rowKey] == nil {
			grouped[rowKey] = make(map[domain.AgeBucket][]domain.AgeBucketEntry)
		}
		grouped[rowKey][key.Bucket] = append(grouped[rowKey][key.Bucket], entry)
	})

	rows := make([]domain.AgingRow, 0, len(grouped))
	for rowKey, buckets := range grouped {
		row := domain.AgingRow{
			Owner:      rowKey.owner,
			Department: rowKey.owner,
			Status:     rowKey.status,
			Buckets:    make(map[domain.AgeBucket]domain.AgeBucketEntry, len(buckets)),
		}

		all := make([]domain.AgeBucketEntry, 0, len(buckets))
		for bucket, entries := range buckets {
			merged := domain.MergeEntries(entries...)
			row.Buckets[bucket] = merged
			all = append(all, merged)
		}
		row.Total = domain.MergeEntries(all...)
		rows = append(rows, row)
	}

	sortAgingRows(rows)
	return rows
}

func sortAgingRows(rows []domain.AgingRow) {
	views.SortStable(rows, func(a, b domain.AgingRow) bool {
		if cmp := views.CompareNames(a.Owner, b.Owner); cmp != 0 {
			return cmp < 0
		}
		return a.Status < b.Status
	})
}
