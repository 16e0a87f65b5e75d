package domain

// Granularity selects one of the two age-bucket scales used by the aging
// views. Both sets of boundaries live here, and only here, so no two
// aggregators can drift apart.
type Granularity string

const (
	// GranularityFine buckets ages as 1-7 / 8-15 / 15+ days.
	GranularityFine Granularity = "fine"
	// GranularityCoarse buckets ages as 1-15 / 16-30 / 30+ days.
	GranularityCoarse Granularity = "coarse"
)

// AgeBucket is a display label for an age range.
type AgeBucket string

const (
	BucketFine1To7     AgeBucket = "1-7"
	BucketFine8To15    AgeBucket = "8-15"
	BucketFine15Plus   AgeBucket = "15+"
	BucketCoarse1To15  AgeBucket = "1-15"
	BucketCoarse16To30 AgeBucket = "16-30"
	BucketCoarse30Plus AgeBucket = "30+"
)

// FineBuckets and CoarseBuckets list each scale's buckets in display order.
var (
	FineBuckets   = []AgeBucket{BucketFine1To7, BucketFine8To15, BucketFine15Plus}
	CoarseBuckets = []AgeBucket{BucketCoarse1To15, BucketCoarse16To30, BucketCoarse30Plus}
)

// BucketForAge classifies an age in days; ok is false for negative ages.
//
// Coarse boundaries are 0<=age<16, 16<=age<31 and age>30. An age of exactly
// 30 days lands in the 16-30 bucket because the second clause is checked
// first; the clauses together cover every non-negative age.
func BucketForAge(ageDays int, g Granularity) (AgeBucket, bool) {
	if ageDays < 0 {
		return "", false
	}
	switch g {
	case GranularityFine:
		switch {
		case ageDays < 8:
			return BucketFine1To7, true
		case ageDays < 16:
			return BucketFine8To15, true
		default:
			return BucketFine15Plus, true
		}
	case GranularityCoarse:
		switch {
		case ageDays < 16:
			return BucketCoarse1To15, true
		case ageDays < 31:
			return BucketCoarse16To30, true
		default:
			return BucketCoarse30Plus, true
		}
	}
	return "", false
}

// BucketKey scopes one aging cell: who owns it (an agent name or a
// department name), the department context when the owner is an agent, the
// canonical status, and the bucket on a given scale.
type BucketKey struct {
	Owner       string
	Department  string
	Status      Status
	Granularity Granularity
	Bucket      AgeBucket
}

// AgeBucketEntry is one aging cell. Count always equals
// len(TicketNumbers); the pair only moves together through AgeTable.Add.
type AgeBucketEntry struct {
	Count         int      `json:"count"`
	TicketNumbers []string `json:"ticketNumbers"`
}

// AgeTable accumulates aging cells keyed by BucketKey. The zero value is not
// usable; construct with NewAgeTable.
type AgeTable struct {
	entries map[BucketKey]*AgeBucketEntry
}

func NewAgeTable() *AgeTable {
	return &AgeTable{entries: make(map[BucketKey]*AgeBucketEntry)}
}

// Add appends a ticket number to the cell for key, incrementing the count in
// the same step. The count is never tracked independently of the list.
func (t *AgeTable) Add(key BucketKey, ticketNumber string) {
	entry, ok := t.entries[key]
	if !ok {
		entry = &AgeBucketEntry{}
		t.entries[key] = entry
	}
	entry.TicketNumbers = append(entry.TicketNumbers, ticketNumber)
	entry.Count = len(entry.TicketNumbers)
}

// Entry returns the cell for key, or an empty cell when nothing accumulated.
func (t *AgeTable) Entry(key BucketKey) AgeBucketEntry {
	if entry, ok := t.entries[key]; ok {
		return *entry
	}
	return AgeBucketEntry{TicketNumbers: []string{}}
}

// Len returns the number of non-empty cells.
func (t *AgeTable) Len() int {
	return len(t.entries)
}

// Each calls fn for every non-empty cell.
func (t *AgeTable) Each(fn func(key BucketKey, entry AgeBucketEntry)) {
	for key, entry := range t.entries {
		fn(key, *entry)
	}
}

// AgingRow is one display row of an aging view: a single owner (agent or
// department) and status, with one cell per bucket of the chosen scale plus
// the deduplicated total across buckets.
type AgingRow struct {
	Owner      string
	Department string
	Status     Status
	Buckets    map[AgeBucket]AgeBucketEntry
	Total      AgeBucketEntry
}

// MergeEntries unions cells into one, deduplicating ticket numbers so that a
// ticket counted under several departments is never double-counted in an
// agent's cross-department total.
func MergeEntries(entries ...AgeBucketEntry) AgeBucketEntry {
	seen := make(map[string]struct{})
	merged := AgeBucketEntry{TicketNumbers: []string{}}
	for _, entry := range entries {
		for _, num := range entry.TicketNumbers {
			if _, dup := seen[num]; dup {
				continue
			}
			seen[num] = struct{}{}
			merged.TicketNumbers = append(merged.TicketNumbers, num)
		}
	}
	merged.Count = len(merged.TicketNumbers)
	return merged
}
