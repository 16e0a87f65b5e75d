package domain_test

import (
	"testing"

	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketForAge(t *testing.T) {
	tests := []struct {
		name        string
		age         int
		granularity domain.Granularity
		want        domain.AgeBucket
		wantOK      bool
	}{
		{"fine day zero", 0, domain.GranularityFine, domain.BucketFine1To7, true},
		{"fine day seven", 7, domain.GranularityFine, domain.BucketFine1To7, true},
		{"fine day eight", 8, domain.GranularityFine, domain.BucketFine8To15, true},
		{"fine day fifteen", 15, domain.GranularityFine, domain.BucketFine8To15, true},
		{"fine day sixteen", 16, domain.GranularityFine, domain.BucketFine15Plus, true},
		{"fine far out", 400, domain.GranularityFine, domain.BucketFine15Plus, true},
		{"coarse day zero", 0, domain.GranularityCoarse, domain.BucketCoarse1To15, true},
		{"coarse day fifteen", 15, domain.GranularityCoarse, domain.BucketCoarse1To15, true},
		{"coarse day sixteen", 16, domain.GranularityCoarse, domain.BucketCoarse16To30, true},
		{"coarse day thirty stays in middle bucket", 30, domain.GranularityCoarse, domain.BucketCoarse16To30, true},
		{"coarse day thirty-one", 31, domain.GranularityCoarse, domain.BucketCoarse30Plus, true},
		{"negative age has no bucket", -1, domain.GranularityFine, domain.AgeBucket(""), false},
		{"unknown granularity", 5, domain.Granularity("hourly"), domain.AgeBucket(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.BucketForAge(tt.age, tt.granularity)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAgeTable_Add(t *testing.T) {
	table := domain.NewAgeTable()
	key := domain.BucketKey{
		Owner:       "Priya N",
		Department:  "Billing",
		Status:      domain.StatusOpen,
		Granularity: domain.GranularityFine,
		Bucket:      domain.BucketFine1To7,
	}

	table.Add(key, "1001")
	table.Add(key, "1002")
	table.Add(key, "1003")

	entry := table.Entry(key)
	assert.Equal(t, 3, entry.Count)
	assert.Equal(t, []string{"1001", "1002", "1003"}, entry.TicketNumbers)

	t.Run("count always equals list length", func(t *testing.T) {
		table.Each(func(_ domain.BucketKey, entry domain.AgeBucketEntry) {
			require.Equal(t, len(entry.TicketNumbers), entry.Count)
		})
	})

	t.Run("missing key yields empty entry", func(t *testing.T) {
		empty := table.Entry(domain.BucketKey{Owner: "nobody"})
		assert.Equal(t, 0, empty.Count)
		assert.Empty(t, empty.TicketNumbers)
	})
}

func TestMergeEntries(t *testing.T) {
	a := domain.AgeBucketEntry{Count: 2, TicketNumbers: []string{"1", "2"}}
	b := domain.AgeBucketEntry{Count: 2, TicketNumbers: []string{"2", "3"}}

	merged := domain.MergeEntries(a, b)

	// Ticket 2 appears in both departments but is one ticket.
	assert.Equal(t, 3, merged.Count)
	assert.Equal(t, []string{"1", "2", "3"}, merged.TicketNumbers)
	assert.Equal(t, len(merged.TicketNumbers), merged.Count)
}
