package services

import (
	"sort"

	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
)

// TrendService buckets reconciled tickets by calendar year.
type TrendService struct{}

func NewTrendService() *TrendService {
	return &TrendService{}
}

// BuildYearlyTrend produces the sparse year series. A ticket's creation
// year and closure year increment independently: created in 2023 and closed
// in 2024 means created[2023]++ and resolved[2024]++, nothing else. The
// resolved increment requires both a resolved-like status and a known
// closure time.
func (s *TrendService) BuildYearlyTrend(tickets []domain.Ticket) map[int]domain.YearlyBucket {
	trend := make(map[int]domain.YearlyBucket)

	for _, ticket := range tickets {
		if ticket.CreatedTime != nil {
			year := ticket.CreatedTime.Year()
			bucket := trend[year]
			bucket.Created++
			trend[year] = bucket
		}

		if ticket.Resolved() && ticket.ClosedTime != nil {
			year := ticket.ClosedTime.Year()
			bucket := trend[year]
			bucket.Resolved++
			trend[year] = bucket
		}
	}

	return trend
}

// TrendSeries orders a trend ascending by year. With fromYear and toYear
// both zero the series stays sparse, covering only years with activity;
// otherwise every year of the requested range appears, zero-filled where
// nothing happened. Consumers that need a fixed display range pass one in
// rather than the range living here.
func (s *TrendService) TrendSeries(trend map[int]domain.YearlyBucket, fromYear, toYear int) []domain.YearPoint {
	var years []int
	if fromYear == 0 && toYear == 0 {
		for year := range trend {
			years = append(years, year)
		}
		sort.Ints(years)
	} else {
		for year := fromYear; year <= toYear; year++ {
			years = append(years, year)
		}
	}

	series := make([]domain.YearPoint, 0, len(years))
	for _, year := range years {
		bucket := trend[year]
		series = append(series, domain.YearPoint{
			Year:     year,
			Created:  bucket.Created,
			Resolved: bucket.Resolved,
		})
	}
	return series
}
