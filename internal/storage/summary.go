package storage

import (
	"time"

	"github.com/enact-eco/enact/internal/carbon"
)

// SummaryForDay aggregates one day's records into a DailySummary. The
// summary is always recomputed from the underlying records, never cached.
func (l *EmissionLog) SummaryForDay(date string) (carbon.DailySummary, error) {
	records, err := l.Day(date)
	if err != nil {
		return carbon.DailySummary{}, err
	}
	return summarize(date, records), nil
}

// RecentSummaries returns summaries for the last N calendar days ending
// today, oldest first for timeline charts. Days without records appear
// with zero totals so charts keep a continuous axis.
func (l *EmissionLog) RecentSummaries(days int) ([]carbon.DailySummary, error) {
	if days <= 0 {
		return nil, nil
	}

	summaries := make([]carbon.DailySummary, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := l.now().AddDate(0, 0, -i).Format(DateLayout)
		s, err := l.SummaryForDay(date)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// HistorySummaries returns summaries for every recorded day, oldest first.
// A positive limit keeps only the most recent limit days.
func (l *EmissionLog) HistorySummaries(limit int) ([]carbon.DailySummary, error) {
	dates, err := l.Dates()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(dates) > limit {
		dates = dates[len(dates)-limit:]
	}

	summaries := make([]carbon.DailySummary, 0, len(dates))
	for _, date := range dates {
		s, err := l.SummaryForDay(date)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// TodayTotal returns today's emission total in grams.
func (l *EmissionLog) TodayTotal() (float64, error) {
	s, err := l.SummaryForDay(l.Today())
	if err != nil {
		return 0, err
	}
	return s.EmissionsGrams, nil
}

// WeeklyTotal returns the emission total over the last 7 days in grams.
func (l *EmissionLog) WeeklyTotal() (float64, error) {
	summaries, err := l.RecentSummaries(7)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, s := range summaries {
		total += s.EmissionsGrams
	}
	return total, nil
}

// WithClock replaces the log's clock. Intended for tests.
func (l *EmissionLog) WithClock(now func() time.Time) *EmissionLog {
	l.now = now
	return l
}

func summarize(date string, records []Record) carbon.DailySummary {
	summary := carbon.DailySummary{Date: date, ActivityCount: len(records)}
	for _, r := range records {
		summary.EmissionsGrams += r.CO2Grams
		summary.EnergyKWh += r.EnergyKWh
	}
	return summary
}
