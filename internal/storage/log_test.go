package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enact-eco/enact/internal/carbon"
)

func newTestLog(t *testing.T) *EmissionLog {
	t.Helper()
	l, err := NewEmissionLog(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	// Fixed clock keeps day boundaries deterministic.
	return l.WithClock(func() time.Time {
		return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	})
}

func TestEmissionLog_AppendAndReadBack(t *testing.T) {
	l := newTestLog(t)

	rec, err := l.Append(Record{
		ActivityType:    "youtube",
		DurationSeconds: 3600,
		EnergyKWh:       0.015,
		CO2Grams:        7.125,
		PowerWatts:      15,
		CPULoadFactor:   1.0,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID, "append should assign an ID")
	assert.False(t, rec.Timestamp.IsZero(), "append should stamp the record")

	records, err := l.Day("2026-08-25")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.ID, records[0].ID)
	assert.Equal(t, "youtube", records[0].ActivityType)
	assert.InDelta(t, 7.125, records[0].CO2Grams, 1e-9)
}

func TestEmissionLog_AppendAccumulatesWithinDay(t *testing.T) {
	l := newTestLog(t)

	for i := 0; i < 5; i++ {
		_, err := l.Append(Record{ActivityType: "browsing", CO2Grams: 0.5})
		require.NoError(t, err)
	}

	records, err := l.Day("2026-08-25")
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestEmissionLog_RecordsSplitByCalendarDay(t *testing.T) {
	l := newTestLog(t)

	_, err := l.Append(Record{
		Timestamp:    time.Date(2026, 8, 24, 23, 59, 0, 0, time.UTC),
		ActivityType: "gmail",
		CO2Grams:     0.1,
	})
	require.NoError(t, err)
	_, err = l.Append(Record{
		Timestamp:    time.Date(2026, 8, 25, 0, 1, 0, 0, time.UTC),
		ActivityType: "gmail",
		CO2Grams:     0.2,
	})
	require.NoError(t, err)

	yesterday, err := l.Day("2026-08-24")
	require.NoError(t, err)
	today, err := l.Day("2026-08-25")
	require.NoError(t, err)

	assert.Len(t, yesterday, 1)
	assert.Len(t, today, 1)
}

func TestEmissionLog_MissingDayIsEmpty(t *testing.T) {
	l := newTestLog(t)

	records, err := l.Day("2020-01-01")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestEmissionLog_BadDateRejected(t *testing.T) {
	l := newTestLog(t)

	_, err := l.Day("25-08-2026")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadDate))
}

func TestEmissionLog_CorruptDayFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	l, err := NewEmissionLog(dir, zerolog.Nop())
	require.NoError(t, err)

	path := filepath.Join(dir, "emissions_2026-08-20.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	records, err := l.Day("2026-08-20")
	require.NoError(t, err)
	assert.Empty(t, records)

	// Appending to the corrupt day starts a fresh file instead of failing.
	_, err = l.Append(Record{
		Timestamp:    time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		ActivityType: "idle",
	})
	require.NoError(t, err)

	records, err = l.Day("2026-08-20")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestEmissionLog_Dates(t *testing.T) {
	l := newTestLog(t)

	for _, date := range []string{"2026-08-23", "2026-08-21", "2026-08-22"} {
		ts, err := time.Parse(DateLayout, date)
		require.NoError(t, err)
		_, err = l.Append(Record{Timestamp: ts.Add(8 * time.Hour), ActivityType: "idle"})
		require.NoError(t, err)
	}

	dates, err := l.Dates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-21", "2026-08-22", "2026-08-23"}, dates)
}

func TestEmissionLog_SummaryForDay(t *testing.T) {
	l := newTestLog(t)

	_, err := l.Append(Record{ActivityType: "youtube", CO2Grams: 7.125, EnergyKWh: 0.015})
	require.NoError(t, err)
	_, err = l.Append(Record{ActivityType: "gmail", CO2Grams: 0.5, EnergyKWh: 0.001})
	require.NoError(t, err)

	s, err := l.SummaryForDay("2026-08-25")
	require.NoError(t, err)

	assert.Equal(t, "2026-08-25", s.Date)
	assert.Equal(t, 2, s.ActivityCount)
	assert.InDelta(t, 7.625, s.EmissionsGrams, 1e-9)
	assert.InDelta(t, 0.016, s.EnergyKWh, 1e-9)
}

func TestEmissionLog_RecentSummariesChronological(t *testing.T) {
	l := newTestLog(t)

	_, err := l.Append(Record{
		Timestamp:    time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
		ActivityType: "ott",
		CO2Grams:     1.0,
	})
	require.NoError(t, err)

	summaries, err := l.RecentSummaries(3)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	// Oldest first, gap days present with zero totals.
	assert.Equal(t, "2026-08-23", summaries[0].Date)
	assert.Equal(t, "2026-08-24", summaries[1].Date)
	assert.Equal(t, "2026-08-25", summaries[2].Date)
	assert.InDelta(t, 1.0, summaries[0].EmissionsGrams, 1e-9)
	assert.Zero(t, summaries[1].ActivityCount)
}

func TestEmissionLog_WeeklyTotal(t *testing.T) {
	l := newTestLog(t)

	for i := 0; i < 10; i++ {
		_, err := l.Append(Record{
			Timestamp:    time.Date(2026, 8, 25-i, 10, 0, 0, 0, time.UTC),
			ActivityType: "browsing",
			CO2Grams:     1.0,
		})
		require.NoError(t, err)
	}

	weekly, err := l.WeeklyTotal()
	require.NoError(t, err)

	// Only the last 7 calendar days count.
	assert.InDelta(t, 7.0, weekly, 1e-9)
}

func TestEmissionLog_HistorySummariesLimit(t *testing.T) {
	l := newTestLog(t)

	for i := 0; i < 5; i++ {
		_, err := l.Append(Record{
			Timestamp:    time.Date(2026, 8, 20+i, 10, 0, 0, 0, time.UTC),
			ActivityType: "idle",
			CO2Grams:     float64(i),
		})
		require.NoError(t, err)
	}

	all, err := l.HistorySummaries(0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	limited, err := l.HistorySummaries(2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "2026-08-23", limited[0].Date)
	assert.Equal(t, "2026-08-24", limited[1].Date)
}

func TestEmissionLog_SeedDemoData(t *testing.T) {
	l := newTestLog(t)

	require.NoError(t, l.SeedDemoData(3, carbon.NewEstimator()))

	summaries, err := l.HistorySummaries(0)
	require.NoError(t, err)
	assert.Len(t, summaries, 3)
	for _, s := range summaries {
		assert.GreaterOrEqual(t, s.ActivityCount, 2)
		assert.Greater(t, s.EmissionsGrams, 0.0)
	}
}
