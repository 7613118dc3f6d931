package carbon

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeEcoScore_EmptySummaries(t *testing.T) {
	assert.Equal(t, 100, ComputeEcoScore(nil))
	assert.Equal(t, 100, ComputeEcoScore([]DailySummary{}))
}

func TestComputeEcoScore_ZeroEmissions(t *testing.T) {
	summaries := []DailySummary{
		{Date: "2026-08-20", EmissionsGrams: 0},
		{Date: "2026-08-21", EmissionsGrams: 0},
		{Date: "2026-08-22", EmissionsGrams: 0},
	}

	assert.Equal(t, 100, ComputeEcoScore(summaries))
}

func TestComputeEcoScore_WeekOfModerateUse(t *testing.T) {
	// 10 g over 7 days is ~1.43 g/day, which lands in the (1, 2] bracket:
	// 85 - 0.43x5 = 82.86, rounded to 83.
	summaries := make([]DailySummary, 7)
	for i := range summaries {
		summaries[i] = DailySummary{EmissionsGrams: 10.0 / 7.0}
	}

	assert.Equal(t, 83, ComputeEcoScore(summaries))
}

func TestScoreForPeriod_Brackets(t *testing.T) {
	tests := []struct {
		name       string
		totalGrams float64
		days       int
		want       int
	}{
		{"negligible use scores perfect", 0.05, 1, 100},
		{"at first bracket edge", 0.1, 1, 100},
		{"light use", 0.3, 1, 94},
		{"at second bracket edge", 0.5, 1, 90},
		{"moderate use", 0.75, 1, 88},
		{"at third bracket edge", 1, 1, 85},
		{"average use", 1.5, 1, 83},
		{"at fourth bracket edge", 2, 1, 80},
		{"heavy use", 3.5, 1, 65},
		{"at fifth bracket edge", 5, 1, 50},
		{"very heavy use", 7, 1, 30},
		{"extreme use floors at zero", 100, 1, 0},
		{"multi-day averaging", 10, 7, 83},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreForPeriod(tt.totalGrams, tt.days)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreForPeriod_InvalidPeriod(t *testing.T) {
	_, err := ScoreForPeriod(10, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPeriod))

	_, err = ScoreForPeriod(10, -3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPeriod))
}

func TestScoreForPeriod_NonFiniteFallsBackToDefault(t *testing.T) {
	// A corrupted total must never surface as NaN in a presentational
	// value; the score falls back to its defined default instead.
	got, err := ScoreForPeriod(math.NaN(), 7)
	require.NoError(t, err)
	assert.Equal(t, 100, got)

	got, err = ScoreForPeriod(math.Inf(1), 7)
	require.NoError(t, err)
	assert.Equal(t, 100, got)
}

func TestScoreForPeriod_MonotonicallyNonIncreasing(t *testing.T) {
	prev := 101
	for avg := 0.0; avg <= 12.0; avg += 0.01 {
		got, err := ScoreForPeriod(avg, 1)
		require.NoError(t, err)

		assert.LessOrEqual(t, got, prev,
			"score must not increase with emissions (avg=%.2f)", avg)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
		prev = got
	}
}

func TestScoreRating(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "excellent"},
		{90, "excellent"},
		{80, "good"},
		{60, "fair"},
		{20, "poor"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreRating(tt.score))
	}
}
