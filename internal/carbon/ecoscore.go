package carbon

import (
	"fmt"
	"math"
)

// scoreBracket is one segment of the piecewise-linear eco score curve.
// Within a bracket: score = base - (avgDaily - origin) x slope.
type scoreBracket struct {
	upper  float64 // inclusive upper bound of average daily grams
	base   float64 // score at the bracket origin
	slope  float64 // points lost per gram above the origin
	origin float64 // grams subtracted before applying the slope
}

// scoreBrackets maps average daily emissions (grams/day) to a 0-100 score.
// The curve is monotonically non-increasing and continuous at every bracket
// boundary. Thresholds are empirically chosen; do not "correct" them.
var scoreBrackets = []scoreBracket{
	{upper: 0.1, base: 100, slope: 0, origin: 0},
	{upper: 0.5, base: 100, slope: 20, origin: 0},
	{upper: 1, base: 90, slope: 10, origin: 0.5},
	{upper: 2, base: 85, slope: 5, origin: 1},
	{upper: 5, base: 80, slope: 10, origin: 2},
	{upper: math.Inf(1), base: 50, slope: 10, origin: 5},
}

// ComputeEcoScore derives a 0-100 health indicator from a set of daily
// summaries. An empty set or zero total emissions scores a perfect 100.
//
// The score is purely presentational: a non-finite total (which can only
// come from corrupted summaries) falls back to 100 rather than propagating.
// This is deliberately separate from the estimator's strict error path.
func ComputeEcoScore(summaries []DailySummary) int {
	if len(summaries) == 0 {
		return 100
	}

	total := 0.0
	for _, s := range summaries {
		total += s.EmissionsGrams
	}

	score, err := ScoreForPeriod(total, len(summaries))
	if err != nil {
		// Unreachable: len(summaries) >= 1 here.
		return 100
	}
	return score
}

// ScoreForPeriod computes the eco score for a known total over an explicit
// period. A zero or negative day count is a caller error and returns
// ErrInvalidPeriod rather than dividing.
func ScoreForPeriod(totalGrams float64, periodDays int) (int, error) {
	if periodDays <= 0 {
		return 0, fmt.Errorf("%w: %d days", ErrInvalidPeriod, periodDays)
	}

	avgDaily := totalGrams / float64(periodDays)
	if !isFinite(avgDaily) {
		return 100, nil
	}
	if avgDaily <= 0 {
		return 100, nil
	}

	score := 100.0
	for _, b := range scoreBrackets {
		if avgDaily <= b.upper {
			score = b.base - (avgDaily-b.origin)*b.slope
			break
		}
	}
	if !isFinite(score) {
		return 100, nil
	}

	return int(math.Round(Clamp(score, 0, 100))), nil
}

// ScoreRating maps an eco score to a coarse label for display.
func ScoreRating(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 75:
		return "good"
	case score >= 50:
		return "fair"
	default:
		return "poor"
	}
}
