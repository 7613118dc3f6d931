package storage

import (
	"fmt"
	"time"

	"github.com/enact-eco/enact/internal/carbon"
)

// SeedDemoData fills the log with a plausible spread of activities over the
// last N days so charts have something to render before real tracking data
// accumulates. Existing days are appended to, not replaced.
func (l *EmissionLog) SeedDemoData(days int, estimator carbon.ActivityEstimator) error {
	activityTypes := []string{"youtube", "browsing", "gmail", "ott"}

	for i := 0; i < days; i++ {
		day := l.now().AddDate(0, 0, -i)

		// Two to five activities per day, varying by weekday.
		count := 2 + (i % 4)
		for j := 0; j < count; j++ {
			activityType := activityTypes[j%len(activityTypes)]
			duration := 300.0 + float64(j)*120.0

			result, err := estimator.Estimate(activityType, duration, carbon.Metadata{}, 50)
			if err != nil {
				return fmt.Errorf("seed %s: %w", activityType, err)
			}

			rec := Record{
				Timestamp:       time.Date(day.Year(), day.Month(), day.Day(), 9+j, 0, 0, 0, day.Location()),
				ActivityType:    activityType,
				DurationSeconds: duration,
				EnergyKWh:       result.EnergyKWh,
				CO2Grams:        result.CO2Grams,
				PowerWatts:      result.PowerWatts,
				CPULoadFactor:   result.CPULoadFactor,
			}
			if _, err := l.Append(rec); err != nil {
				return err
			}
		}
	}

	l.log.Info().Int("days", days).Msg("demo data seeded")
	return nil
}
