// Package tracker samples system state on an interval and records the
// inferred activity through the estimator and the emission log, so idle
// machines still accumulate a footprint history without any client.
package tracker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/enact-eco/enact/internal/carbon"
	"github.com/enact-eco/enact/internal/metrics"
	"github.com/enact-eco/enact/internal/storage"
	"github.com/enact-eco/enact/internal/sysmetrics"
)

// DefaultInterval is how often the tracker samples when not configured.
const DefaultInterval = 10 * time.Second

// CPU thresholds for the default activity classifier.
const (
	busyCPUPercent   = 80.0
	activeCPUPercent = 20.0
)

// Classifier maps a system snapshot to an activity type.
type Classifier func(sysmetrics.Snapshot) string

// DefaultClassifier infers activity from CPU pressure alone: a busy
// machine is assumed to be executing code, a moderately active one
// browsing, anything else idle.
func DefaultClassifier(snap sysmetrics.Snapshot) string {
	switch {
	case snap.CPUPercent >= busyCPUPercent:
		return "code_execution"
	case snap.CPUPercent >= activeCPUPercent:
		return "browsing"
	default:
		return "idle"
	}
}

// Tracker runs the sampling loop.
type Tracker struct {
	interval  time.Duration
	probe     sysmetrics.Probe
	estimator carbon.ActivityEstimator
	store     *storage.EmissionLog
	classify  Classifier
	log       zerolog.Logger
}

// New creates a tracker. A nil classifier uses DefaultClassifier; a
// non-positive interval uses DefaultInterval.
func New(interval time.Duration, probe sysmetrics.Probe, estimator carbon.ActivityEstimator, store *storage.EmissionLog, classify Classifier, logger zerolog.Logger) *Tracker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if classify == nil {
		classify = DefaultClassifier
	}
	return &Tracker{
		interval:  interval,
		probe:     probe,
		estimator: estimator,
		store:     store,
		classify:  classify,
		log:       logger.With().Str("component", "tracker").Logger(),
	}
}

// Run samples until the context is cancelled. Individual sample failures
// are logged and skipped; the loop only stops with the context.
func (t *Tracker) Run(ctx context.Context) error {
	t.log.Info().Dur("interval", t.interval).Msg("tracker started")

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.log.Info().Msg("tracker stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := t.Sample(ctx); err != nil {
				t.log.Warn().Err(err).Msg("sample failed")
			}
		}
	}
}

// Sample takes one snapshot, classifies it and records the resulting
// activity for the sampling interval.
func (t *Tracker) Sample(ctx context.Context) error {
	snap, err := t.probe.Snapshot(ctx)
	if err != nil {
		return err
	}

	activityType := t.classify(snap)

	result, err := t.estimator.Estimate(activityType, t.interval.Seconds(), carbon.Metadata{}, snap.CPUPercent)
	if err != nil {
		return err
	}

	rec, err := t.store.Append(storage.Record{
		ActivityType:    activityType,
		DurationSeconds: t.interval.Seconds(),
		EnergyKWh:       result.EnergyKWh,
		CO2Grams:        result.CO2Grams,
		PowerWatts:      result.PowerWatts,
		CPULoadFactor:   result.CPULoadFactor,
	})
	if err != nil {
		return err
	}

	metrics.ObserveRecord(activityType, result.CO2Grams, result.EnergyKWh)

	t.log.Debug().
		Str("activity_type", activityType).
		Float64("cpu_percent", snap.CPUPercent).
		Str("record_id", rec.ID).
		Msg("activity sampled")
	return nil
}
