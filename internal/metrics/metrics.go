// Package metrics exposes the service's prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActivitiesTracked counts emission records by activity type.
	ActivitiesTracked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enact_activities_tracked_total",
		Help: "Number of activity records tracked, by activity type.",
	}, []string{"activity_type"})

	// EmissionsGrams accumulates estimated CO2 grams across all records.
	EmissionsGrams = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enact_emissions_grams_total",
		Help: "Total estimated CO2 emissions in grams.",
	})

	// EnergyKWh accumulates estimated energy across all records.
	EnergyKWh = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enact_energy_kwh_total",
		Help: "Total estimated energy consumption in kWh.",
	})

	// EstimationFailures counts rejected estimation requests.
	EstimationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enact_estimation_failures_total",
		Help: "Number of estimation requests rejected by validation.",
	})
)

// ObserveRecord updates the counters for one tracked record.
func ObserveRecord(activityType string, co2Grams, energyKWh float64) {
	ActivitiesTracked.WithLabelValues(activityType).Inc()
	EmissionsGrams.Add(co2Grams)
	EnergyKWh.Add(energyKWh)
}
