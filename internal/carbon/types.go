package carbon

// Metadata carries the optional qualifiers of a tracked activity. Empty
// fields mean "unspecified" and use the neutral multiplier.
type Metadata struct {
	// Quality is the streaming/rendering quality: low, medium or high.
	Quality string `json:"quality,omitempty"`

	// DeviceType is the device class: mobile, desktop or server.
	DeviceType string `json:"device_type,omitempty"`
}

// EmissionResult is the output of a single estimation call. All fields are
// finite and non-negative; CO2Grams is always EnergyKWh times the grid
// intensity the estimator was configured with.
type EmissionResult struct {
	// EnergyKWh is the estimated energy consumption in kilowatt-hours.
	EnergyKWh float64 `json:"energy_kwh"`

	// CO2Grams is the estimated carbon emission in grams CO2e.
	CO2Grams float64 `json:"co2_grams"`

	// PowerWatts is the effective power draw after all multipliers.
	PowerWatts float64 `json:"power_watts"`

	// CPULoadFactor is the normalized CPU multiplier in [0.5, 2.0].
	CPULoadFactor float64 `json:"cpu_load_factor"`
}

// DailySummary aggregates the emissions of one calendar day. It is always
// derived from the underlying per-day record collection, never stored.
type DailySummary struct {
	// Date is the calendar day in YYYY-MM-DD form.
	Date string `json:"date"`

	// EmissionsGrams is the total CO2 for the day in grams.
	EmissionsGrams float64 `json:"emissions_grams"`

	// EnergyKWh is the total energy for the day in kilowatt-hours.
	EnergyKWh float64 `json:"energy_kwh"`

	// ActivityCount is the number of records aggregated into the day.
	ActivityCount int `json:"activity_count"`
}
