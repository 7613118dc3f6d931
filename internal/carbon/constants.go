// Package carbon provides energy and CO2 estimation for tracked digital
// activities using benchmark power figures and grid intensity averages.
package carbon

const (
	// DefaultGridIntensity is the grid carbon intensity used when no
	// country-specific figure is configured, in grams CO2 per kWh.
	// Source: CodeCarbon default (global average).
	DefaultGridIntensity = 475.0

	// CPUNormalizationDivisor converts a CPU utilization percentage into a
	// load factor: factor = cpuPercent / CPUNormalizationDivisor. The value
	// 50 means a half-loaded machine draws nominal activity power.
	// Empirically chosen; kept configurable rather than derived.
	CPUNormalizationDivisor = 50.0

	// MinCPULoadFactor and MaxCPULoadFactor bound the CPU load factor so a
	// momentary utilization spike or an idle probe cannot distort an
	// estimate by more than 2x either way.
	MinCPULoadFactor = 0.5
	MaxCPULoadFactor = 2.0

	// SecondsPerHour converts activity durations to hours.
	SecondsPerHour = 3600.0

	// WattsPerKilowatt converts effective power to kW for energy math.
	WattsPerKilowatt = 1000.0

	// DailyThresholdGrams is the daily emission budget. Crossing it
	// triggers advisor suggestions.
	DailyThresholdGrams = 2.0

	// WeeklyThresholdGrams is the rolling 7-day emission budget.
	WeeklyThresholdGrams = 10.0
)

// Quality levels accepted in activity metadata.
const (
	QualityLow    = "low"
	QualityMedium = "medium"
	QualityHigh   = "high"
)

// Device types accepted in activity metadata.
const (
	DeviceMobile  = "mobile"
	DeviceDesktop = "desktop"
	DeviceServer  = "server"
)
