package carbon

import (
	"fmt"
	"math"
	"strings"
)

// ActivityEstimator estimates energy and carbon for tracked activities.
type ActivityEstimator interface {
	// Estimate calculates energy (kWh) and carbon (grams CO2e) for a single
	// activity given its duration, optional metadata and the CPU utilization
	// percentage observed while it ran.
	Estimate(activityType string, durationSeconds float64, meta Metadata, cpuPercent float64) (EmissionResult, error)
}

// Config holds the tunable tables and constants of the estimator. All fields
// default to the package-level tables; callers override individual entries
// to model a different region or device fleet.
type Config struct {
	// GridIntensity is the grid carbon intensity in grams CO2 per kWh.
	GridIntensity float64

	// BasePowerWatts maps activity types to nominal power draw.
	BasePowerWatts map[string]float64

	// QualityFactors and DeviceFactors are the metadata multipliers.
	QualityFactors map[string]float64
	DeviceFactors  map[string]float64

	// CPUDivisor normalizes a CPU percentage into a load factor, which is
	// then clamped to [MinCPULoad, MaxCPULoad].
	CPUDivisor float64
	MinCPULoad float64
	MaxCPULoad float64
}

// DefaultConfig returns the benchmark configuration: global-average grid
// intensity and the package power/multiplier tables.
func DefaultConfig() Config {
	return Config{
		GridIntensity:  DefaultGridIntensity,
		BasePowerWatts: BasePowerWatts,
		QualityFactors: QualityFactors,
		DeviceFactors:  DeviceFactors,
		CPUDivisor:     CPUNormalizationDivisor,
		MinCPULoad:     MinCPULoadFactor,
		MaxCPULoad:     MaxCPULoadFactor,
	}
}

// Estimator implements ActivityEstimator. It is stateless and safe for
// concurrent use; the configuration is not mutated after construction.
type Estimator struct {
	cfg Config
}

// NewEstimator creates an estimator with DefaultConfig.
func NewEstimator() *Estimator {
	return NewEstimatorWithConfig(DefaultConfig())
}

// NewEstimatorWithConfig creates an estimator with the given configuration.
// Zero-valued fields are filled from DefaultConfig.
func NewEstimatorWithConfig(cfg Config) *Estimator {
	def := DefaultConfig()
	if cfg.GridIntensity <= 0 {
		cfg.GridIntensity = def.GridIntensity
	}
	if cfg.BasePowerWatts == nil {
		cfg.BasePowerWatts = def.BasePowerWatts
	}
	if cfg.QualityFactors == nil {
		cfg.QualityFactors = def.QualityFactors
	}
	if cfg.DeviceFactors == nil {
		cfg.DeviceFactors = def.DeviceFactors
	}
	if cfg.CPUDivisor <= 0 {
		cfg.CPUDivisor = def.CPUDivisor
	}
	if cfg.MinCPULoad <= 0 {
		cfg.MinCPULoad = def.MinCPULoad
	}
	if cfg.MaxCPULoad <= 0 {
		cfg.MaxCPULoad = def.MaxCPULoad
	}
	return &Estimator{cfg: cfg}
}

// GridIntensity returns the grid intensity this estimator applies,
// in grams CO2 per kWh.
func (e *Estimator) GridIntensity() float64 {
	return e.cfg.GridIntensity
}

// Estimate calculates the emission footprint of one activity.
//
// The calculation:
//  1. cpu_load_factor = clamp(cpuPercent / divisor, min, max)
//  2. effective W = base power x cpu_load x quality x device
//  3. energy (kWh) = W x (seconds / 3600) / 1000
//  4. CO2 (g) = energy x grid intensity
//
// Unknown activity types return ErrInvalidActivityType, negative durations
// ErrInvalidDuration, unknown quality or device values ErrInvalidMetadata,
// and any input that yields a non-finite intermediate value ErrEstimation.
func (e *Estimator) Estimate(activityType string, durationSeconds float64, meta Metadata, cpuPercent float64) (EmissionResult, error) {
	basePower, ok := e.cfg.BasePowerWatts[strings.ToLower(activityType)]
	if !ok {
		return EmissionResult{}, fmt.Errorf("%w: %q", ErrInvalidActivityType, activityType)
	}

	if durationSeconds < 0 {
		return EmissionResult{}, fmt.Errorf("%w: %v seconds", ErrInvalidDuration, durationSeconds)
	}
	if !isFinite(durationSeconds) {
		return EmissionResult{}, fmt.Errorf("%w: non-finite duration", ErrEstimation)
	}

	qualityFactor, ok := e.cfg.QualityFactors[strings.ToLower(meta.Quality)]
	if !ok {
		return EmissionResult{}, fmt.Errorf("%w: unknown quality %q", ErrInvalidMetadata, meta.Quality)
	}
	deviceFactor, ok := e.cfg.DeviceFactors[strings.ToLower(meta.DeviceType)]
	if !ok {
		return EmissionResult{}, fmt.Errorf("%w: unknown device type %q", ErrInvalidMetadata, meta.DeviceType)
	}

	cpuLoadFactor := Clamp(cpuPercent/e.cfg.CPUDivisor, e.cfg.MinCPULoad, e.cfg.MaxCPULoad)

	powerWatts := basePower * cpuLoadFactor * qualityFactor * deviceFactor
	energyKWh := powerWatts * (durationSeconds / SecondsPerHour) / WattsPerKilowatt
	co2Grams := energyKWh * e.cfg.GridIntensity

	result := EmissionResult{
		EnergyKWh:     energyKWh,
		CO2Grams:      co2Grams,
		PowerWatts:    powerWatts,
		CPULoadFactor: cpuLoadFactor,
	}
	if !isFinite(result.EnergyKWh) || !isFinite(result.CO2Grams) ||
		!isFinite(result.PowerWatts) || !isFinite(result.CPULoadFactor) {
		return EmissionResult{}, fmt.Errorf("%w: non-finite result for %s", ErrEstimation, activityType)
	}

	return result, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
