package carbon

// BasePowerWatts maps activity types to nominal power draw in watts.
// Figures cover device plus network share and come from real-world
// streaming/browsing measurements and CodeCarbon benchmarks.
var BasePowerWatts = map[string]float64{
	"youtube":        15, // video streaming (device + network)
	"ott":            18, // OTT streaming, typically higher bitrate
	"browsing":       8,  // general web browsing
	"gmail":          5,  // email operations
	"code_execution": 50, // compilation / execution workloads
	"idle":           3,  // idle state
}

// QualityFactors scales power by streaming quality. The empty string means
// the caller did not report a quality and maps to the neutral multiplier.
var QualityFactors = map[string]float64{
	QualityLow:    0.7,
	QualityMedium: 1.0,
	QualityHigh:   1.3,
	"":            1.0,
}

// DeviceFactors scales power by device class. Mobile hardware draws roughly
// half of a desktop for the same activity, servers roughly half again more.
var DeviceFactors = map[string]float64{
	DeviceMobile:  0.5,
	DeviceDesktop: 1.0,
	DeviceServer:  1.5,
	"":            1.0,
}

// KnownActivityTypes returns the activity types the estimator accepts.
func KnownActivityTypes() []string {
	types := make([]string, 0, len(BasePowerWatts))
	for t := range BasePowerWatts {
		types = append(types, t)
	}
	return types
}
