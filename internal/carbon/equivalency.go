package carbon

import "fmt"

const (
	// GramsPerKmDriven is the average tailpipe emission of a passenger car
	// in grams CO2e per kilometre. Source: EPA greenhouse gas equivalencies.
	GramsPerKmDriven = 120.0

	// GramsPerPhoneCharge is the emission of one full smartphone charge in
	// grams CO2e. Source: EPA greenhouse gas equivalencies.
	GramsPerPhoneCharge = 8.22
)

// Equivalency expresses an emission total in everyday terms for display.
type Equivalency struct {
	// KmDriven is the equivalent distance driven by an average car.
	KmDriven float64 `json:"km_driven"`

	// PhoneCharges is the equivalent number of smartphone charges.
	PhoneCharges float64 `json:"phone_charges"`
}

// EquivalencyFor converts grams of CO2e into everyday equivalents.
// Negative inputs are treated as zero.
func EquivalencyFor(grams float64) Equivalency {
	if grams < 0 || !isFinite(grams) {
		grams = 0
	}
	return Equivalency{
		KmDriven:     grams / GramsPerKmDriven,
		PhoneCharges: grams / GramsPerPhoneCharge,
	}
}

// String renders the equivalency as prose for advice and report text.
func (e Equivalency) String() string {
	return fmt.Sprintf("equivalent to driving ~%.2f km or charging ~%.1f smartphones", e.KmDriven, e.PhoneCharges)
}
