package carbon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGridIntensityByCountry_AllWithinValidRange validates that every
// configured grid intensity is physically plausible. No national grid emits
// less than ~20 g/kWh (even all-hydro grids have lifecycle emissions) or
// more than ~1000 g/kWh (the dirtiest coal grids sit near 800).
func TestGridIntensityByCountry_AllWithinValidRange(t *testing.T) {
	for country, intensity := range GridIntensityByCountry {
		t.Run(country, func(t *testing.T) {
			assert.Greater(t, intensity, 20.0,
				"grid intensity for %s should exceed lifecycle floor", country)
			assert.Less(t, intensity, 1000.0,
				"grid intensity for %s should be below coal ceiling", country)
		})
	}
}

func TestGridIntensityForCountry_KnownCountries(t *testing.T) {
	assert.Equal(t, 475.0, GridIntensityForCountry("USA"))
	assert.Equal(t, 58.0, GridIntensityForCountry("FRA"))
	assert.Equal(t, 724.0, GridIntensityForCountry("IND"))
}

func TestGridIntensityForCountry_CaseInsensitive(t *testing.T) {
	assert.Equal(t, GridIntensityForCountry("GBR"), GridIntensityForCountry("gbr"))
}

func TestGridIntensityForCountry_UnknownFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultGridIntensity, GridIntensityForCountry("ATL"))
	assert.Equal(t, DefaultGridIntensity, GridIntensityForCountry(""))
}

// TestGridIntensityByCountry_RegionalVariation ensures the table reflects
// real differences between clean and dirty grids and has not been
// accidentally normalized.
func TestGridIntensityByCountry_RegionalVariation(t *testing.T) {
	france := GridIntensityByCountry["FRA"]
	india := GridIntensityByCountry["IND"]

	assert.Greater(t, india/france, 10.0,
		"India's coal-heavy grid should be at least 10x more carbon-intensive than France's")
}
