package carbon

import "strings"

// GridIntensityByCountry maps ISO 3166-1 alpha-3 country codes to grid
// carbon intensity. Values are in grams CO2 per kWh.
//
// Source: CodeCarbon / IEA regional averages.
var GridIntensityByCountry = map[string]float64{
	"USA": 475,
	"GBR": 233,
	"FRA": 58, // nuclear-heavy grid
	"DEU": 385,
	"CHN": 537,
	"IND": 724,
	"JPN": 465,
	"AUS": 720,
	"CAN": 140, // hydro-heavy grid
	"BRA": 84,  // hydro-heavy grid
}

// GridIntensityForCountry returns the grid intensity for the given country
// code in grams CO2 per kWh. Unknown or empty codes fall back to
// DefaultGridIntensity (global average).
func GridIntensityForCountry(code string) float64 {
	if intensity, ok := GridIntensityByCountry[strings.ToUpper(code)]; ok {
		return intensity
	}
	return DefaultGridIntensity
}
