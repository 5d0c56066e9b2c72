// Package radio holds the small calculations behind the band-plan drills:
// frequency/wavelength conversion and US amateur band lookup.
package radio

import "fmt"

// speedOfLight in MHz·m, so wavelength(m) = speedOfLight / frequency(MHz)
const speedOfLight = 299.792458

// Band is one US amateur allocation
type Band struct {
	Name    string  `json:"name"`     // conventional wavelength name, e.g. "2m"
	LowMHz  float64 `json:"low_mhz"`  // inclusive
	HighMHz float64 `json:"high_mhz"` // inclusive
}

// usBands lists the allocations the drills quiz on, lowest frequency first
var usBands = []Band{
	{Name: "160m", LowMHz: 1.8, HighMHz: 2.0},
	{Name: "80m", LowMHz: 3.5, HighMHz: 4.0},
	{Name: "40m", LowMHz: 7.0, HighMHz: 7.3},
	{Name: "30m", LowMHz: 10.1, HighMHz: 10.15},
	{Name: "20m", LowMHz: 14.0, HighMHz: 14.35},
	{Name: "17m", LowMHz: 18.068, HighMHz: 18.168},
	{Name: "15m", LowMHz: 21.0, HighMHz: 21.45},
	{Name: "12m", LowMHz: 24.89, HighMHz: 24.99},
	{Name: "10m", LowMHz: 28.0, HighMHz: 29.7},
	{Name: "6m", LowMHz: 50.0, HighMHz: 54.0},
	{Name: "2m", LowMHz: 144.0, HighMHz: 148.0},
	{Name: "1.25m", LowMHz: 222.0, HighMHz: 225.0},
	{Name: "70cm", LowMHz: 420.0, HighMHz: 450.0},
}

// FreqToWavelength converts a frequency in MHz to a wavelength in meters.
// Non-positive input is a caller bug, rejected rather than returning Inf.
func FreqToWavelength(freqMHz float64) (float64, error) {
	if freqMHz <= 0 {
		return 0, fmt.Errorf("frequency must be positive, got %g MHz", freqMHz)
	}
	return speedOfLight / freqMHz, nil
}

// WavelengthToFreq converts a wavelength in meters to a frequency in MHz
func WavelengthToFreq(meters float64) (float64, error) {
	if meters <= 0 {
		return 0, fmt.Errorf("wavelength must be positive, got %g m", meters)
	}
	return speedOfLight / meters, nil
}

// BandFor returns the amateur band containing the frequency, or nil when it
// falls outside every allocation
func BandFor(freqMHz float64) *Band {
	for i := range usBands {
		if freqMHz >= usBands[i].LowMHz && freqMHz <= usBands[i].HighMHz {
			return &usBands[i]
		}
	}
	return nil
}

// Bands returns every allocation the drills cover
func Bands() []Band {
	return usBands
}
