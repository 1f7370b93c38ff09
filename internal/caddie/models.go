package caddie

import (
	"fmt"
	"math"
	"time"
)

const (
	FirstHole = 1
	LastHole  = 18
)

// WeatherSnapshot is one observation (or forecast hour) at the course.
// Wind direction follows the meteorological convention: the direction the
// wind blows from.
type WeatherSnapshot struct {
	TemperatureF        Fahrenheit `json:"temperature_f"`
	RelativeHumidityPct float64    `json:"relative_humidity_pct"`
	WindSpeedMph        MPH        `json:"wind_speed_mph"`
	WindFromDeg         Degrees    `json:"wind_from_deg"`
	RainLastHourMm      float64    `json:"rain_last_hour_mm"`
	Timestamp           time.Time  `json:"timestamp"`
}

// Validate checks the physical ranges of the snapshot and normalizes the
// wind direction.
func (w WeatherSnapshot) Validate() (WeatherSnapshot, error) {
	fields := []struct {
		name  string
		value float64
	}{
		{"temperature", float64(w.TemperatureF)},
		{"relative humidity", w.RelativeHumidityPct},
		{"wind speed", float64(w.WindSpeedMph)},
		{"wind direction", float64(w.WindFromDeg)},
		{"rainfall", w.RainLastHourMm},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return w, fmt.Errorf("%s is not a finite number", f.name)
		}
	}
	if w.RelativeHumidityPct < 0 || w.RelativeHumidityPct > 100 {
		return w, fmt.Errorf("relative humidity %.1f%% out of range", w.RelativeHumidityPct)
	}
	if w.WindSpeedMph < 0 {
		return w, fmt.Errorf("negative wind speed %v", w.WindSpeedMph)
	}
	if w.RainLastHourMm < 0 {
		return w, fmt.Errorf("negative rainfall %.2f mm", w.RainLastHourMm)
	}
	w.WindFromDeg = w.WindFromDeg.Normalize()
	return w, nil
}

// HoleGeometry is the direction of play for one hole. BearingDeg is nil
// when the course has no bearing on record for the hole.
type HoleGeometry struct {
	HoleNumber int      `json:"hole"`
	BearingDeg *Degrees `json:"bearing_deg"`
	Yardage    Yards    `json:"yardage,omitempty"`
}

// NewHoleGeometry builds a hole with a known bearing.
func NewHoleGeometry(hole int, bearing Degrees) HoleGeometry {
	b := bearing.Normalize()
	return HoleGeometry{HoleNumber: hole, BearingDeg: &b}
}

// Bearing returns the normalized bearing, or ErrHoleDataMissing.
func (h HoleGeometry) Bearing() (Degrees, error) {
	if err := ValidateHoleNumber(h.HoleNumber); err != nil {
		return 0, err
	}
	if h.BearingDeg == nil {
		return 0, &HoleError{Hole: h.HoleNumber, Err: ErrHoleDataMissing}
	}
	return h.BearingDeg.Normalize(), nil
}

// ValidateHoleNumber rejects anything outside 1-18.
func ValidateHoleNumber(hole int) error {
	if hole < FirstHole || hole > LastHole {
		return &HoleError{Hole: hole, Err: ErrInvalidHoleSelection}
	}
	return nil
}

// ClubClass selects the wind sensitivity tier for a club.
type ClubClass string

const (
	ClassDriver ClubClass = "driver"
	ClassIron   ClubClass = "iron"
)

// ClubProfile is a player's measured numbers for one club. JSON field names
// match the exported launch monitor profiles.
type ClubProfile struct {
	Name              string `json:"name"`
	AverageCarryYards Yards  `json:"average_carry"`
	AverageTotalYards Yards  `json:"average_total"`
	DispersionYards   Yards  `json:"dispersion"`
}

// CarryOnlyClub builds a profile entry from a bare carry number, as typed
// in by the player or restored from preferences.
func CarryOnlyClub(name string, carry Yards) ClubProfile {
	return ClubProfile{Name: name, AverageCarryYards: carry, AverageTotalYards: carry}
}

// Validate enforces carry > 0, total >= carry and dispersion >= 0.
func (c ClubProfile) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("club name is required")
	}
	if c.AverageCarryYards <= 0 {
		return &ClubError{Club: c.Name, Err: ErrMissingClubData}
	}
	if c.AverageTotalYards < c.AverageCarryYards {
		return fmt.Errorf("club %q: total %v shorter than carry %v", c.Name, c.AverageTotalYards, c.AverageCarryYards)
	}
	if c.DispersionYards < 0 {
		return fmt.Errorf("club %q: negative dispersion", c.Name)
	}
	return nil
}
