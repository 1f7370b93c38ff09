package caddie

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Coefficients holds every tunable number used by the models. Values are
// calibrated against real rounds, so they live in configuration rather
// than in code branches.
type Coefficients struct {
	// ElevationFt is the course elevation. ElevationBonusPct is derived
	// from it once, in Finalize.
	ElevationFt           Feet    `yaml:"elevation_ft"`
	ElevationPctPer1000Ft float64 `yaml:"elevation_pct_per_1000ft"`
	ElevationBonusPct     Percent `yaml:"-"`

	TempBaselineF Fahrenheit `yaml:"temp_baseline_f"`
	TempPctPer10F float64    `yaml:"temp_pct_per_10f"`

	// WindPerMph is the fractional carry change per mph of head/tail
	// component, by club class. Tailwind is positive.
	WindPerMph map[ClubClass]float64 `yaml:"wind_per_mph"`

	// CrossDriftPer200YdPerMph is yards of lateral drift per mph of cross
	// component per 200 yards of carry.
	CrossDriftPer200YdPerMph float64 `yaml:"cross_drift_per_200yd_per_mph"`

	SlowGreenRainMm      float64 `yaml:"slow_green_rain_mm"`
	SlowGreenHumidityPct float64 `yaml:"slow_green_humidity_pct"`
	FastGreenWindMph     MPH     `yaml:"fast_green_wind_mph"`
	FastGreenHumidityPct float64 `yaml:"fast_green_humidity_pct"`
}

// DefaultCoefficients returns the stock heuristics for a course at the
// given elevation.
func DefaultCoefficients(elevationFt Feet) Coefficients {
	c := Coefficients{
		ElevationFt:           elevationFt,
		ElevationPctPer1000Ft: 1.0,
		TempBaselineF:         70,
		TempPctPer10F:         1.0,
		WindPerMph: map[ClubClass]float64{
			ClassDriver: 0.01 / 5,
			ClassIron:   0.007 / 5,
		},
		CrossDriftPer200YdPerMph: 0.7,
		SlowGreenRainMm:          0.5,
		SlowGreenHumidityPct:     90,
		FastGreenWindMph:         15,
		FastGreenHumidityPct:     50,
	}
	return c.Finalize()
}

// LoadCoefficients overlays a YAML file onto the defaults. Keys absent
// from the file keep their default value; wind tiers are merged per class.
func LoadCoefficients(path string, elevationFt Feet) (Coefficients, error) {
	c := DefaultCoefficients(elevationFt)
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read coefficients file: %w", err)
	}

	defaults := c.WindPerMph
	c.WindPerMph = nil
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse coefficients file: %w", err)
	}
	merged := make(map[ClubClass]float64, len(defaults))
	for class, v := range defaults {
		merged[class] = v
	}
	for class, v := range c.WindPerMph {
		merged[class] = v
	}
	c.WindPerMph = merged

	c = c.Finalize()
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Finalize computes the derived elevation bonus, rounded to two decimals.
func (c Coefficients) Finalize() Coefficients {
	c.ElevationBonusPct = Percent(Round(float64(c.ElevationFt)/1000*c.ElevationPctPer1000Ft, 2))
	return c
}

// Validate checks that both wind tiers exist and no coefficient is negative
// where a negative value makes no sense.
func (c Coefficients) Validate() error {
	for _, class := range []ClubClass{ClassDriver, ClassIron} {
		if _, ok := c.WindPerMph[class]; !ok {
			return fmt.Errorf("missing wind coefficient for club class %q", class)
		}
	}
	if c.CrossDriftPer200YdPerMph < 0 {
		return fmt.Errorf("cross drift coefficient must not be negative")
	}
	if c.SlowGreenHumidityPct < 0 || c.SlowGreenHumidityPct > 100 ||
		c.FastGreenHumidityPct < 0 || c.FastGreenHumidityPct > 100 {
		return fmt.Errorf("green humidity thresholds must be within 0-100")
	}
	return nil
}

// WindSensitivity returns the per-mph coefficient for a club class.
func (c Coefficients) WindSensitivity(class ClubClass) (float64, error) {
	v, ok := c.WindPerMph[class]
	if !ok {
		return 0, fmt.Errorf("no wind coefficient for club class %q", class)
	}
	return v, nil
}
