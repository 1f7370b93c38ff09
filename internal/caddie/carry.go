package caddie

// CarryPct returns the signed carry change for a club class as the sum of
// the elevation baseline, the temperature term and the wind term. The
// result is not clamped; extreme inputs give extreme (advisory) numbers.
func (c Coefficients) CarryPct(headTail MPH, temperature Fahrenheit, class ClubClass) (Percent, error) {
	sensitivity, err := c.WindSensitivity(class)
	if err != nil {
		return 0, err
	}
	return c.ElevationBonusPct + c.TemperaturePct(temperature) + WindPct(headTail, sensitivity), nil
}

// TemperaturePct is the carry change from air temperature relative to the
// baseline; colder air is negative.
func (c Coefficients) TemperaturePct(temperature Fahrenheit) Percent {
	return Percent(float64(temperature-c.TempBaselineF) / 10 * c.TempPctPer10F)
}

// WindPct is the carry change from the head/tail component for a given
// per-mph sensitivity.
func WindPct(headTail MPH, perMph float64) Percent {
	return Percent(float64(headTail) * perMph * 100)
}

// CarryDelta converts a percentage into yards for a given carry.
func CarryDelta(carry Yards, pct Percent) Yards {
	return Yards(float64(carry) * pct.Fraction())
}
