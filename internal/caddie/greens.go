package caddie

// GreenSpeed is a qualitative read of putting surfaces.
type GreenSpeed string

const (
	GreensSlow   GreenSpeed = "slow"
	GreensFast   GreenSpeed = "fast"
	GreensNormal GreenSpeed = "normal"
)

// Note is the caddie tip for the green speed.
func (g GreenSpeed) Note() string {
	switch g {
	case GreensSlow:
		return "Greens likely slower/damp. Favor a firmer strike; add pace on uphill putts."
	case GreensFast:
		return "Surfaces a bit quicker/firm; expect a touch more release on approaches."
	}
	return "Typical speeds for here; read your usual lines and pace."
}

// ClassifyGreens applies the rules in priority order: wet (recent rain or
// very humid) is slow, then dry and windy is fast, otherwise normal.
func (c Coefficients) ClassifyGreens(rainMm, humidityPct float64, wind MPH) GreenSpeed {
	if rainMm >= c.SlowGreenRainMm || humidityPct >= c.SlowGreenHumidityPct {
		return GreensSlow
	}
	if wind >= c.FastGreenWindMph && humidityPct <= c.FastGreenHumidityPct {
		return GreensFast
	}
	return GreensNormal
}
