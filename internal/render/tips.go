// Package render turns advice into the text a player reads on the tee.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/stitts-dev/weather-caddie/internal/caddie"
)

// Tips renders the advice as five lines: wind vs play, drive, approach,
// greens and the tuning footnote.
func Tips(result *caddie.AdviceResult, coeff caddie.Coefficients) string {
	var b strings.Builder

	bearing := "?"
	if result.Hole.BearingDeg != nil {
		bearing = strconv.FormatFloat(float64(*result.Hole.BearingDeg), 'f', -1, 64)
	}
	kind := "tail"
	if !result.Wind.IsTailwind() {
		kind = "head"
	}
	fmt.Fprintf(&b, "Hole %d (bearing %s°) · Wind vs play: Head/Tail: %s mph (%s) · Cross: %s mph %s\n",
		result.Hole.HoleNumber, bearing,
		fixed(float64(result.Wind.HeadTailMph), 1), kind,
		fixed(math.Abs(float64(result.Wind.CrossMph)), 1), result.Wind.CrossSide().Arrow())

	d := result.DriverAdjustment
	fmt.Fprintf(&b, "Drive (~%s yds carry): expect %s yds change (%s%%). Crosswind: %s by ~%s yds.\n",
		fixed(float64(d.Club.AverageCarryYards), 0),
		signed(float64(d.CarryDeltaYards), 0), signed(float64(d.CarryDeltaPct), 1),
		d.AimDirection.Phrase(), fixed(math.Abs(float64(d.AimOffsetYards)), 0))

	i := result.IronAdjustment
	fmt.Fprintf(&b, "Approach (7-iron ~%s yds): expect %s yds (%s%%). Crosswind: %s by ~%s yds.\n",
		fixed(float64(i.Club.AverageCarryYards), 0),
		signed(float64(i.CarryDeltaYards), 0), signed(float64(i.CarryDeltaPct), 1),
		i.AimDirection.Phrase(), fixed(math.Abs(float64(i.AimOffsetYards)), 0))

	fmt.Fprintf(&b, "Putt / Greens: %s\n", result.GreenNote.Note())
	b.WriteString(Tuning(coeff))
	return b.String()
}

// Tuning is the footnote listing the coefficients behind the numbers.
func Tuning(coeff caddie.Coefficients) string {
	return fmt.Sprintf("Tip tuning: elevation +%s%% baseline; ±%s%% per 10°F; wind sensitivity driver=%.2f%%/5mph, 7i=%.2f%%/5mph.",
		strconv.FormatFloat(float64(coeff.ElevationBonusPct), 'f', -1, 64),
		strconv.FormatFloat(coeff.TempPctPer10F, 'f', -1, 64),
		coeff.WindPerMph[caddie.ClassDriver]*100*5,
		coeff.WindPerMph[caddie.ClassIron]*100*5)
}

// Weather renders a snapshot header in the course's local time.
func Weather(courseName string, s *caddie.WeatherSnapshot, loc *time.Location) string {
	stamp := s.Timestamp
	if loc != nil {
		stamp = stamp.In(loc)
	}
	return fmt.Sprintf("%s · %s\nTemp: %s°F · Wind: %s mph @ %.0f° (from, %s)\nHumidity: %.0f%% · Rain (last hr): %s mm",
		courseName, stamp.Format("Mon Jan 2 3:04 PM"),
		fixed(float64(s.TemperatureF), 1),
		fixed(float64(s.WindSpeedMph), 1), float64(s.WindFromDeg), caddie.Cardinal(s.WindFromDeg),
		s.RelativeHumidityPct, fixed(s.RainLastHourMm, 2))
}

// Compass renders a compass reading as one line.
func Compass(r caddie.CompassReading) string {
	return fmt.Sprintf("Facing %.0f° (%s), wind from %.0f° (%s): %s",
		float64(r.HeadingDeg), caddie.Cardinal(r.HeadingDeg),
		float64(r.WindFromDeg), caddie.Cardinal(r.WindFromDeg), r.Phrase)
}

func fixed(v float64, places int) string {
	r := caddie.Round(v, places)
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', places, 64)
}

func signed(v float64, places int) string {
	s := fixed(v, places)
	if caddie.Round(v, places) > 0 {
		return "+" + s
	}
	return s
}
