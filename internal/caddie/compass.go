package caddie

import (
	"fmt"
	"math"
)

// CompassReading is the qualitative wind direction relative to where the
// player is facing.
type CompassReading struct {
	HeadingDeg  Degrees   `json:"heading_deg"`
	WindFromDeg Degrees   `json:"wind_from_deg"`
	RelativeDeg Degrees   `json:"relative_deg"`
	Sector      int       `json:"sector"`
	Side        CrossSide `json:"side"`
	Phrase      string    `json:"phrase"`
}

// compassSectors is indexed by octant of the relative "toward" angle. Each
// sector spans [center-22.5, center+22.5). Sides follow CrossSide, so the
// overlay and the tips never describe the same wind differently.
var compassSectors = [8]struct {
	center float64
	phrase string
}{
	{0, "at your back"},
	{45, "helping, from the " + CrossRightToLeft.FromSide()},
	{90, "crosswind, " + CrossRightToLeft.Phrase()},
	{135, "hurting, from the " + CrossRightToLeft.FromSide()},
	{180, "into you"},
	{225, "hurting, from the " + CrossLeftToRight.FromSide()},
	{270, "crosswind, " + CrossLeftToRight.Phrase()},
	{315, "helping, from the " + CrossLeftToRight.FromSide()},
}

// CompassSector returns the octant index (0-7) for a relative angle.
func CompassSector(relative Degrees) int {
	return int(math.Floor(float64(relative.Normalize()+22.5)/45)) % 8
}

// ReadCompass classifies the wind against a device heading using the same
// from-to-toward conversion as ResolveWind.
func ReadCompass(heading, windFrom Degrees) CompassReading {
	rel := (Toward(windFrom) - heading.Normalize()).Normalize()
	sector := CompassSector(rel)
	center := Degrees(compassSectors[sector].center)
	return CompassReading{
		HeadingDeg:  heading.Normalize(),
		WindFromDeg: windFrom.Normalize(),
		RelativeDeg: rel,
		Sector:      sector,
		Side:        crossSideOf(math.Round(math.Sin(center.Radians())*1e9) / 1e9),
		Phrase:      compassSectors[sector].phrase,
	}
}

var cardinalPoints = [16]string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}

// Cardinal converts an angle to its 16-point compass name.
func Cardinal(d Degrees) string {
	index := int((float64(d.Normalize()) + 11.25) / 22.5)
	return cardinalPoints[index%16]
}

func (r CompassReading) String() string {
	return fmt.Sprintf("wind %s (from %s) %s", r.WindFromDeg, Cardinal(r.WindFromDeg), r.Phrase)
}
