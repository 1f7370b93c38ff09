package caddie

import (
	"fmt"
	"math"
)

// WindComponents is the wind resolved against a line of play.
//
// HeadTailMph is positive for a tailwind and negative for a headwind.
// CrossMph is sin(toward - bearing) * speed; a positive value is reported
// as a right-to-left wind and a negative value as left-to-right. Every
// label and aim directive in this package derives from CrossSide, so the
// convention lives in one place.
type WindComponents struct {
	HeadTailMph MPH `json:"head_tail_mph"`
	CrossMph    MPH `json:"cross_mph"`
}

// CrossSide names the direction a cross component pushes the ball.
type CrossSide string

const (
	CrossRightToLeft CrossSide = "right_to_left"
	CrossLeftToRight CrossSide = "left_to_right"
	CrossNone        CrossSide = "none"
)

// Arrow is the compact form used in tips ("R→L").
func (s CrossSide) Arrow() string {
	switch s {
	case CrossRightToLeft:
		return "R→L"
	case CrossLeftToRight:
		return "L→R"
	}
	return "none"
}

// Phrase is the spoken form ("right to left").
func (s CrossSide) Phrase() string {
	switch s {
	case CrossRightToLeft:
		return "right to left"
	case CrossLeftToRight:
		return "left to right"
	}
	return "no crosswind"
}

// FromSide is the side of the player the wind comes from.
func (s CrossSide) FromSide() string {
	switch s {
	case CrossRightToLeft:
		return "right"
	case CrossLeftToRight:
		return "left"
	}
	return ""
}

// crossSideOf maps the sign of a cross value to a side.
func crossSideOf(cross float64) CrossSide {
	switch {
	case cross > 0:
		return CrossRightToLeft
	case cross < 0:
		return CrossLeftToRight
	}
	return CrossNone
}

// CrossSide reports which way the cross component blows.
func (w WindComponents) CrossSide() CrossSide {
	return crossSideOf(float64(w.CrossMph))
}

// IsTailwind reports whether the along-line component helps distance.
// A zero component counts as tail, matching how tips are phrased.
func (w WindComponents) IsTailwind() bool {
	return w.HeadTailMph >= 0
}

func (w WindComponents) String() string {
	kind := "tail"
	if !w.IsTailwind() {
		kind = "head"
	}
	return fmt.Sprintf("%.1f mph %s, %.1f mph %s",
		math.Abs(float64(w.HeadTailMph)), kind,
		math.Abs(float64(w.CrossMph)), w.CrossSide().Arrow())
}

// Toward converts a meteorological "from" direction to the direction the
// air is moving.
func Toward(windFrom Degrees) Degrees {
	return (windFrom.Normalize() + 180).Normalize()
}

// ResolveWind splits a wind vector into components along and across the
// hole bearing. Any real inputs are accepted; angles are normalized here.
func ResolveWind(speed MPH, windFrom, holeBearing Degrees) WindComponents {
	theta := (Toward(windFrom) - holeBearing.Normalize()).Radians()
	return WindComponents{
		HeadTailMph: MPH(snapZero(float64(speed) * math.Cos(theta))),
		CrossMph:    MPH(snapZero(float64(speed) * math.Sin(theta))),
	}
}

// snapZero clears trig residue such as sin(180°) so that a dead-straight
// wind reads as exactly zero across.
func snapZero(v float64) float64 {
	if math.Abs(v) < 1e-9 {
		return 0
	}
	return v
}
