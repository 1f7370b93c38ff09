// Package caddie turns a weather snapshot, a hole bearing and a player's
// club carries into shot adjustment advice.
//
// Every value entering the package carries its unit in its type: wind in
// miles per hour, temperature in Fahrenheit, angles in compass degrees
// (clockwise from north), distances in yards and elevation in feet.
// Providers convert at their boundary so nothing here ever guesses a unit.
//
// The package holds no state and performs no I/O; every function is safe
// to call concurrently.
package caddie

import (
	"fmt"
	"math"
)

// MPH is a speed in miles per hour.
type MPH float64

// Fahrenheit is an air temperature in degrees Fahrenheit.
type Fahrenheit float64

// Degrees is a compass angle, clockwise from north.
type Degrees float64

// Yards is a distance in yards.
type Yards float64

// Feet is an elevation in feet above sea level.
type Feet float64

// Percent is a signed percentage (1.5 means +1.5%).
type Percent float64

func (s MPH) String() string        { return fmt.Sprintf("%.1f mph", float64(s)) }
func (t Fahrenheit) String() string { return fmt.Sprintf("%.1f°F", float64(t)) }
func (d Degrees) String() string    { return fmt.Sprintf("%.0f°", float64(d)) }
func (y Yards) String() string      { return fmt.Sprintf("%.0f yds", float64(y)) }
func (p Percent) String() string    { return fmt.Sprintf("%+.1f%%", float64(p)) }

// Normalize folds any angle into [0, 360).
func (d Degrees) Normalize() Degrees {
	n := math.Mod(float64(d), 360)
	if n < 0 {
		n += 360
	}
	// math.Mod(-1e-15, 360) + 360 rounds to exactly 360
	if n >= 360 {
		n = 0
	}
	return Degrees(n)
}

// Radians converts the angle for use with the math package.
func (d Degrees) Radians() float64 {
	return float64(d) * math.Pi / 180
}

// Fraction converts a percentage into a multiplier delta (1.5% -> 0.015).
func (p Percent) Fraction() float64 {
	return float64(p) / 100
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	f := math.Pow(10, float64(places))
	return math.Round(v*f) / f
}
