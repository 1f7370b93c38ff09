// Package course reads static course data: location, elevation, per-hole
// bearings and tee yardages.
package course

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/stitts-dev/weather-caddie/internal/caddie"
)

// Course is the on-disk course description.
type Course struct {
	Name        string       `json:"course"`
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	ElevationFt caddie.Feet  `json:"elevation_ft"`
	Timezone    string       `json:"timezone"`
	Holes       []HoleRecord `json:"holes"`
	Tees        []Tee        `json:"tees"`
}

// HoleRecord carries the tee-to-green bearing for a hole. Bearing is nil
// until someone measures it.
type HoleRecord struct {
	Hole    int      `json:"hole"`
	Bearing *float64 `json:"bearing"`
}

// Tee is one set of tee markers.
type Tee struct {
	Name  string    `json:"name"`
	Holes []TeeHole `json:"holes"`
}

// TeeHole is a hole as played from a tee.
type TeeHole struct {
	Hole    int `json:"hole"`
	Par     int `json:"par,omitempty"`
	Yardage int `json:"yardage"`
}

// TotalYardage sums the yardage of every hole on the tee.
func (t Tee) TotalYardage() int {
	total := 0
	for _, h := range t.Holes {
		total += h.Yardage
	}
	return total
}

// Load reads and validates a course file.
func Load(path string) (*Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read course file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates course JSON.
func Parse(data []byte) (*Course, error) {
	var c Course
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse course: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks hole numbers and the timezone.
func (c *Course) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("course name is required")
	}
	if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("course %s: coordinates out of range", c.Name)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("course %s: invalid timezone %q: %w", c.Name, c.Timezone, err)
	}
	seen := make(map[int]bool, len(c.Holes))
	for _, h := range c.Holes {
		if err := caddie.ValidateHoleNumber(h.Hole); err != nil {
			return fmt.Errorf("course %s: %w", c.Name, err)
		}
		if seen[h.Hole] {
			return fmt.Errorf("course %s: hole %d listed twice", c.Name, h.Hole)
		}
		seen[h.Hole] = true
	}
	for _, tee := range c.Tees {
		for _, h := range tee.Holes {
			if err := caddie.ValidateHoleNumber(h.Hole); err != nil {
				return fmt.Errorf("course %s tee %s: %w", c.Name, tee.Name, err)
			}
		}
	}
	return nil
}

// Hole returns the geometry for a hole, failing with
// caddie.ErrInvalidHoleSelection or caddie.ErrHoleDataMissing.
func (c *Course) Hole(number int) (caddie.HoleGeometry, error) {
	if err := caddie.ValidateHoleNumber(number); err != nil {
		return caddie.HoleGeometry{}, err
	}
	for _, h := range c.Holes {
		if h.Hole == number && h.Bearing != nil {
			return caddie.NewHoleGeometry(number, caddie.Degrees(*h.Bearing)), nil
		}
	}
	return caddie.HoleGeometry{}, &caddie.HoleError{Hole: number, Err: caddie.ErrHoleDataMissing}
}

// Yardage returns the hole length from the given tee, if known.
func (c *Course) Yardage(teeIndex, number int) (caddie.Yards, bool) {
	if teeIndex < 0 || teeIndex >= len(c.Tees) {
		return 0, false
	}
	for _, h := range c.Tees[teeIndex].Holes {
		if h.Hole == number && h.Yardage > 0 {
			return caddie.Yards(h.Yardage), true
		}
	}
	return 0, false
}

// Bearings lists the known bearings keyed by hole.
func (c *Course) Bearings() map[int]caddie.Degrees {
	out := make(map[int]caddie.Degrees, len(c.Holes))
	for _, h := range c.Holes {
		if h.Bearing != nil {
			out[h.Hole] = caddie.Degrees(*h.Bearing).Normalize()
		}
	}
	return out
}

// Location returns the timezone the course reports local times in.
func (c *Course) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
