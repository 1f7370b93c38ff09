package caddie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompassSectorBoundaries(t *testing.T) {
	tests := []struct {
		relative Degrees
		want     int
	}{
		{0, 0},
		{22.49, 0},
		{22.5, 1},
		{67.49, 1},
		{67.5, 2},
		{112.5, 3},
		{157.5, 4},
		{202.5, 5},
		{247.5, 6},
		{292.5, 7},
		{337.49, 7},
		{337.5, 0},
		{359.99, 0},
		{-22.5, 0},
		{-22.51, 7},
		{720, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CompassSector(tt.relative), "relative=%v", float64(tt.relative))
	}
}

func TestReadCompass(t *testing.T) {
	tests := []struct {
		name     string
		heading  Degrees
		windFrom Degrees
		phrase   string
		side     CrossSide
	}{
		{"wind from behind", 0, 180, "at your back", CrossNone},
		{"wind in the face", 0, 0, "into you", CrossNone},
		{"toward the right of the player", 0, 270, "crosswind, right to left", CrossRightToLeft},
		{"toward the left of the player", 0, 90, "crosswind, left to right", CrossLeftToRight},
		{"helping quarter", 0, 225, "helping, from the right", CrossRightToLeft},
		{"hurting quarter", 0, 315, "hurting, from the right", CrossRightToLeft},
		{"hurting other quarter", 0, 45, "hurting, from the left", CrossLeftToRight},
		{"helping other quarter", 0, 135, "helping, from the left", CrossLeftToRight},
		{"heading rotates the frame", 90, 270, "at your back", CrossNone},
		{"edge belongs to the next sector", 0, 202.5, "helping, from the right", CrossRightToLeft},
		{"just inside the tail sector", 0, 202.4, "at your back", CrossNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading := ReadCompass(tt.heading, tt.windFrom)
			assert.Equal(t, tt.phrase, reading.Phrase)
			assert.Equal(t, tt.side, reading.Side)
		})
	}
}

func TestCompassAgreesWithResolvedWind(t *testing.T) {
	for bearing := 0.0; bearing < 360; bearing += 15 {
		for from := 0.0; from < 360; from += 10 {
			wind := ResolveWind(12, Degrees(from), Degrees(bearing))
			reading := ReadCompass(Degrees(bearing), Degrees(from))
			if reading.Side != CrossNone && abs(float64(wind.CrossMph)) > 1e-6 {
				assert.Equal(t, wind.CrossSide(), reading.Side, "bearing=%v from=%v", bearing, from)
			}
		}
	}
}

func TestCardinal(t *testing.T) {
	assert.Equal(t, "N", Cardinal(0))
	assert.Equal(t, "N", Cardinal(11.24))
	assert.Equal(t, "NNE", Cardinal(11.25))
	assert.Equal(t, "W", Cardinal(270))
	assert.Equal(t, "N", Cardinal(355))
	assert.Equal(t, "NNW", Cardinal(337.5))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
