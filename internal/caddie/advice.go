package caddie

import (
	"fmt"
	"math"
)

// ClubAdjustment is the advice for one club under the current wind.
type ClubAdjustment struct {
	Club            ClubProfile  `json:"club"`
	Class           ClubClass    `json:"class"`
	CarryDeltaYards Yards        `json:"carry_delta_yards"`
	CarryDeltaPct   Percent      `json:"carry_delta_pct"`
	AimOffsetYards  Yards        `json:"aim_offset_yards"`
	AimDirection    AimDirection `json:"aim_direction"`
}

// AdjustedCarry is the expected carry after the adjustment.
func (a ClubAdjustment) AdjustedCarry() Yards {
	return a.Club.AverageCarryYards + a.CarryDeltaYards
}

// AdviceResult is the full recommendation for one hole. It is rebuilt on
// every request and never cached.
type AdviceResult struct {
	Hole             HoleGeometry   `json:"hole"`
	Wind             WindComponents `json:"wind"`
	DriverAdjustment ClubAdjustment `json:"driver_adjustment"`
	IronAdjustment   ClubAdjustment `json:"iron_adjustment"`
	GreenNote        GreenSpeed     `json:"green_note"`
}

// Advisor composes the wind, carry, aim and green models with a fixed set
// of coefficients.
type Advisor struct {
	coeff Coefficients
}

// NewAdvisor validates and takes a private copy of the coefficients.
func NewAdvisor(coeff Coefficients) (*Advisor, error) {
	if err := coeff.Validate(); err != nil {
		return nil, fmt.Errorf("invalid coefficients: %w", err)
	}
	wind := make(map[ClubClass]float64, len(coeff.WindPerMph))
	for class, v := range coeff.WindPerMph {
		wind[class] = v
	}
	coeff.WindPerMph = wind
	return &Advisor{coeff: coeff.Finalize()}, nil
}

// AdjustClub computes carry and aim changes for a single club.
func (a *Advisor) AdjustClub(club *ClubProfile, class ClubClass, wind WindComponents, temperature Fahrenheit) (ClubAdjustment, error) {
	if club == nil {
		return ClubAdjustment{}, &ClubError{Club: string(class), Err: ErrMissingClubData}
	}
	carry := float64(club.AverageCarryYards)
	if carry <= 0 || math.IsNaN(carry) || math.IsInf(carry, 0) {
		return ClubAdjustment{}, &ClubError{Club: club.Name, Err: ErrMissingClubData}
	}

	pct, err := a.coeff.CarryPct(wind.HeadTailMph, temperature, class)
	if err != nil {
		return ClubAdjustment{}, err
	}
	offset := a.coeff.CrossAimYards(wind.CrossMph, club.AverageCarryYards)

	return ClubAdjustment{
		Club:            *club,
		Class:           class,
		CarryDeltaYards: CarryDelta(club.AverageCarryYards, pct),
		CarryDeltaPct:   pct,
		AimOffsetYards:  offset,
		AimDirection:    AimFor(offset),
	}, nil
}

// BuildAdvice resolves the wind once against the hole, adjusts the driver
// and the iron, and classifies the greens. Missing inputs are reported as
// ErrInvalidHoleSelection, ErrHoleDataMissing or ErrMissingClubData; no
// distance is ever substituted.
func (a *Advisor) BuildAdvice(hole HoleGeometry, weather WeatherSnapshot, driver, iron *ClubProfile) (*AdviceResult, error) {
	bearing, err := hole.Bearing()
	if err != nil {
		return nil, err
	}
	weather, err = weather.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid weather snapshot: %w", err)
	}

	wind := ResolveWind(weather.WindSpeedMph, weather.WindFromDeg, bearing)

	driverAdj, err := a.AdjustClub(driver, ClassDriver, wind, weather.TemperatureF)
	if err != nil {
		return nil, err
	}
	ironAdj, err := a.AdjustClub(iron, ClassIron, wind, weather.TemperatureF)
	if err != nil {
		return nil, err
	}

	hole.BearingDeg = &bearing
	return &AdviceResult{
		Hole:             hole,
		Wind:             wind,
		DriverAdjustment: driverAdj,
		IronAdjustment:   ironAdj,
		GreenNote:        a.coeff.ClassifyGreens(weather.RainLastHourMm, weather.RelativeHumidityPct, weather.WindSpeedMph),
	}, nil
}
