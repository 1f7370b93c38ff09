package caddie

// AimDirection is where the player should start the ball relative to the
// target.
type AimDirection string

const (
	AimLeft  AimDirection = "left"
	AimRight AimDirection = "right"
	AimNone  AimDirection = "none"
)

// Phrase renders the directive as a caddie would say it.
func (a AimDirection) Phrase() string {
	switch a {
	case AimRight:
		return "start it right"
	case AimLeft:
		return "start it left"
	}
	return "aim straight"
}

// CrossAimYards is the lateral aim offset for a shot of the given length.
// Its sign always matches the cross component.
func (c Coefficients) CrossAimYards(cross MPH, shotDistance Yards) Yards {
	return Yards(float64(cross) * (float64(shotDistance) / 200) * c.CrossDriftPer200YdPerMph)
}

// AimFor maps a signed offset to a directive. A right-to-left wind
// (positive) drifts the ball left, so the ball starts right; the mapping
// follows CrossSide so tips and the compass always agree.
func AimFor(offset Yards) AimDirection {
	switch crossSideOf(float64(offset)) {
	case CrossRightToLeft:
		return AimRight
	case CrossLeftToRight:
		return AimLeft
	}
	return AimNone
}
