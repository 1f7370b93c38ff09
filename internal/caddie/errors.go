package caddie

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHoleSelection means the hole number is absent or outside 1-18.
	ErrInvalidHoleSelection = errors.New("invalid hole selection")
	// ErrHoleDataMissing means the hole is valid but has no bearing on record.
	ErrHoleDataMissing = errors.New("hole data missing")
	// ErrWeatherUnavailable means the weather provider failed to answer.
	ErrWeatherUnavailable = errors.New("weather unavailable")
	// ErrProfileUnavailable means the player profile could not be read.
	ErrProfileUnavailable = errors.New("profile unavailable")
	// ErrMissingClubData means no carry distance exists for a club, from any source.
	ErrMissingClubData = errors.New("missing club data")
)

// HoleError ties a hole failure to the hole number that caused it.
type HoleError struct {
	Hole int
	Err  error
}

func (e *HoleError) Error() string {
	return fmt.Sprintf("hole %d: %v", e.Hole, e.Err)
}

func (e *HoleError) Unwrap() error { return e.Err }

// ClubError ties a club failure to the club name that was requested.
type ClubError struct {
	Club string
	Err  error
}

func (e *ClubError) Error() string {
	return fmt.Sprintf("club %q: %v", e.Club, e.Err)
}

func (e *ClubError) Unwrap() error { return e.Err }
