package services

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/weather-caddie/internal/caddie"
	"github.com/stitts-dev/weather-caddie/internal/preferences"
	"github.com/stitts-dev/weather-caddie/internal/profile"
	"github.com/stitts-dev/weather-caddie/pkg/logger"
)

// CourseData is the slice of course.Course the advice path reads.
type CourseData interface {
	Hole(number int) (caddie.HoleGeometry, error)
	Yardage(teeIndex, number int) (caddie.Yards, bool)
}

// PreferenceStore persists last-used inputs.
type PreferenceStore interface {
	Load(ctx context.Context) (*preferences.Preferences, error)
	Save(ctx context.Context, p *preferences.Preferences) error
}

// CarrySource records where a club's carry came from.
type CarrySource string

const (
	CarryFromRequest     CarrySource = "request"
	CarryFromProfile     CarrySource = "profile"
	CarryFromPreferences CarrySource = "preferences"
	CarryFromDefault     CarrySource = "default"
)

// AdviceRequest is one ask for tips. Nil pointers mean "not supplied".
type AdviceRequest struct {
	Hole        int
	Bearing     *float64
	DriverCarry *float64
	IronCarry   *float64
	NextHour    bool
	ProfileID   string
	TeeIndex    *int
}

// AdviceResponse is the advice together with the inputs it was built from.
type AdviceResponse struct {
	Advice       *caddie.AdviceResult    `json:"advice"`
	Weather      *caddie.WeatherSnapshot `json:"weather"`
	DriverSource CarrySource             `json:"driver_source"`
	IronSource   CarrySource             `json:"iron_source"`
	Profile      string                  `json:"profile,omitempty"`
}

// CarryDefaults are the configured last-resort carries; zero disables one.
type CarryDefaults struct {
	Driver float64
	Iron   float64
}

// AdviceService resolves the inputs for a hole and runs the advisor.
type AdviceService struct {
	advisor        *caddie.Advisor
	course         CourseData
	weather        WeatherSource
	profiles       profile.Source
	aliases        profile.AliasTable
	prefs          PreferenceStore
	defaults       CarryDefaults
	defaultProfile string
}

// NewAdviceService wires the advice path. prefs and profiles may be nil.
func NewAdviceService(
	advisor *caddie.Advisor,
	course CourseData,
	weather WeatherSource,
	profiles profile.Source,
	prefs PreferenceStore,
	defaults CarryDefaults,
	defaultProfile string,
) *AdviceService {
	return &AdviceService{
		advisor:        advisor,
		course:         course,
		weather:        weather,
		profiles:       profiles,
		aliases:        profile.DefaultAliases(),
		prefs:          prefs,
		defaults:       defaults,
		defaultProfile: defaultProfile,
	}
}

// ClampBearing limits a manually entered bearing to [0,359].
func ClampBearing(b float64) float64 {
	return math.Min(359, math.Max(0, b))
}

// GetAdvice validates the hole, resolves carries and weather, builds the
// advice and records the inputs as the new preferences.
func (s *AdviceService) GetAdvice(ctx context.Context, req AdviceRequest) (*AdviceResponse, error) {
	if err := caddie.ValidateHoleNumber(req.Hole); err != nil {
		return nil, err
	}

	hole, err := s.resolveHole(req)
	if err != nil {
		return nil, err
	}
	bearing, err := hole.Bearing()
	if err != nil {
		return nil, err
	}
	log := logger.WithHoleContext(req.Hole, float64(bearing))

	prefs := s.loadPreferences(ctx, log)
	profileID := req.ProfileID
	if profileID == "" {
		profileID = prefs.ActiveProfile
	}
	if profileID == "" {
		profileID = s.defaultProfile
	}
	bag := s.loadProfile(ctx, profileID, log)

	driver, driverSource := s.resolveClub(req.DriverCarry, bag, profile.Driver, prefs.DriverCarry, s.defaults.Driver)
	iron, ironSource := s.resolveClub(req.IronCarry, bag, profile.SevenIron, prefs.IronCarry, s.defaults.Iron)
	if driver == nil {
		return nil, &caddie.ClubError{Club: profile.Driver, Err: caddie.ErrMissingClubData}
	}
	if iron == nil {
		return nil, &caddie.ClubError{Club: profile.SevenIron, Err: caddie.ErrMissingClubData}
	}

	snapshot, err := s.weather.GetSnapshot(ctx, req.NextHour)
	if err != nil {
		return nil, err
	}

	advice, err := s.advisor.BuildAdvice(hole, *snapshot, driver, iron)
	if err != nil {
		return nil, err
	}

	// an unreadable profile must not change which bag later calls use
	active := prefs.ActiveProfile
	if req.ProfileID != "" && bag != nil {
		active = req.ProfileID
	}
	s.savePreferences(ctx, log, driver, iron, bearing, active)

	log.WithFields(logrus.Fields{
		"head_tail_mph": float64(advice.Wind.HeadTailMph),
		"cross_mph":     float64(advice.Wind.CrossMph),
		"driver_source": driverSource,
		"iron_source":   ironSource,
		"green":         advice.GreenNote,
	}).Info("Built advice")

	resp := &AdviceResponse{
		Advice:       advice,
		Weather:      snapshot,
		DriverSource: driverSource,
		IronSource:   ironSource,
	}
	if bag != nil {
		resp.Profile = profileID
	}
	return resp, nil
}

func (s *AdviceService) resolveHole(req AdviceRequest) (caddie.HoleGeometry, error) {
	var hole caddie.HoleGeometry
	if req.Bearing != nil && !math.IsNaN(*req.Bearing) {
		hole = caddie.NewHoleGeometry(req.Hole, caddie.Degrees(ClampBearing(*req.Bearing)))
	} else {
		var err error
		hole, err = s.course.Hole(req.Hole)
		if err != nil {
			return caddie.HoleGeometry{}, err
		}
	}
	if req.TeeIndex != nil {
		if yards, ok := s.course.Yardage(*req.TeeIndex, req.Hole); ok {
			hole.Yardage = yards
		}
	}
	return hole, nil
}

// resolveClub walks request, profile, preferences then configured default.
func (s *AdviceService) resolveClub(explicit *float64, bag *profile.Profile, name string, saved, fallback float64) (*caddie.ClubProfile, CarrySource) {
	if explicit != nil && usableCarry(*explicit) {
		club := caddie.CarryOnlyClub(name, caddie.Yards(*explicit))
		return &club, CarryFromRequest
	}
	if found := bag.Find(s.aliases, name); found.Found {
		club := found.Club
		return &club, CarryFromProfile
	}
	if usableCarry(saved) {
		club := caddie.CarryOnlyClub(name, caddie.Yards(saved))
		return &club, CarryFromPreferences
	}
	if usableCarry(fallback) {
		club := caddie.CarryOnlyClub(name, caddie.Yards(fallback))
		return &club, CarryFromDefault
	}
	return nil, ""
}

func usableCarry(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func (s *AdviceService) loadPreferences(ctx context.Context, log *logrus.Entry) *preferences.Preferences {
	if s.prefs == nil {
		return &preferences.Preferences{}
	}
	p, err := s.prefs.Load(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to load preferences, continuing without them")
		return &preferences.Preferences{}
	}
	return p
}

func (s *AdviceService) loadProfile(ctx context.Context, id string, log *logrus.Entry) *profile.Profile {
	if s.profiles == nil || id == "" {
		return nil
	}
	p, err := s.profiles.Load(ctx, id)
	if err != nil {
		log.WithError(err).WithField("profile", id).Warn("Profile unavailable, falling back to saved carries")
		return nil
	}
	return p
}

func (s *AdviceService) savePreferences(ctx context.Context, log *logrus.Entry, driver, iron *caddie.ClubProfile, bearing caddie.Degrees, activeProfile string) {
	if s.prefs == nil {
		return
	}
	b := float64(bearing)
	p := &preferences.Preferences{
		DriverCarry:   float64(driver.AverageCarryYards),
		IronCarry:     float64(iron.AverageCarryYards),
		LastBearing:   &b,
		ActiveProfile: activeProfile,
	}
	if err := s.prefs.Save(ctx, p); err != nil {
		log.WithError(err).Warn("Failed to save preferences")
	}
}
