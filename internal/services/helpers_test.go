package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/weather-caddie/internal/caddie"
	"github.com/stitts-dev/weather-caddie/internal/course"
	"github.com/stitts-dev/weather-caddie/internal/preferences"
	"github.com/stitts-dev/weather-caddie/internal/profile"
	"github.com/stitts-dev/weather-caddie/internal/providers"
)

const testCourseJSON = `{
  "course": "Test Links",
  "latitude": 38.94,
  "longitude": -94.69,
  "elevation_ft": 1050,
  "timezone": "America/Chicago",
  "holes": [
    {"hole": 1, "bearing": 90},
    {"hole": 2, "bearing": 0},
    {"hole": 3, "bearing": null}
  ],
  "tees": [
    {"name": "Blue", "holes": [{"hole": 1, "par": 4, "yardage": 380}, {"hole": 2, "par": 3, "yardage": 170}]},
    {"name": "White", "holes": [{"hole": 1, "par": 4, "yardage": 350}, {"hole": 2, "par": 3, "yardage": 150}]}
  ]
}`

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testCourse(t *testing.T) *course.Course {
	t.Helper()
	c, err := course.Parse([]byte(testCourseJSON))
	require.NoError(t, err)
	return c
}

// tailwindSnapshot blows from the west at 10 mph, 70°F, dry.
func tailwindSnapshot() *caddie.WeatherSnapshot {
	return &caddie.WeatherSnapshot{
		TemperatureF:        70,
		RelativeHumidityPct: 60,
		WindSpeedMph:        10,
		WindFromDeg:         270,
		Timestamp:           time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC),
	}
}

type fakeProvider struct {
	mu       sync.Mutex
	snapshot *caddie.WeatherSnapshot
	err      error
	calls    int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) GetSnapshot(ctx context.Context, location providers.WeatherLocation, nextHour bool) (*caddie.WeatherSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	s := *f.snapshot
	return &s, nil
}

func (f *fakeProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeWeather struct {
	snapshot *caddie.WeatherSnapshot
	err      error
	calls    int
	refresh  error
}

func (f *fakeWeather) GetSnapshot(ctx context.Context, nextHour bool) (*caddie.WeatherSnapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

func (f *fakeWeather) Refresh(ctx context.Context) error {
	f.calls++
	return f.refresh
}

type memoryPrefs struct {
	prefs   *preferences.Preferences
	saved   int
	loadErr error
	saveErr error
	rounds  []*preferences.ActiveRound
}

func (m *memoryPrefs) Load(ctx context.Context) (*preferences.Preferences, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.prefs == nil {
		return &preferences.Preferences{}, nil
	}
	p := *m.prefs
	return &p, nil
}

func (m *memoryPrefs) Save(ctx context.Context, p *preferences.Preferences) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *p
	m.prefs = &cp
	m.saved++
	return nil
}

func (m *memoryPrefs) SaveRound(ctx context.Context, r *preferences.ActiveRound) error {
	m.rounds = append(m.rounds, r)
	return nil
}

func (m *memoryPrefs) ActiveRound(ctx context.Context) (*preferences.ActiveRound, error) {
	if len(m.rounds) == 0 {
		return nil, preferences.ErrNoActiveRound
	}
	return m.rounds[len(m.rounds)-1], nil
}

type memoryProfiles struct {
	profiles map[string]*profile.Profile
}

func (m *memoryProfiles) Load(ctx context.Context, id string) (*profile.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, errors.Join(caddie.ErrProfileUnavailable, errors.New(id))
	}
	return p, nil
}

func (m *memoryProfiles) Save(ctx context.Context, id string, p *profile.Profile) error {
	m.profiles[id] = p
	return nil
}

func testProfiles() *memoryProfiles {
	return &memoryProfiles{profiles: map[string]*profile.Profile{
		"patrick": {
			Owner: "patrick",
			Clubs: []caddie.ClubProfile{
				{Name: "Driver", AverageCarryYards: 250, AverageTotalYards: 270, DispersionYards: 18},
				{Name: "7 Iron", AverageCarryYards: 160, AverageTotalYards: 166, DispersionYards: 8},
			},
		},
		"irons-only": {
			Owner: "sam",
			Clubs: []caddie.ClubProfile{
				{Name: "7i", AverageCarryYards: 150, AverageTotalYards: 155, DispersionYards: 9},
			},
		},
	}}
}
