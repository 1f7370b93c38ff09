package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/weather-caddie/internal/api/handlers"
	"github.com/stitts-dev/weather-caddie/internal/caddie"
	"github.com/stitts-dev/weather-caddie/internal/course"
	"github.com/stitts-dev/weather-caddie/internal/preferences"
	"github.com/stitts-dev/weather-caddie/internal/profile"
	"github.com/stitts-dev/weather-caddie/internal/services"
	"github.com/stitts-dev/weather-caddie/internal/utils"
	"github.com/stitts-dev/weather-caddie/pkg/database"
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
    {"name": "Blue", "holes": [{"hole": 1, "par": 4, "yardage": 380}, {"hole": 2, "par": 3, "yardage": 170}]}
  ]
}`

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// stubWeather serves a fixed snapshot or a fixed error.
type stubWeather struct {
	snapshot *caddie.WeatherSnapshot
	err      error
}

func (s *stubWeather) GetSnapshot(ctx context.Context, nextHour bool) (*caddie.WeatherSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	snap := *s.snapshot
	return &snap, nil
}

type testEnv struct {
	router  *gin.Engine
	weather *stubWeather
	prefs   *preferences.Store
}

func setupTestEnvironment(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := course.Parse([]byte(testCourseJSON))
	require.NoError(t, err)

	db, err := database.NewConnection(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	prefs, err := preferences.NewStore(db)
	require.NoError(t, err)

	profiles := profile.NewFileSource(t.TempDir())
	require.NoError(t, profiles.Save(context.Background(), "patrick", &profile.Profile{
		Owner: "patrick",
		Clubs: []caddie.ClubProfile{
			{Name: "Driver", AverageCarryYards: 250, AverageTotalYards: 270, DispersionYards: 18},
			{Name: "7 Iron", AverageCarryYards: 160, AverageTotalYards: 166, DispersionYards: 8},
		},
	}))

	// westerly wind: straight down hole 1
	weather := &stubWeather{snapshot: &caddie.WeatherSnapshot{
		TemperatureF:        70,
		RelativeHumidityPct: 55,
		WindSpeedMph:        10,
		WindFromDeg:         270,
		Timestamp:           time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC),
	}}

	coeff := caddie.DefaultCoefficients(c.ElevationFt)
	advisor, err := caddie.NewAdvisor(coeff)
	require.NoError(t, err)

	log := testLogger()
	health := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(context.Context) error { return db.HealthCheck() }),
	}, nil)

	router := gin.New()
	router.Use(utils.RequestID())
	SetupRoutes(router, Dependencies{
		Course:       c,
		Coefficients: coeff,
		Weather:      weather,
		Advice:       services.NewAdviceService(advisor, c, weather, profiles, prefs, services.CarryDefaults{}, "patrick"),
		Profiles:     profiles,
		Preferences:  prefs,
		Rounds:       services.NewRoundService(c, profiles, prefs, "patrick", log),
		Chat:         services.NewChatService(profiles, "patrick"),
		Health:       health,
	})

	return &testEnv{router: router, weather: weather, prefs: prefs}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAdviceEndpoint(t *testing.T) {
	env := setupTestEnvironment(t)

	t.Run("Profile carries with tailwind", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/advice?hole=1", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Advice       caddie.AdviceResult `json:"advice"`
			DriverSource string              `json:"driver_source"`
			IronSource   string              `json:"iron_source"`
			Tips         string              `json:"tips"`
		}
		decodeData(t, w, &resp)
		assert.Equal(t, "profile", resp.DriverSource)
		assert.Equal(t, "profile", resp.IronSource)
		assert.InDelta(t, 10, float64(resp.Advice.Wind.HeadTailMph), 1e-9)
		assert.InDelta(t, 0, float64(resp.Advice.Wind.CrossMph), 1e-9)
		assert.Greater(t, float64(resp.Advice.DriverAdjustment.CarryDeltaYards), 0.0)
		assert.Contains(t, resp.Tips, "Hole 1")
	})

	t.Run("Explicit carries are remembered", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/advice?hole=2&driver=230&iron=150&bearing=400", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		p, err := env.prefs.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 230.0, p.DriverCarry)
		assert.Equal(t, 150.0, p.IronCarry)
		require.NotNil(t, p.LastBearing)
		assert.Equal(t, 359.0, *p.LastBearing)
	})

	t.Run("Error mapping", func(t *testing.T) {
		tests := []struct {
			path   string
			status int
			kind   string
		}{
			{"/api/v1/advice", http.StatusBadRequest, "invalid_hole_selection"},
			{"/api/v1/advice?hole=19", http.StatusBadRequest, "invalid_hole_selection"},
			{"/api/v1/advice?hole=3", http.StatusNotFound, "hole_data_missing"},
			{"/api/v1/advice?hole=abc", http.StatusBadRequest, ""},
			{"/api/v1/advice?hole=1&when=later", http.StatusBadRequest, ""},
		}
		for _, tt := range tests {
			w := env.do(t, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.status, w.Code, tt.path)
			assert.Equal(t, tt.kind, decodeError(t, w).Kind, tt.path)
		}
	})
}

func TestAdviceEndpointMissingClubWithFreshPreferences(t *testing.T) {
	env := setupTestEnvironment(t)

	w := env.do(t, http.MethodGet, "/api/v1/advice?hole=1&profile=nobody", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, profile.Driver, resp.Club)
}

func TestWeatherEndpoints(t *testing.T) {
	env := setupTestEnvironment(t)

	w := env.do(t, http.MethodGet, "/api/v1/weather?when=next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		WindFromDeg float64 `json:"wind_from_deg"`
		NextHour    bool    `json:"next_hour"`
		Summary     string  `json:"summary"`
	}
	decodeData(t, w, &resp)
	assert.Equal(t, 270.0, resp.WindFromDeg)
	assert.True(t, resp.NextHour)
	assert.Contains(t, resp.Summary, "Test Links")

	env.weather.err = caddie.ErrWeatherUnavailable
	w = env.do(t, http.MethodGet, "/api/v1/weather", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "weather_unavailable", decodeError(t, w).Kind)

	w = env.do(t, http.MethodGet, "/api/v1/advice?hole=1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUnexpectedErrorsAreHidden(t *testing.T) {
	env := setupTestEnvironment(t)
	env.weather.err = errors.New("dial tcp: secret-host refused")

	w := env.do(t, http.MethodGet, "/api/v1/weather", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret-host")
}

func TestCourseEndpoint(t *testing.T) {
	env := setupTestEnvironment(t)

	w := env.do(t, http.MethodGet, "/api/v1/course", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Name     string             `json:"course"`
		Bearings map[string]float64 `json:"bearings"`
		Tees     []struct {
			Name         string `json:"name"`
			TotalYardage int    `json:"total_yardage"`
		} `json:"tees"`
	}
	decodeData(t, w, &resp)
	assert.Equal(t, "Test Links", resp.Name)
	assert.Equal(t, 90.0, resp.Bearings["1"])
	require.Len(t, resp.Tees, 1)
	assert.Equal(t, 550, resp.Tees[0].TotalYardage)
}

func TestProfileEndpoints(t *testing.T) {
	env := setupTestEnvironment(t)

	w := env.do(t, http.MethodGet, "/api/v1/profiles/patrick", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/profiles/nobody", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	club := caddie.ClubProfile{Name: "9i", AverageCarryYards: 140, AverageTotalYards: 145, DispersionYards: 6}
	w = env.do(t, http.MethodPost, "/api/v1/profiles/patrick/clubs", club)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p profile.Profile
	decodeData(t, w, &p)
	assert.Len(t, p.Clubs, 3)

	w = env.do(t, http.MethodPost, "/api/v1/profiles/newbie/clubs", club)
	require.Equal(t, http.StatusCreated, w.Code)
	decodeData(t, w, &p)
	assert.Equal(t, "newbie", p.Owner)

	bad := caddie.ClubProfile{Name: "Driver", AverageCarryYards: 250, AverageTotalYards: 240}
	w = env.do(t, http.MethodPost, "/api/v1/profiles/patrick/clubs", bad)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/profiles/Bad%20ID/clubs", club)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreferencesEndpoints(t *testing.T) {
	env := setupTestEnvironment(t)

	bearing := 512.0
	w := env.do(t, http.MethodPut, "/api/v1/preferences", handlers.UpdatePreferencesRequest{
		DriverCarry: 240, IronCarry: 155, LastBearing: &bearing,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/preferences", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p preferences.Preferences
	decodeData(t, w, &p)
	assert.Equal(t, 240.0, p.DriverCarry)
	require.NotNil(t, p.LastBearing)
	assert.Equal(t, 359.0, *p.LastBearing)

	w = env.do(t, http.MethodPut, "/api/v1/preferences", handlers.UpdatePreferencesRequest{DriverCarry: -1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// saved carries now back the advice when the profile has no clubs
	w = env.do(t, http.MethodGet, "/api/v1/advice?hole=1&profile=nobody", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		DriverSource string `json:"driver_source"`
	}
	decodeData(t, w, &resp)
	assert.Equal(t, "preferences", resp.DriverSource)
}

func TestRoundEndpoints(t *testing.T) {
	env := setupTestEnvironment(t)

	w := env.do(t, http.MethodGet, "/api/v1/rounds/active", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/rounds", services.StartRoundRequest{TeeIndex: 3})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/rounds", services.StartRoundRequest{
		TeeIndex: 0, GoalScore: 85, PlanFirst3: "fairways first",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created preferences.ActiveRound
	decodeData(t, w, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Blue", created.Tee)

	w = env.do(t, http.MethodGet, "/api/v1/rounds/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var active preferences.ActiveRound
	decodeData(t, w, &active)
	assert.Equal(t, created.ID, active.ID)
	assert.Len(t, active.Holes, 2)
}

func TestChatEndpoint(t *testing.T) {
	env := setupTestEnvironment(t)

	w := env.do(t, http.MethodPost, "/api/v1/chat", handlers.ChatRequest{Question: "What's my 7 iron?"})
	require.Equal(t, http.StatusOK, w.Code)
	var reply services.ChatReply
	decodeData(t, w, &reply)
	assert.Equal(t, "Your 7-iron carry ~160 yds (±8).", reply.Answer)

	w = env.do(t, http.MethodPost, "/api/v1/chat", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompassEndpoint(t *testing.T) {
	env := setupTestEnvironment(t)

	tests := []struct {
		path   string
		phrase string
	}{
		{"/api/v1/compass?heading=90", "at your back"},
		{"/api/v1/compass?heading=270", "into you"},
		{"/api/v1/compass?heading=0&wind_from=180", "at your back"},
		{"/api/v1/compass?heading=0&wind_from=0", "into you"},
	}
	for _, tt := range tests {
		w := env.do(t, http.MethodGet, tt.path, nil)
		require.Equal(t, http.StatusOK, w.Code, tt.path)
		var resp handlers.CompassResponse
		decodeData(t, w, &resp)
		assert.Equal(t, tt.phrase, resp.Phrase, tt.path)
		assert.NotEmpty(t, resp.Text)
	}

	w := env.do(t, http.MethodGet, "/api/v1/compass?heading=north", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompassStream(t *testing.T) {
	env := setupTestEnvironment(t)
	server := httptest.NewServer(env.router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/compass"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	heading := 90.0
	require.NoError(t, conn.WriteJSON(handlers.CompassMessage{Heading: &heading}))
	var resp handlers.CompassResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "at your back", resp.Phrase)
	assert.Empty(t, resp.Error)

	// a bad message is answered, not fatal
	require.NoError(t, conn.WriteJSON(map[string]string{}))
	resp = handlers.CompassResponse{}
	require.NoError(t, conn.ReadJSON(&resp))
	assert.NotEmpty(t, resp.Error)

	windFrom := 90.0
	require.NoError(t, conn.WriteJSON(handlers.CompassMessage{Heading: &heading, WindFrom: &windFrom}))
	resp = handlers.CompassResponse{}
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "into you", resp.Phrase)
}

func TestHealthEndpoints(t *testing.T) {
	env := setupTestEnvironment(t)

	w := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)
}

func TestReadyReportsFailingDependency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"cache": handlers.PingFunc(func(context.Context) error { return errors.New("connection refused") }),
	}, warmStatus{err: errors.New("provider down")})
	router.GET("/ready", h.GetReady)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), "provider down")
}

type warmStatus struct {
	err error
}

func (s warmStatus) Status() (time.Time, error) {
	return time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC), s.err
}
