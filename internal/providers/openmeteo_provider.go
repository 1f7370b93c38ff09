package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/stitts-dev/weather-caddie/internal/caddie"
)

const openMeteoBaseURL = "https://api.open-meteo.com/v1"

// openMeteoTimeLayout is the local-time format Open-Meteo uses when a
// timezone is requested.
const openMeteoTimeLayout = "2006-01-02T15:04"

// OpenMeteoProvider fetches current and hourly conditions from Open-Meteo.
// No API key is needed.
type OpenMeteoProvider struct {
	client    *http.Client
	baseURL   string
	rateLimit *rate.Limiter
}

// OpenMeteoResponse represents the parts of the forecast API we read
type OpenMeteoResponse struct {
	Current *struct {
		Time               string   `json:"time"`
		Temperature2m      float64  `json:"temperature_2m"`
		RelativeHumidity2m float64  `json:"relative_humidity_2m"`
		WindSpeed10m       float64  `json:"wind_speed_10m"`
		WindDirection10m   float64  `json:"wind_direction_10m"`
		Precipitation      *float64 `json:"precipitation"`
	} `json:"current"`
	Hourly struct {
		Time               []string   `json:"time"`
		Temperature2m      []float64  `json:"temperature_2m"`
		RelativeHumidity2m []float64  `json:"relative_humidity_2m"`
		WindSpeed10m       []float64  `json:"wind_speed_10m"`
		WindDirection10m   []float64  `json:"wind_direction_10m"`
		Precipitation      []*float64 `json:"precipitation"`
	} `json:"hourly"`
}

// NewOpenMeteoProvider creates a new Open-Meteo client
func NewOpenMeteoProvider(opts ProviderOptions) *OpenMeteoProvider {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = openMeteoBaseURL
	}
	return &OpenMeteoProvider{
		client:    opts.client(),
		baseURL:   baseURL,
		rateLimit: opts.limiter(),
	}
}

// Name identifies the provider in logs and cache keys.
func (p *OpenMeteoProvider) Name() string {
	return "openmeteo"
}

// GetSnapshot returns current conditions, or the next forecast hour when
// nextHour is set.
func (p *OpenMeteoProvider) GetSnapshot(ctx context.Context, location WeatherLocation, nextHour bool) (*caddie.WeatherSnapshot, error) {
	if err := p.rateLimit.Wait(ctx); err != nil {
		return nil, unavailable("rate limiter: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.buildForecastURL(location), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, unavailable("failed to fetch weather data: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unavailable("weather API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unavailable("failed to read weather response: %v", err)
	}

	var forecast OpenMeteoResponse
	if err := json.Unmarshal(body, &forecast); err != nil {
		return nil, unavailable("failed to parse weather response: %v", err)
	}

	loc := time.UTC
	if location.Timezone != "" {
		if l, err := time.LoadLocation(location.Timezone); err == nil {
			loc = l
		}
	}

	if !nextHour && forecast.Current != nil {
		return p.convertCurrent(&forecast, loc)
	}
	return p.convertHourly(&forecast, loc)
}

func (p *OpenMeteoProvider) buildForecastURL(location WeatherLocation) string {
	params := url.Values{}
	params.Add("latitude", strconv.FormatFloat(location.Latitude, 'f', 4, 64))
	params.Add("longitude", strconv.FormatFloat(location.Longitude, 'f', 4, 64))
	params.Add("current", "temperature_2m,relative_humidity_2m,pressure_msl,wind_speed_10m,wind_direction_10m,precipitation")
	params.Add("hourly", "temperature_2m,relative_humidity_2m,wind_speed_10m,wind_direction_10m,precipitation")
	params.Add("wind_speed_unit", "mph")
	params.Add("temperature_unit", "fahrenheit")
	if location.Timezone != "" {
		params.Add("timezone", location.Timezone)
	}

	return fmt.Sprintf("%s/forecast?%s", p.baseURL, params.Encode())
}

func (p *OpenMeteoProvider) convertCurrent(resp *OpenMeteoResponse, loc *time.Location) (*caddie.WeatherSnapshot, error) {
	c := resp.Current
	snapshot := caddie.WeatherSnapshot{
		TemperatureF:        caddie.Fahrenheit(c.Temperature2m),
		RelativeHumidityPct: c.RelativeHumidity2m,
		WindSpeedMph:        caddie.MPH(c.WindSpeed10m),
		WindFromDeg:         caddie.Degrees(c.WindDirection10m),
		RainLastHourMm:      valueOrZero(c.Precipitation),
		Timestamp:           parseLocalTime(c.Time, loc),
	}
	return validated(snapshot)
}

// convertHourly picks the hour after the current time, clamped to the
// series. When the current time is not an hourly slot the first hour is used.
func (p *OpenMeteoProvider) convertHourly(resp *OpenMeteoResponse, loc *time.Location) (*caddie.WeatherSnapshot, error) {
	h := resp.Hourly
	n := len(h.Time)
	if n == 0 {
		return nil, unavailable("weather response has no hourly data")
	}
	if len(h.Temperature2m) < n || len(h.RelativeHumidity2m) < n || len(h.WindSpeed10m) < n || len(h.WindDirection10m) < n {
		return nil, unavailable("weather response has ragged hourly series")
	}

	nowISO := h.Time[0]
	if resp.Current != nil && resp.Current.Time != "" {
		nowISO = resp.Current.Time
	}
	idxNow := -1
	for i, t := range h.Time {
		if t == nowISO {
			idxNow = i
			break
		}
	}
	idx := idxNow + 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}

	var rain float64
	if idx < len(h.Precipitation) {
		rain = valueOrZero(h.Precipitation[idx])
	}

	snapshot := caddie.WeatherSnapshot{
		TemperatureF:        caddie.Fahrenheit(h.Temperature2m[idx]),
		RelativeHumidityPct: h.RelativeHumidity2m[idx],
		WindSpeedMph:        caddie.MPH(h.WindSpeed10m[idx]),
		WindFromDeg:         caddie.Degrees(h.WindDirection10m[idx]),
		RainLastHourMm:      rain,
		Timestamp:           parseLocalTime(h.Time[idx], loc),
	}
	return validated(snapshot)
}

func validated(s caddie.WeatherSnapshot) (*caddie.WeatherSnapshot, error) {
	s, err := s.Validate()
	if err != nil {
		return nil, unavailable("provider returned invalid data: %v", err)
	}
	return &s, nil
}

func parseLocalTime(value string, loc *time.Location) time.Time {
	if t, err := time.ParseInLocation(openMeteoTimeLayout, value, loc); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
