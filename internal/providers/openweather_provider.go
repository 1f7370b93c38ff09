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

const openWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherProvider implements weather data retrieval from OpenWeatherMap API
type OpenWeatherProvider struct {
	client    *http.Client
	apiKey    string
	baseURL   string
	rateLimit *rate.Limiter
}

type openWeatherConditions struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Rain struct {
		OneHour   float64 `json:"1h"`
		ThreeHour float64 `json:"3h"`
	} `json:"rain"`
}

// OpenWeatherForecastResponse is the 3-hourly forecast list
type OpenWeatherForecastResponse struct {
	List []openWeatherConditions `json:"list"`
}

// NewOpenWeatherProvider creates a new OpenWeather API client
func NewOpenWeatherProvider(opts ProviderOptions) *OpenWeatherProvider {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = openWeatherBaseURL
	}
	return &OpenWeatherProvider{
		client:    opts.client(),
		apiKey:    opts.APIKey,
		baseURL:   baseURL,
		rateLimit: opts.limiter(),
	}
}

// Name identifies the provider in logs and cache keys.
func (p *OpenWeatherProvider) Name() string {
	return "openweather"
}

// GetSnapshot retrieves current conditions, or the first forecast slot
// when nextHour is set.
func (p *OpenWeatherProvider) GetSnapshot(ctx context.Context, location WeatherLocation, nextHour bool) (*caddie.WeatherSnapshot, error) {
	if p.apiKey == "" {
		return nil, unavailable("OpenWeather API key not configured")
	}
	if err := p.rateLimit.Wait(ctx); err != nil {
		return nil, unavailable("rate limiter: %v", err)
	}

	endpoint := "weather"
	if nextHour {
		endpoint = "forecast"
	}
	body, err := p.fetch(ctx, endpoint, location)
	if err != nil {
		return nil, err
	}

	var conditions openWeatherConditions
	if nextHour {
		var forecast OpenWeatherForecastResponse
		if err := json.Unmarshal(body, &forecast); err != nil {
			return nil, unavailable("failed to parse forecast response: %v", err)
		}
		if len(forecast.List) == 0 {
			return nil, unavailable("forecast response has no entries")
		}
		conditions = forecast.List[0]
	} else if err := json.Unmarshal(body, &conditions); err != nil {
		return nil, unavailable("failed to parse weather response: %v", err)
	}

	return validated(p.convertToSnapshot(&conditions))
}

func (p *OpenWeatherProvider) fetch(ctx context.Context, endpoint string, location WeatherLocation) ([]byte, error) {
	params := url.Values{}
	params.Add("lat", strconv.FormatFloat(location.Latitude, 'f', 6, 64))
	params.Add("lon", strconv.FormatFloat(location.Longitude, 'f', 6, 64))
	params.Add("appid", p.apiKey)
	params.Add("units", "imperial")
	if endpoint == "forecast" {
		params.Add("cnt", "1")
	}
	apiURL := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
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
	return body, nil
}

// convertToSnapshot maps imperial units straight across. Forecast slots
// only carry 3-hour rain, which is spread evenly over the window.
func (p *OpenWeatherProvider) convertToSnapshot(c *openWeatherConditions) caddie.WeatherSnapshot {
	rain := c.Rain.OneHour
	if rain == 0 && c.Rain.ThreeHour > 0 {
		rain = c.Rain.ThreeHour / 3
	}
	ts := time.Now()
	if c.Dt > 0 {
		ts = time.Unix(c.Dt, 0)
	}
	return caddie.WeatherSnapshot{
		TemperatureF:        caddie.Fahrenheit(c.Main.Temp),
		RelativeHumidityPct: c.Main.Humidity,
		WindSpeedMph:        caddie.MPH(c.Wind.Speed),
		WindFromDeg:         caddie.Degrees(c.Wind.Deg),
		RainLastHourMm:      rain,
		Timestamp:           ts,
	}
}
