package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/stitts-dev/weather-caddie/internal/caddie"
)

// WeatherLocation is where to ask for weather.
type WeatherLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// CacheKey identifies a location and forecast slot.
func (l WeatherLocation) CacheKey(nextHour bool) string {
	slot := "now"
	if nextHour {
		slot = "next"
	}
	return fmt.Sprintf("weather:%.4f,%.4f:%s", l.Latitude, l.Longitude, slot)
}

// WeatherProvider supplies snapshots in mph, Fahrenheit and "from" degrees.
// Transport and status failures wrap caddie.ErrWeatherUnavailable.
type WeatherProvider interface {
	Name() string
	GetSnapshot(ctx context.Context, location WeatherLocation, nextHour bool) (*caddie.WeatherSnapshot, error)
}

// ProviderOptions tunes the HTTP client shared by providers.
type ProviderOptions struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerMinute int
	HTTPClient        *http.Client
}

func (o ProviderOptions) client() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func (o ProviderOptions) limiter() *rate.Limiter {
	perMinute := o.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}

func unavailable(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", caddie.ErrWeatherUnavailable, fmt.Sprintf(format, args...))
}
