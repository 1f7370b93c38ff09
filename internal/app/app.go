// Package app assembles the caddie from configuration. The HTTP server and
// the CLI share it so both resolve carries and weather the same way.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/weather-caddie/internal/caddie"
	"github.com/stitts-dev/weather-caddie/internal/course"
	"github.com/stitts-dev/weather-caddie/internal/preferences"
	"github.com/stitts-dev/weather-caddie/internal/profile"
	"github.com/stitts-dev/weather-caddie/internal/providers"
	"github.com/stitts-dev/weather-caddie/internal/services"
	"github.com/stitts-dev/weather-caddie/pkg/config"
	"github.com/stitts-dev/weather-caddie/pkg/database"
)

// App holds the wired services.
type App struct {
	Config       *config.Config
	Logger       *logrus.Logger
	DB           *database.DB
	Cache        *services.CacheService
	Course       *course.Course
	Coefficients caddie.Coefficients
	Profiles     *profile.FileSource
	Preferences  *preferences.Store
	Weather      *services.WeatherService
	Advice       *services.AdviceService
	Rounds       *services.RoundService
	Chat         *services.ChatService
}

// New loads the course and coefficients, opens storage and the cache, and
// builds the weather and advice services. Close releases what it opened.
func New(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: log}

	c, err := course.Load(cfg.CourseFile)
	if err != nil {
		return nil, err
	}
	a.Course = c

	a.Coefficients, err = caddie.LoadCoefficients(cfg.CoefficientsFile, c.ElevationFt)
	if err != nil {
		return nil, err
	}
	advisor, err := caddie.NewAdvisor(a.Coefficients)
	if err != nil {
		return nil, err
	}

	a.DB, err = database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		return nil, err
	}
	a.Preferences, err = preferences.NewStore(a.DB)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Cache, err = services.NewCacheServiceFromURL(ctx, cfg.RedisURL)
	if err != nil {
		// caching is an optimisation; run without it
		log.WithError(err).Warn("Redis unavailable, weather caching disabled")
		a.Cache = services.NewCacheService(nil)
	}

	provider, err := NewProvider(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	breaker := services.NewCircuitBreakerService(cfg.CircuitBreakerThreshold, 30*time.Second, log)
	location := providers.WeatherLocation{
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Timezone:  c.Timezone,
	}
	a.Weather = services.NewWeatherService(provider, location, a.Cache, breaker, cfg.WeatherCacheTTL)

	a.Profiles = profile.NewFileSource(cfg.ProfileDir)
	defaults := services.CarryDefaults{Driver: cfg.DefaultDriverCarry, Iron: cfg.DefaultIronCarry}
	a.Advice = services.NewAdviceService(advisor, c, a.Weather, a.Profiles, a.Preferences, defaults, cfg.DefaultProfile)
	a.Rounds = services.NewRoundService(c, a.Profiles, a.Preferences, cfg.DefaultProfile, log)
	a.Chat = services.NewChatService(a.Profiles, cfg.DefaultProfile)

	log.WithFields(logrus.Fields{
		"course":   c.Name,
		"provider": provider.Name(),
		"cache":    a.Cache.Enabled(),
	}).Info("Caddie initialized")
	return a, nil
}

// NewProvider picks the weather provider named by WEATHER_PROVIDER.
func NewProvider(cfg *config.Config) (providers.WeatherProvider, error) {
	opts := providers.ProviderOptions{
		BaseURL:           cfg.WeatherBaseURL,
		Timeout:           cfg.ExternalAPITimeout,
		RequestsPerMinute: cfg.WeatherRateLimitPerMin,
	}
	switch cfg.WeatherProvider {
	case "openmeteo", "":
		return providers.NewOpenMeteoProvider(opts), nil
	case "openweather":
		opts.APIKey = cfg.OpenWeatherAPIKey
		return providers.NewOpenWeatherProvider(opts), nil
	}
	return nil, fmt.Errorf("unknown weather provider %q", cfg.WeatherProvider)
}

// Close releases the database and cache connections.
func (a *App) Close() {
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.Logger.WithError(err).Warn("Failed to close redis")
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.WithError(err).Warn("Failed to close database")
		}
	}
}
