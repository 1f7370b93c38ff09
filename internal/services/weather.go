package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/weather-caddie/internal/caddie"
	"github.com/stitts-dev/weather-caddie/internal/providers"
	"github.com/stitts-dev/weather-caddie/pkg/logger"
)

// WeatherSource is what the advice path needs from weather.
type WeatherSource interface {
	GetSnapshot(ctx context.Context, nextHour bool) (*caddie.WeatherSnapshot, error)
}

// WeatherService fronts a provider with a short-lived snapshot cache and a
// circuit breaker. Only snapshots are cached; advice is always recomputed.
type WeatherService struct {
	provider providers.WeatherProvider
	location providers.WeatherLocation
	cache    *CacheService
	breaker  *CircuitBreakerService
	cacheTTL time.Duration
}

// NewWeatherService creates a weather service for a single course location.
func NewWeatherService(
	provider providers.WeatherProvider,
	location providers.WeatherLocation,
	cache *CacheService,
	breaker *CircuitBreakerService,
	cacheTTL time.Duration,
) *WeatherService {
	return &WeatherService{
		provider: provider,
		location: location,
		cache:    cache,
		breaker:  breaker,
		cacheTTL: cacheTTL,
	}
}

// Location returns the coordinates the service fetches for.
func (w *WeatherService) Location() providers.WeatherLocation {
	return w.location
}

// GetSnapshot returns the current or next-hour snapshot, from cache when fresh.
func (w *WeatherService) GetSnapshot(ctx context.Context, nextHour bool) (*caddie.WeatherSnapshot, error) {
	key := fmt.Sprintf("%s:%s", w.provider.Name(), w.location.CacheKey(nextHour))
	log := logger.WithProviderContext(w.provider.Name(), nextHour)

	var cached caddie.WeatherSnapshot
	err := w.cache.Get(ctx, key, &cached)
	if err == nil {
		log.Debug("Weather snapshot served from cache")
		return &cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		log.WithError(err).Warn("Weather cache read failed")
	}

	result, err := w.breaker.Execute(w.provider.Name(), func() (interface{}, error) {
		return w.provider.GetSnapshot(ctx, w.location, nextHour)
	})
	if err != nil {
		log.WithError(err).Error("Failed to fetch weather snapshot")
		if !errors.Is(err, caddie.ErrWeatherUnavailable) {
			err = fmt.Errorf("%w: %v", caddie.ErrWeatherUnavailable, err)
		}
		return nil, err
	}

	snapshot := result.(*caddie.WeatherSnapshot)
	if w.cacheTTL > 0 {
		if err := w.cache.Set(ctx, key, snapshot, w.cacheTTL); err != nil {
			log.WithError(err).Warn("Failed to cache weather snapshot")
		}
	}

	log.WithFields(logrus.Fields{
		"temperature_f": float64(snapshot.TemperatureF),
		"wind_mph":      float64(snapshot.WindSpeedMph),
		"wind_from":     float64(snapshot.WindFromDeg),
	}).Info("Fetched weather snapshot")

	return snapshot, nil
}

// Refresh drops cached snapshots and fetches both slots again.
func (w *WeatherService) Refresh(ctx context.Context) error {
	keys := []string{
		fmt.Sprintf("%s:%s", w.provider.Name(), w.location.CacheKey(false)),
		fmt.Sprintf("%s:%s", w.provider.Name(), w.location.CacheKey(true)),
	}
	if err := w.cache.Delete(ctx, keys...); err != nil {
		logger.WithService("weather_cache").WithError(err).Warn("Failed to clear weather cache")
	}
	for _, next := range []bool{false, true} {
		if _, err := w.GetSnapshot(ctx, next); err != nil {
			return err
		}
	}
	return nil
}
