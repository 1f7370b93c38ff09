package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Refresher reloads cached weather.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// WeatherWarmer refreshes cached snapshots on a cron schedule so the first
// advice request of a window does not wait on the provider.
type WeatherWarmer struct {
	mu        sync.Mutex
	cron      *cron.Cron
	weather   Refresher
	schedule  string
	timeout   time.Duration
	logger    *logrus.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	isRunning bool
	lastRun   time.Time
	lastErr   error
}

// NewWeatherWarmer creates a warmer; schedule uses cron syntax or
// descriptors such as "@every 15m".
func NewWeatherWarmer(weather Refresher, schedule string, timeout time.Duration, logger *logrus.Logger) *WeatherWarmer {
	ctx, cancel := context.WithCancel(context.Background())
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &WeatherWarmer{
		cron:     cron.New(cron.WithLogger(cron.VerbosePrintfLogger(logger))),
		weather:  weather,
		schedule: schedule,
		timeout:  timeout,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start schedules the refresh job.
func (w *WeatherWarmer) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return fmt.Errorf("weather warmer is already running")
	}

	entryID, err := w.cron.AddFunc(w.schedule, w.RunOnce)
	if err != nil {
		return fmt.Errorf("failed to schedule weather warm-up %q: %w", w.schedule, err)
	}

	w.cron.Start()
	w.isRunning = true

	w.logger.WithFields(logrus.Fields{
		"component": "weather_warmer",
		"schedule":  w.schedule,
		"next_run":  w.cron.Entry(entryID).Next,
	}).Info("Weather warmer started")
	return nil
}

// RunOnce refreshes the weather cache immediately.
func (w *WeatherWarmer) RunOnce() {
	ctx, cancel := context.WithTimeout(w.ctx, w.timeout)
	defer cancel()

	start := time.Now()
	err := w.weather.Refresh(ctx)

	w.mu.Lock()
	w.lastRun = start
	w.lastErr = err
	w.mu.Unlock()

	log := w.logger.WithFields(logrus.Fields{
		"component": "weather_warmer",
		"duration":  time.Since(start).String(),
	})
	if err != nil {
		log.WithError(err).Warn("Weather warm-up failed")
		return
	}
	log.Debug("Weather warm-up completed")
}

// Status reports the last run and its outcome.
func (w *WeatherWarmer) Status() (time.Time, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastRun, w.lastErr
}

// Stop cancels in-flight fetches and waits briefly for a running job.
func (w *WeatherWarmer) Stop() {
	w.mu.Lock()
	running := w.isRunning
	w.isRunning = false
	w.mu.Unlock()

	w.cancel()
	if !running {
		return
	}

	ctx := w.cron.Stop()
	select {
	case <-ctx.Done():
		w.logger.WithField("component", "weather_warmer").Info("Cron scheduler stopped gracefully")
	case <-time.After(5 * time.Second):
		w.logger.WithField("component", "weather_warmer").Warn("Cron scheduler stop timed out")
	}
}
