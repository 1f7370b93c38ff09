package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/stitts-dev/weather-caddie/internal/caddie"
)

// CircuitBreakerService keeps one breaker per weather provider.
type CircuitBreakerService struct {
	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
	settings gobreaker.Settings
	logger   *logrus.Logger
}

// NewCircuitBreakerService trips a provider's breaker after threshold
// consecutive failures and retries once the timeout passes.
func NewCircuitBreakerService(threshold int, timeout time.Duration, logger *logrus.Logger) *CircuitBreakerService {
	if threshold <= 0 {
		threshold = 5
	}
	settings := gobreaker.Settings{
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(threshold)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &CircuitBreakerService{
		breakers: make(map[string]*gobreaker.CircuitBreaker),
		settings: settings,
		logger:   logger,
	}
}

func (cb *CircuitBreakerService) breaker(service string) *gobreaker.CircuitBreaker {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	b, ok := cb.breakers[service]
	if !ok {
		settings := cb.settings
		settings.Name = service
		b = gobreaker.NewCircuitBreaker(settings)
		cb.breakers[service] = b
	}
	return b
}

// Execute wraps a function call with circuit breaker protection. An open
// breaker surfaces as caddie.ErrWeatherUnavailable.
func (cb *CircuitBreakerService) Execute(service string, fn func() (interface{}, error)) (interface{}, error) {
	result, err := cb.breaker(service).Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s circuit %v", caddie.ErrWeatherUnavailable, service, err)
	}
	return result, err
}

// GetState returns the current state of a circuit breaker
func (cb *CircuitBreakerService) GetState(service string) gobreaker.State {
	return cb.breaker(service).State()
}

// GetCounts returns the current counts for a circuit breaker
func (cb *CircuitBreakerService) GetCounts(service string) gobreaker.Counts {
	return cb.breaker(service).Counts()
}
