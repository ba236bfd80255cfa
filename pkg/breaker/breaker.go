// Package breaker builds circuit breakers for outbound provider calls.
package breaker

import (
	"time"

	"github.com/sony/gobreaker"

	"github.com/ChrisMayes22/upload-and-serve-image/pkg/logger"
)

type Config struct {
	Name string

	// MinRequests is the request count below which the breaker never trips.
	//
	// Optional. Default: 5
	MinRequests uint32

	// FailureRatio trips the breaker once reached over MinRequests.
	//
	// Optional. Default: 0.5
	FailureRatio float64

	// OpenTimeout is how long the breaker stays open before probing again.
	//
	// Optional. Default: 30s
	OpenTimeout time.Duration
}

// New creates a circuit breaker that trips on a sustained failure ratio and
// logs every state transition.
func New(cfg Config) *gobreaker.CircuitBreaker {
	if cfg.MinRequests == 0 {
		cfg.MinRequests = 5
	}
	if cfg.FailureRatio == 0 {
		cfg.FailureRatio = 0.5
	}
	if cfg.OpenTimeout == 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MinRequests,
		Interval:    time.Minute,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && ratio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker '%s' changed state from %s to %s", name, from.String(), to.String())
		},
	})
}
