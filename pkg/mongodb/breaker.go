package mongodb

import (
	"time"

	"github.com/sony/gobreaker"
)

// StateFunc receives circuit breaker state changes. State is encoded as
// 0=closed, 1=half-open, 2=open.
type StateFunc func(name string, state int)

// Breaker wraps database calls with a circuit breaker so a struggling MongoDB
// deployment fails fast instead of piling up requests.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewBreaker creates a circuit breaker for database operations. onState may
// be nil.
func NewBreaker(name string, onState StateFunc) *Breaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
	}
	if onState != nil {
		settings.OnStateChange = func(name string, from, to gobreaker.State) {
			onState(name, stateCode(to))
		}
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Execute runs fn through the circuit breaker.
func (b *Breaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return b.cb.Execute(fn)
}

// Do runs an error-only operation through the circuit breaker.
func (b *Breaker) Do(fn func() error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

func stateCode(s gobreaker.State) int {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}
