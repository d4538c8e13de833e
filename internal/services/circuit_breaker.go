package services

import (
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/genai"
)

type BreakerSettings struct {
	Enabled          bool
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// ModelBreaker guards model calls. It never retries: a failed call is
// returned as-is and an open breaker fails fast. A nil *ModelBreaker calls
// straight through.
type ModelBreaker struct {
	cb *gobreaker.CircuitBreaker[*genai.GenerateContentResponse]
}

func NewModelBreaker(name string, settings BreakerSettings) *ModelBreaker {
	if !settings.Enabled {
		return nil
	}

	return &ModelBreaker{
		cb: gobreaker.NewCircuitBreaker[*genai.GenerateContentResponse](gobreaker.Settings{
			Name:        fmt.Sprintf("model-%s", name),
			MaxRequests: settings.MaxRequests,
			Interval:    settings.Interval,
			Timeout:     settings.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= settings.MinRequests &&
					failureRatio >= settings.FailureThreshold
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Printf("⚡ Circuit breaker %s: %s -> %s\n", name, from, to)
			},
		}),
	}
}

func (b *ModelBreaker) Execute(fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	if b == nil || b.cb == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

func (b *ModelBreaker) State() string {
	if b == nil || b.cb == nil {
		return "disabled"
	}
	return b.cb.State().String()
}
