package store

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/flightdeck/companion/internal/store"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Instruments are looked up per call so a provider installed after the
// stores were built still receives measurements.
func transitionsCounter() metric.Int64Counter {
	c, err := meter().Int64Counter(
		"store.transitions",
		metric.WithDescription("Total state transitions applied"),
	)
	if err != nil {
		return noop.Int64Counter{}
	}
	return c
}

func notificationsCounter() metric.Int64Counter {
	c, err := meter().Int64Counter(
		"store.notifications",
		metric.WithDescription("Total listener notifications delivered"),
	)
	if err != nil {
		return noop.Int64Counter{}
	}
	return c
}
