package launch

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/flightdeck/companion/internal/launch"

func persistFailuresCounter() metric.Int64Counter {
	c, err := otel.Meter(instrumentationName).Int64Counter(
		"launch.favorites.persist.failures",
		metric.WithDescription("Favorites writes rejected by the storage backend"),
	)
	if err != nil {
		return noop.Int64Counter{}
	}
	return c
}
