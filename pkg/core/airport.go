// pkg/core/airport.go
package core

// ParsedAirport is the airport record produced by the airport-data parser.
// The state layer treats it as opaque and only compares it for equality.
type ParsedAirport struct {
	ICAO      string
	Name      string
	Elevation int
	Latitude  float64
	Longitude float64
	Runways   []string
}

// AirportSelection pairs the identifier the user picked with its parsed record.
type AirportSelection struct {
	ID      string
	Airport *ParsedAirport
}

// StartPosition is a ramp, gate or runway start supplied by the positioning
// collaborator.
type StartPosition struct {
	Kind      string // "ramp" or "runway"
	Name      string
	Latitude  float64
	Longitude float64
	Heading   float64
}

// Aircraft is an entry from the aircraft catalog.
type Aircraft struct {
	Path     string
	Name     string
	ICAO     string
	Liveries []string
}
