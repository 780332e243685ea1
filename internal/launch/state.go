package launch

import "github.com/flightdeck/companion/pkg/core"

const (
	DefaultLivery         = "Default"
	DefaultFuelPercentage = 50.0
	DefaultTimeOfDay      = 12.0
	DefaultWeather        = "clear"
)

// Session is the part of the launch configuration that starts from defaults
// on every process start.
type Session struct {
	SelectedAircraft *core.Aircraft
	SelectedLivery   string
	FuelPercentage   float64 // 0-100
	TimeOfDay        float64 // hour, [0,24)
	UseRealWorldTime bool
	ColdAndDark      bool
	SelectedWeather  string

	IsLaunching bool
	LaunchError *string
}

// Durable is the part of the launch configuration mirrored to storage.
type Durable struct {
	// Favorites are aircraft or livery paths, unique, in the order they
	// were added.
	Favorites []string
}

// State is the snapshot published to subscribers.
type State struct {
	Session
	Durable
}

// DefaultSession returns the session values used at start and by
// ResetConfig.
func DefaultSession() Session {
	return Session{
		SelectedLivery:  DefaultLivery,
		FuelPercentage:  DefaultFuelPercentage,
		TimeOfDay:       DefaultTimeOfDay,
		SelectedWeather: DefaultWeather,
	}
}

// DefaultState returns the state for a first run with no stored favorites.
func DefaultState() State {
	return State{
		Session: DefaultSession(),
		Durable: Durable{Favorites: []string{}},
	}
}
