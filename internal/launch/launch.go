// Package launch holds the options the simulator is started with: aircraft,
// livery, fuel, time, weather and the user's favorites.
//
// Only favorites outlive the process. They are read from a storage backend
// when the store is created and written back in the background whenever
// they change.
package launch

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/brunoga/deep"

	"github.com/flightdeck/companion/internal/storage"
	"github.com/flightdeck/companion/internal/store"
	"github.com/flightdeck/companion/pkg/core"
)

// Dependencies holds what a Store needs from the host.
type Dependencies struct {
	Backend      storage.Backend
	Logger       *slog.Logger
	WriteTimeout time.Duration
}

// Store owns the launch configuration.
type Store struct {
	s         *store.Store[State]
	persister *persister
	logger    *slog.Logger
	unsub     func()
}

// enforce runs after every transition.
func enforce(st *State) {
	st.FuelPercentage = clampFuel(st.FuelPercentage)
	st.TimeOfDay = wrapHour(st.TimeOfDay)
	st.Favorites = dedupe(st.Favorites)
}

// New creates a launch store, seeding favorites from deps.Backend. A
// missing, unreadable or malformed record starts with no favorites. The
// backend must already be initialised.
func New(ctx context.Context, deps Dependencies) *Store {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	initial := DefaultState()
	initial.Favorites = loadFavorites(ctx, deps.Backend, logger)

	st := &Store{
		s: store.New("launch", initial,
			store.WithInvariant(enforce),
			store.WithLogger[State](logger),
		),
		persister: newPersister(deps.Backend, PersistKey, deps.WriteTimeout, logger),
		logger:    logger,
	}
	st.unsub = store.Subscribe(st.s,
		func(s State) []string { return s.Favorites },
		func(cur, _ []string) { st.persister.enqueue(cur) },
	)
	return st
}

func loadFavorites(ctx context.Context, backend storage.Backend, logger *slog.Logger) []string {
	data, ok, err := backend.Load(ctx, PersistKey)
	if err != nil {
		logger.Warn("failed to load favorites, starting empty", "key", PersistKey, "error", err)
		return []string{}
	}
	if !ok {
		return []string{}
	}
	favorites, err := DecodeFavorites(data)
	if err != nil {
		logger.Warn("discarding malformed favorites record", "key", PersistKey, "error", err)
		return []string{}
	}
	logger.Debug("favorites loaded", "count", len(favorites))
	return favorites
}

// State returns the current snapshot.
func (st *Store) State() State {
	return st.s.Get()
}

// Store exposes the underlying container for selector subscriptions.
func (st *Store) Store() *store.Store[State] {
	return st.s
}

// Subscribe registers l for every change.
func (st *Store) Subscribe(l store.Listener[State]) (unsubscribe func()) {
	return st.s.SubscribeAll(l)
}

// SelectAircraft replaces the aircraft. The livery goes back to the default
// and any error from a previous launch attempt is cleared.
func (st *Store) SelectAircraft(a *core.Aircraft) {
	st.s.Update("selectAircraft", func(s *State) {
		s.SelectedAircraft = deep.MustCopy(a)
		s.SelectedLivery = DefaultLivery
		s.LaunchError = nil
	})
}

func (st *Store) SetSelectedLivery(livery string) {
	st.s.Update("setSelectedLivery", func(s *State) { s.SelectedLivery = livery })
}

// SetFuelPercentage sets the fuel load, clamped to [0,100]. NaN and
// infinities are ignored.
func (st *Store) SetFuelPercentage(v float64) {
	if !finite(v) {
		st.logger.Warn("ignoring non-finite fuel percentage", "value", v)
		return
	}
	st.s.Update("setFuelPercentage", func(s *State) { s.FuelPercentage = v })
}

// SetTimeOfDay sets the start hour, wrapped into [0,24). NaN and infinities
// are ignored.
func (st *Store) SetTimeOfDay(hour float64) {
	if !finite(hour) {
		st.logger.Warn("ignoring non-finite time of day", "value", hour)
		return
	}
	st.s.Update("setTimeOfDay", func(s *State) { s.TimeOfDay = hour })
}

func (st *Store) SetUseRealWorldTime(v bool) {
	st.s.Update("setUseRealWorldTime", func(s *State) { s.UseRealWorldTime = v })
}

func (st *Store) SetColdAndDark(v bool) {
	st.s.Update("setColdAndDark", func(s *State) { s.ColdAndDark = v })
}

func (st *Store) SetSelectedWeather(weather string) {
	st.s.Update("setSelectedWeather", func(s *State) { s.SelectedWeather = weather })
}

// ToggleFavorite removes path from the favorites if present and appends it
// otherwise.
func (st *Store) ToggleFavorite(path string) {
	st.s.Update("toggleFavorite", func(s *State) { s.Favorites = toggle(s.Favorites, path) })
}

func (st *Store) SetIsLaunching(v bool) {
	st.s.Update("setIsLaunching", func(s *State) { s.IsLaunching = v })
}

// SetLaunchError records the message of a failed launch; nil clears it.
func (st *Store) SetLaunchError(msg *string) {
	st.s.Update("setLaunchError", func(s *State) { s.LaunchError = deep.MustCopy(msg) })
}

// ResetConfig returns every session field to its default. Favorites are
// kept.
func (st *Store) ResetConfig() {
	st.s.Update("resetConfig", func(s *State) { s.Session = DefaultSession() })
}

// Favorites returns a copy of the favorites in insertion order.
func (st *Store) Favorites() []string {
	return st.s.Get().Favorites
}

func (st *Store) IsFavorite(path string) bool {
	return slices.Contains(st.s.Get().Favorites, path)
}

// Flush blocks until every favorites change made before the call has been
// written, and returns the error of the latest write attempt.
func (st *Store) Flush(ctx context.Context) error {
	return st.persister.flush(ctx)
}

// Close stops mirroring favorites after writing any pending change. The
// store stays readable and writable in memory.
func (st *Store) Close() error {
	st.unsub()
	return st.persister.close(context.Background())
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clampFuel(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func wrapHour(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	if h >= 24 || h == 0 {
		// covers -0 and values that round up to 24 after the shift
		h = 0
	}
	return h
}
