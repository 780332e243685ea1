// Package selection holds what the user currently has selected on the map:
// the airport, one of its procedures, a start position, and which panels
// are open.
package selection

import (
	"log/slog"

	"github.com/brunoga/deep"

	"github.com/flightdeck/companion/internal/store"
	"github.com/flightdeck/companion/pkg/core"
)

// State is the snapshot published to subscribers.
type State struct {
	SelectedAirport   *core.AirportSelection
	SelectedProcedure *core.Procedure
	StartPosition     *core.StartPosition

	SidebarVisible      bool
	SettingsVisible     bool
	LaunchDialogVisible bool
}

// DefaultState is the state at process start.
func DefaultState() State {
	return State{SidebarVisible: true}
}

// enforce keeps the cross-field rules true whatever path changed the state:
// a procedure only exists in the context of a selected airport, and a
// waypoint is only resolved when it carries a position.
func enforce(st *State) {
	if st.SelectedAirport == nil {
		st.SelectedProcedure = nil
	}
	if st.SelectedProcedure != nil {
		st.SelectedProcedure.Normalize()
	}
}

// Store owns the selection state. Records passed to it are copied on the
// way in, so callers keep no handle on stored state.
type Store struct {
	s      *store.Store[State]
	logger *slog.Logger
}

// New creates a selection store with default state.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		s: store.New("selection", DefaultState(),
			store.WithInvariant(enforce),
			store.WithLogger[State](logger),
		),
		logger: logger,
	}
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

// SelectAirport replaces the selected airport, opens the sidebar and drops
// any procedure chosen for the previous airport. The start position is
// left alone.
func (st *Store) SelectAirport(id string, airport *core.ParsedAirport) {
	st.s.Update("selectAirport", func(s *State) {
		s.SelectedAirport = &core.AirportSelection{ID: id, Airport: deep.MustCopy(airport)}
		s.SidebarVisible = true
		s.SelectedProcedure = nil
	})
}

// ClearAirport clears the airport together with the procedure and start
// position that only make sense alongside it.
func (st *Store) ClearAirport() {
	st.s.Update("clearAirport", func(s *State) {
		s.SelectedAirport = nil
		s.SelectedProcedure = nil
		s.StartPosition = nil
	})
}

func (st *Store) SetSidebarVisible(v bool) {
	st.s.Update("setSidebarVisible", func(s *State) { s.SidebarVisible = v })
}

func (st *Store) SetSettingsVisible(v bool) {
	st.s.Update("setSettingsVisible", func(s *State) { s.SettingsVisible = v })
}

func (st *Store) SetLaunchDialogVisible(v bool) {
	st.s.Update("setLaunchDialogVisible", func(s *State) { s.LaunchDialogVisible = v })
}

// SelectProcedure replaces the selected procedure; nil clears it. A
// procedure selected while no airport is selected is dropped.
func (st *Store) SelectProcedure(p *core.Procedure) {
	st.s.Update("selectProcedure", func(s *State) {
		if p != nil && s.SelectedAirport == nil {
			st.logger.Warn("ignoring procedure selection without an airport", "procedure", p.Name)
		}
		s.SelectedProcedure = deep.MustCopy(p)
	})
}

// SetStartPosition replaces the start position; nil clears it.
func (st *Store) SetStartPosition(pos *core.StartPosition) {
	st.s.Update("setStartPosition", func(s *State) { s.StartPosition = deep.MustCopy(pos) })
}
