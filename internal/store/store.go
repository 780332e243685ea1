// Package store provides the observable state container behind the
// selection and launch stores.
//
// A Store owns one value of T. Every change goes through Update, which
// copies the current value, applies the mutation, runs the store's
// invariant and publishes the result to subscribers before the next
// transition is applied. Readers always receive deep copies.
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/brunoga/deep"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Listener receives the new and previous state after a transition.
type Listener[T any] func(next, prev T)

// Option configures a Store.
type Option[T any] func(*Store[T])

// WithInvariant registers a function run on every candidate state before it
// is published. It may repair the state in place.
func WithInvariant[T any](fn func(*T)) Option[T] {
	return func(s *Store[T]) {
		s.invariants = append(s.invariants, fn)
	}
}

// WithLogger sets the logger used for transition debug output.
func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(s *Store[T]) {
		if l != nil {
			s.logger = l
		}
	}
}

type transition[T any] struct {
	op string
	fn func(*T)
}

// Store is an observable, copy-on-write state container.
type Store[T any] struct {
	name       string
	logger     *slog.Logger
	invariants []func(*T)

	mu        sync.Mutex
	state     T
	listeners map[uuid.UUID]Listener[T]
	pending   []transition[T]
	draining  bool

	attrs metric.MeasurementOption
}

// New creates a store holding initial. The invariants run once on the
// initial value as well.
func New[T any](name string, initial T, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		name:      name,
		logger:    slog.Default(),
		listeners: make(map[uuid.UUID]Listener[T]),
		attrs:     metric.WithAttributes(attribute.String("store", name)),
	}
	for _, opt := range opts {
		opt(s)
	}

	state := deep.MustCopy(initial)
	for _, inv := range s.invariants {
		inv(&state)
	}
	s.state = state
	return s
}

// Name returns the store name used in logs and metrics.
func (s *Store[T]) Name() string {
	return s.name
}

// Get returns a copy of the current state.
func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deep.MustCopy(s.state)
}

// Update applies fn to a copy of the state and publishes the result.
//
// Transitions requested while another is being published, including from
// inside a listener, are queued and applied in order before the in-flight
// Update returns.
func (s *Store[T]) Update(op string, fn func(*T)) {
	s.mu.Lock()
	s.pending = append(s.pending, transition[T]{op: op, fn: fn})
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true

	for len(s.pending) > 0 {
		tr := s.pending[0]
		s.pending = s.pending[1:]

		prev := s.state
		next := deep.MustCopy(prev)
		tr.fn(&next)
		for _, inv := range s.invariants {
			inv(&next)
		}
		s.state = next

		listeners := make([]Listener[T], 0, len(s.listeners))
		for _, l := range s.listeners {
			listeners = append(listeners, l)
		}
		s.mu.Unlock()

		transitionsCounter().Add(context.Background(), 1, s.attrs)
		s.logger.Debug("state transition", "store", s.name, "op", tr.op, "listeners", len(listeners))
		s.publish(listeners, next, prev)

		s.mu.Lock()
	}

	s.draining = false
	s.mu.Unlock()
}

// publish hands each listener its own copies so one listener cannot
// affect what the next one sees.
func (s *Store[T]) publish(listeners []Listener[T], next, prev T) {
	for _, l := range listeners {
		l(deep.MustCopy(next), deep.MustCopy(prev))
		notificationsCounter().Add(context.Background(), 1, s.attrs)
	}
}

// SubscribeAll registers l for every transition. The returned function
// removes the subscription and is safe to call more than once.
func (s *Store[T]) SubscribeAll(l Listener[T]) (unsubscribe func()) {
	id := uuid.New()

	s.mu.Lock()
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Subscribers returns the number of active subscriptions.
func (s *Store[T]) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}
