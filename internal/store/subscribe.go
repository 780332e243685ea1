package store

import "reflect"

// SelectOption configures a selector subscription.
type SelectOption[S any] func(*selectConfig[S])

type selectConfig[S any] struct {
	equal           func(a, b S) bool
	fireImmediately bool
}

// WithEqual replaces the default reflect.DeepEqual comparison.
func WithEqual[S any](eq func(a, b S) bool) SelectOption[S] {
	return func(c *selectConfig[S]) {
		c.equal = eq
	}
}

// FireImmediately calls the listener once with the current slice on
// subscription, with prev equal to cur.
func FireImmediately[S any]() SelectOption[S] {
	return func(c *selectConfig[S]) {
		c.fireImmediately = true
	}
}

// Subscribe registers listener for changes to the slice of state returned
// by selector. The listener only runs when the selected value differs from
// the one seen after the previous transition.
func Subscribe[T, S any](s *Store[T], selector func(T) S, listener func(cur, prev S), opts ...SelectOption[S]) (unsubscribe func()) {
	cfg := selectConfig[S]{
		equal: func(a, b S) bool { return reflect.DeepEqual(a, b) },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.fireImmediately {
		cur := selector(s.Get())
		listener(cur, cur)
	}

	return s.SubscribeAll(func(next, prev T) {
		cur, old := selector(next), selector(prev)
		if cfg.equal(cur, old) {
			return
		}
		listener(cur, old)
	})
}
