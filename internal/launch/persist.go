package launch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/flightdeck/companion/internal/storage"
)

// DefaultWriteTimeout bounds a single backend write when none is configured.
const DefaultWriteTimeout = 5 * time.Second

// persister mirrors the favorites list to a storage backend from a single
// background goroutine. Requests coalesce: only the latest list is written,
// so writes reach storage in the order the changes were made.
type persister struct {
	backend storage.Backend
	key     string
	timeout time.Duration
	logger  *slog.Logger

	mu        sync.Mutex
	latest    []string
	requested uint64 // version of latest
	attempted uint64 // last version handed to the backend
	lastErr   error
	written   chan struct{} // closed and replaced after every attempt

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func newPersister(backend storage.Backend, key string, timeout time.Duration, logger *slog.Logger) *persister {
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	p := &persister{
		backend: backend,
		key:     key,
		timeout: timeout,
		logger:  logger,
		written: make(chan struct{}),
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// enqueue records favorites as the value to write next. It never blocks.
func (p *persister) enqueue(favorites []string) {
	p.mu.Lock()
	p.latest = favorites
	p.requested++
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *persister) run() {
	defer close(p.done)
	for {
		select {
		case <-p.wake:
			p.writeLatest()
		case <-p.stop:
			p.writeLatest()
			return
		}
	}
}

func (p *persister) writeLatest() {
	p.mu.Lock()
	if p.attempted == p.requested {
		p.mu.Unlock()
		return
	}
	favorites, version := p.latest, p.requested
	p.mu.Unlock()

	err := p.save(favorites)

	p.mu.Lock()
	p.attempted = version
	p.lastErr = err
	close(p.written)
	p.written = make(chan struct{})
	p.mu.Unlock()
}

func (p *persister) save(favorites []string) error {
	data, err := EncodeFavorites(favorites)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		err = p.backend.Save(ctx, p.key, data)
		cancel()
	}
	if err != nil {
		persistFailuresCounter().Add(context.Background(), 1)
		p.logger.Error("failed to persist favorites", "key", p.key, "count", len(favorites), "error", err)
		return err
	}
	p.logger.Debug("favorites persisted", "key", p.key, "count", len(favorites))
	return nil
}

// flush waits until every change enqueued before the call has been handed
// to the backend and returns the error of the most recent attempt.
func (p *persister) flush(ctx context.Context) error {
	p.mu.Lock()
	target := p.requested
	p.mu.Unlock()

	for {
		p.mu.Lock()
		if p.attempted >= target {
			err := p.lastErr
			p.mu.Unlock()
			return err
		}
		ch := p.written
		p.mu.Unlock()

		select {
		case <-ch:
		case <-p.done:
			p.mu.Lock()
			err := p.lastErr
			if p.attempted < target {
				err = context.Canceled
			}
			p.mu.Unlock()
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// close writes whatever is still pending and stops the goroutine.
func (p *persister) close(ctx context.Context) error {
	p.once.Do(func() { close(p.stop) })
	select {
	case <-p.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}
