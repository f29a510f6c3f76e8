// Package polling re-fetches a value on a fixed interval while enabled.
package polling

import (
	"context"
	"sync"
	"time"
)

// Fetcher produces the next value. It is looked up on every call, so
// replacing it with SetFetcher takes effect on the next fetch.
type Fetcher[T any] func(ctx context.Context) (T, error)

// State is the latest outcome. Data keeps its last successful value across
// failures and across disabling.
type State[T any] struct {
	Data    T
	HasData bool
	Err     error
	Loading bool
}

// Poller runs Fetcher immediately on activation and then on every tick of
// a fixed interval. Fetches are not serialized: a tick starts a new fetch even
// if the previous one has not returned, and whichever resolves last wins.
// A failed fetch records Err and leaves Data alone; the ticker keeps going.
type Poller[T any] struct {
	mu       sync.Mutex
	notifyMu sync.Mutex

	ctx      context.Context
	fetch    Fetcher[T]
	interval time.Duration
	enabled  bool
	closed   bool
	state    State[T]
	onUpdate func(State[T])

	stop      context.CancelFunc
	newTicker func(time.Duration) (<-chan time.Time, func())
}

type Option[T any] func(*Poller[T])

// WithOnUpdate registers a callback invoked after every state write, in write
// order. The callback may call any Poller method.
func WithOnUpdate[T any](fn func(State[T])) Option[T] {
	return func(p *Poller[T]) { p.onUpdate = fn }
}

// New returns a disabled poller. ctx is handed to every fetch; cancelling it
// is the only way in-flight requests get aborted.
func New[T any](ctx context.Context, fetch Fetcher[T], interval time.Duration, opts ...Option[T]) *Poller[T] {
	p := &Poller[T]{
		ctx:       ctx,
		fetch:     fetch,
		interval:  interval,
		state:     State[T]{Loading: true},
		newTicker: realTicker,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// SetEnabled starts or stops the schedule. Enabling performs an immediate
// fetch. Disabling keeps the last state.
func (p *Poller[T]) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.enabled == enabled {
		return
	}
	p.enabled = enabled
	if enabled {
		p.startLocked()
	} else {
		p.stopLocked()
	}
}

// SetInterval changes the period and restarts the schedule if enabled.
func (p *Poller[T]) SetInterval(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || d == p.interval {
		return
	}
	p.interval = d
	if p.enabled {
		p.stopLocked()
		p.startLocked()
	}
}

// SetFetcher swaps the fetch function and restarts the schedule if enabled.
func (p *Poller[T]) SetFetcher(fetch Fetcher[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.fetch = fetch
	if p.enabled {
		p.stopLocked()
		p.startLocked()
	}
}

func (p *Poller[T]) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

func (p *Poller[T]) State() State[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Close stops the schedule for good. Fetches still in flight are left to
// finish, but their results are dropped.
func (p *Poller[T]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.enabled = false
	p.stopLocked()
}

func (p *Poller[T]) startLocked() {
	loopCtx, cancel := context.WithCancel(p.ctx)
	p.stop = cancel
	ticks, stopTicker := p.newTicker(p.interval)

	go p.poll()
	go func() {
		defer stopTicker()
		for {
			select {
			case <-ticks:
				go p.poll()
			case <-loopCtx.Done():
				return
			}
		}
	}()
}

func (p *Poller[T]) stopLocked() {
	if p.stop != nil {
		p.stop()
		p.stop = nil
	}
}

func (p *Poller[T]) poll() {
	p.mu.Lock()
	fetch := p.fetch
	p.mu.Unlock()

	data, err := fetch(p.ctx)

	// notifyMu is always taken before mu, so onUpdate may call back into
	// the poller. Holding it across the write keeps callbacks in write order.
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	if err != nil {
		p.state.Err = err
	} else {
		p.state.Data = data
		p.state.HasData = true
		p.state.Err = nil
	}
	p.state.Loading = false
	snapshot := p.state
	cb := p.onUpdate
	p.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}
