package lifecycle

import (
	"context"
	"sync"
	"time"
)

// Rotator advances the loading message index on its own timer. It is not
// synchronized with polling and has its own cancellation.
type Rotator struct {
	mu       sync.Mutex
	interval time.Duration
	set      MessageSet
	index    int
	running  bool
	cancel   context.CancelFunc
	onTick   func()

	newTicker func(time.Duration) (<-chan time.Time, func())
}

func NewRotator(interval time.Duration, onTick func()) *Rotator {
	return &Rotator{
		interval: interval,
		set:      MessagesInit,
		onTick:   onTick,
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
	}
}

// Start begins rotating from the first message of set. It no-ops if already
// running.
func (r *Rotator) Start(ctx context.Context, set MessageSet) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.set = set
	r.index = 0
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	ticks, stop := r.newTicker(r.interval)
	r.mu.Unlock()

	go func() {
		defer stop()
		for {
			select {
			case <-ticks:
				r.advance()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (r *Rotator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.running = false
}

// SetMessages switches to set, restarting at its first message when the set
// actually changes.
func (r *Rotator) SetMessages(set MessageSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set != r.set {
		r.set = set
		r.index = 0
	}
}

func (r *Rotator) Current() (MessageSet, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.set, r.index
}

func (r *Rotator) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *Rotator) advance() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	if n := len(messageSets[r.set]); n > 0 {
		r.index = (r.index + 1) % n
	}
	cb := r.onTick
	r.mu.Unlock()

	if cb != nil {
		cb()
	}
}
