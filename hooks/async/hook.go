// Package asynchook moves hook delivery off the decode path.
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{RejectEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	codec, _ := taskcodec.New(taskcodec.Options[Task]{Registry: reg, Hooks: hooks})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/taskcodec"
)

// Hooks forwards events to inner on a bounded queue. When the queue is full
// the event is dropped and counted.
type Hooks struct {
	inner   taskcodec.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ taskcodec.Hooks = (*Hooks)(nil)

func New(inner taskcodec.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events sent after Close
// are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) DecodeRejected(tag string, kind taskcodec.Kind, err error) {
	h.try(func() { h.inner.DecodeRejected(tag, kind, err) })
}

func (h *Hooks) UnknownFieldsIgnored(tag string, keys []string) {
	keys = append([]string(nil), keys...)
	h.try(func() { h.inner.UnknownFieldsIgnored(tag, keys) })
}

func (h *Hooks) PayloadTooLarge(size, limit int) {
	h.try(func() { h.inner.PayloadTooLarge(size, limit) })
}

func (h *Hooks) StoreSelfHeal(k, r string) { h.try(func() { h.inner.StoreSelfHeal(k, r) }) }
