package asynchook

import (
	"sync"
	"testing"

	"github.com/unkn0wn-root/taskcodec"
)

type recorder struct {
	taskcodec.NopHooks
	mu      sync.Mutex
	reasons []string
	block   chan struct{}
}

func (r *recorder) StoreSelfHeal(_ string, reason string) {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	r.reasons = append(r.reasons, reason)
	r.mu.Unlock()
}

func TestDeliversBeforeClose(t *testing.T) {
	rec := &recorder{}
	h := New(rec, 2, 16)
	for i := 0; i < 10; i++ {
		h.StoreSelfHeal("k", "corrupt")
	}
	h.Close()
	if len(rec.reasons) != 10 {
		t.Fatalf("delivered=%d", len(rec.reasons))
	}
	if h.Dropped() != 0 {
		t.Fatalf("dropped=%d", h.Dropped())
	}
}

func TestDropsWhenFull(t *testing.T) {
	rec := &recorder{block: make(chan struct{})}
	h := New(rec, 1, 1)
	// the worker takes at most one event and blocks; the queue holds one more
	for i := 0; i < 10; i++ {
		h.StoreSelfHeal("k", "corrupt")
	}
	close(rec.block)
	h.Close()
	if got := uint64(len(rec.reasons)) + h.Dropped(); got != 10 {
		t.Fatalf("delivered+dropped=%d", got)
	}
	if h.Dropped() < 8 {
		t.Fatalf("dropped=%d, want >= 8", h.Dropped())
	}
}

func TestSendAfterCloseIsDropped(t *testing.T) {
	h := New(taskcodec.NopHooks{}, 1, 1)
	h.Close()
	h.Close()
	h.PayloadTooLarge(10, 5)
	if h.Dropped() != 1 {
		t.Fatalf("dropped=%d", h.Dropped())
	}
}
