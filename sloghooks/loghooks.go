package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/unkn0wn-root/taskcodec"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	RejectEvery   uint64
	UnknownEvery  uint64
	SelfHealEvery uint64
	// Optional storage key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

// Hooks logs codec and store events to a *slog.Logger. A nil logger turns
// every method into a no-op.
type Hooks struct {
	l    *slog.Logger
	opts Options

	rejectCtr   atomic.Uint64
	unknownCtr  atomic.Uint64
	selfHealCtr atomic.Uint64
}

var _ taskcodec.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) DecodeRejected(tag string, kind taskcodec.Kind, err error) {
	if h.l == nil || !sample(h.opts.RejectEvery, &h.rejectCtr) {
		return
	}
	h.l.Warn("taskcodec.decode_rejected",
		"tag", tag,
		"kind", kind.String(),
		"err", err)
}

func (h *Hooks) UnknownFieldsIgnored(tag string, keys []string) {
	if h.l == nil || !sample(h.opts.UnknownEvery, &h.unknownCtr) {
		return
	}
	h.l.Debug("taskcodec.unknown_fields_ignored",
		"tag", tag,
		"keys", strings.Join(keys, ","))
}

func (h *Hooks) PayloadTooLarge(size, limit int) {
	if h.l == nil {
		return
	}
	h.l.Warn("taskcodec.payload_too_large",
		"size", size,
		"limit", limit)
}

func (h *Hooks) StoreSelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Info("taskcodec.store_self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}
