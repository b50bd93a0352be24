// Package store persists encoded task descriptions in a byte Provider and
// reloads them into live tasks through a taskcodec.Codec.
//
// Entries are framed (magic, version, format id, length) so a reader can tell
// foreign or stale-format bytes from a payload it should decode. Unreadable
// frames are deleted on read and reported as a miss; payloads that frame
// correctly but fail to decode are returned as errors and left in place.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/unkn0wn-root/taskcodec"
	"github.com/unkn0wn-root/taskcodec/internal/wire"
	pr "github.com/unkn0wn-root/taskcodec/provider"
)

const defaultTTL = 24 * time.Hour

// ErrRejected is returned by Put when the provider declined the write, e.g.
// under memory pressure. Nothing was stored.
var ErrRejected = errors.New("store: write rejected by provider")

type Options[T any] struct {
	// Required
	Namespace string // logical namespace to avoid collisions, e.g. "device:abc"
	Provider  pr.Provider
	Codec     *taskcodec.Codec[T]

	DefaultTTL time.Duration   // 0 => 24h; negative => no expiry
	Logger     taskcodec.Logger // if nil, NopLogger is used
	Hooks      taskcodec.Hooks  // if nil, NopHooks is used
}

type Store[T any] struct {
	ns       string
	provider pr.Provider
	codec    *taskcodec.Codec[T]
	ttl      time.Duration
	log      taskcodec.Logger
	hooks    taskcodec.Hooks
}

func New[T any](opts Options[T]) (*Store[T], error) {
	if opts.Provider == nil {
		return nil, errors.New("store: provider is required")
	}
	if opts.Codec == nil {
		return nil, errors.New("store: codec is required")
	}
	if opts.Namespace == "" {
		return nil, errors.New("store: namespace is required")
	}
	s := &Store[T]{
		ns:       opts.Namespace,
		provider: opts.Provider,
		codec:    opts.Codec,
		ttl:      opts.DefaultTTL,
		log:      opts.Logger,
		hooks:    opts.Hooks,
	}
	if s.ttl == 0 {
		s.ttl = defaultTTL
	}
	if s.log == nil {
		s.log = taskcodec.NopLogger{}
	}
	if s.hooks == nil {
		s.hooks = taskcodec.NopHooks{}
	}
	return s, nil
}

func (s *Store[T]) storageKey(key string) string { return "task:" + s.ns + ":" + key }

// Put encodes v with the codec and writes it under key. ttl == 0 uses the
// store default. A write the provider declines returns ErrRejected.
func (s *Store[T]) Put(ctx context.Context, key string, v any, ttl time.Duration) error {
	if ttl == 0 {
		ttl = s.ttl
	}
	payload, err := s.codec.Marshal(v)
	if err != nil {
		return err
	}
	k := s.storageKey(key)
	entry := wire.Encode(s.codec.Format().ID(), payload)
	ok, err := s.provider.Set(ctx, k, entry, int64(len(entry)), ttl)
	if err != nil {
		return err
	}
	if !ok {
		s.log.Debug("Put rejected by provider (pressure)", taskcodec.Fields{"key": key})
		return ErrRejected
	}
	return nil
}

// Load reads key and decodes it into a task built with env. A miss returns
// ok=false with a nil error.
func (s *Store[T]) Load(ctx context.Context, key string, env any) (T, bool, error) {
	var zero T
	payload, ok, err := s.read(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}
	task, err := s.codec.Decode(payload, env)
	if err != nil {
		return zero, false, err
	}
	return task, true, nil
}

// Document reads key without constructing a task.
func (s *Store[T]) Document(ctx context.Context, key string) (taskcodec.Document, bool, error) {
	payload, ok, err := s.read(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	doc, err := s.codec.Format().Unmarshal(payload)
	if err != nil {
		return nil, false, &taskcodec.DecodeError{Kind: taskcodec.KindMalformed, Err: err}
	}
	return doc, true, nil
}

func (s *Store[T]) Delete(ctx context.Context, key string) error {
	return s.provider.Del(ctx, s.storageKey(key))
}

func (s *Store[T]) Close(ctx context.Context) error {
	return s.provider.Close(ctx)
}

func (s *Store[T]) read(ctx context.Context, key string) ([]byte, bool, error) {
	k := s.storageKey(key)
	raw, ok, err := s.provider.Get(ctx, k)
	if err != nil || !ok {
		return nil, false, err
	}
	formatID, payload, err := wire.Decode(raw)
	if err != nil {
		s.selfHeal(ctx, k, "corrupt")
		return nil, false, nil
	}
	if formatID != s.codec.Format().ID() {
		s.selfHeal(ctx, k, "format_mismatch")
		return nil, false, nil
	}
	return payload, true, nil
}

func (s *Store[T]) selfHeal(ctx context.Context, storageKey, reason string) {
	if err := s.provider.Del(ctx, storageKey); err != nil {
		s.log.Warn("self-heal delete failed", taskcodec.Fields{"key": storageKey, "reason": reason, "err": err.Error()})
	}
	s.hooks.StoreSelfHeal(storageKey, reason)
}
