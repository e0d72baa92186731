package credstore

import (
	"context"
	"sync"

	"github.com/johnbekele/yohans-blog/internal/logging"
)

// Failover wraps a persistent Store and degrades to an in-memory one on the
// first backend failure. Callers get a session that keeps working for the
// lifetime of the process instead of an error; the failure is logged once.
//
// Its methods never return a non-nil error, so the auth layers can treat
// storage as unreliable without error handling at every call site. Callers
// that need to distinguish "empty" from "failed" should use SQLite
// directly.
type Failover struct {
	mu       sync.Mutex
	primary  Store
	memory   *Memory
	degraded bool
	log      logging.Logger
}

func NewFailover(primary Store, log logging.Logger) *Failover {
	return &Failover{
		primary: primary,
		memory:  NewMemory(),
		log:     log.With("component", "credstore"),
	}
}

// Degraded reports whether the store has switched to the volatile backend.
func (f *Failover) Degraded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.degraded
}

func (f *Failover) backend(ctx context.Context) Store {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.degraded {
		return f.memory
	}
	return f.primary
}

func (f *Failover) degrade(ctx context.Context, op string, err error) {
	f.mu.Lock()
	already := f.degraded
	f.degraded = true
	f.mu.Unlock()

	if !already {
		f.log.Warn(ctx, "credential storage failed, session will not persist",
			"op", op, "error", err.Error())
	}
}

func (f *Failover) Get(ctx context.Context, key string) (string, error) {
	value, err := f.backend(ctx).Get(ctx, key)
	if err != nil {
		f.degrade(ctx, "get", err)
		value, _ = f.memory.Get(ctx, key)
	}
	return value, nil
}

func (f *Failover) Set(ctx context.Context, key, value string) error {
	if err := f.backend(ctx).Set(ctx, key, value); err != nil {
		f.degrade(ctx, "set", err)
		_ = f.memory.Set(ctx, key, value)
	}
	return nil
}

func (f *Failover) SetMany(ctx context.Context, values map[string]string) error {
	if err := f.backend(ctx).SetMany(ctx, values); err != nil {
		f.degrade(ctx, "setmany", err)
		_ = f.memory.SetMany(ctx, values)
	}
	return nil
}

func (f *Failover) Remove(ctx context.Context, key string) error {
	if err := f.backend(ctx).Remove(ctx, key); err != nil {
		f.degrade(ctx, "remove", err)
		_ = f.memory.Remove(ctx, key)
	}
	return nil
}

func (f *Failover) Clear(ctx context.Context) error {
	if err := f.backend(ctx).Clear(ctx); err != nil {
		f.degrade(ctx, "clear", err)
		_ = f.memory.Clear(ctx)
	}
	return nil
}
