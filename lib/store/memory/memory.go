// Package memory is the default in-memory store backend. Challenges are
// meant to be short-lived and cost nothing to re-request, so losing them
// on restart is fine. This backend does not scale past one instance; use
// the valkey backend for that.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/botforum/botforum/lib/store"
)

type factory struct{}

func (factory) Build(ctx context.Context, _ json.RawMessage) (store.Interface, error) {
	return New(ctx), nil
}

func (factory) Valid(json.RawMessage) error { return nil }

func init() {
	store.Register("memory", factory{})
}

type entry struct {
	value  []byte
	expiry time.Time
}

type impl struct {
	mu      sync.Mutex
	entries map[string]entry
}

// New creates an in-memory store. The background sweep only exists to bound
// memory usage between requests: every public operation sweeps first, so an
// expired entry is never observable through the Interface either way.
func New(ctx context.Context) store.Interface {
	result := &impl{entries: map[string]entry{}}

	go result.cleanupThread(ctx)

	return result
}

func (i *impl) Delete(_ context.Context, key string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.sweep(time.Now())

	if _, ok := i.entries[key]; !ok {
		return fmt.Errorf("%w: %q", store.ErrNotFound, key)
	}

	delete(i.entries, key)
	return nil
}

func (i *impl) Get(_ context.Context, key string) ([]byte, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.sweep(time.Now())

	ent, ok := i.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", store.ErrNotFound, key)
	}

	result := make([]byte, len(ent.value))
	copy(result, ent.value)

	return result, nil
}

func (i *impl) Set(_ context.Context, key string, value []byte, expiry time.Duration) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.sweep(time.Now())

	buf := make([]byte, len(value))
	copy(buf, value)

	i.entries[key] = entry{value: buf, expiry: time.Now().Add(expiry)}
	return nil
}

// sweep removes every expired entry. Callers must hold i.mu.
func (i *impl) sweep(now time.Time) {
	for key, ent := range i.entries {
		if now.After(ent.expiry) {
			delete(i.entries, key)
		}
	}
}

func (i *impl) cleanupThread(ctx context.Context) {
	t := time.NewTicker(5 * time.Minute)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			i.mu.Lock()
			i.sweep(time.Now())
			i.mu.Unlock()
		}
	}
}
