package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknownBackend = errors.New("store: unknown backend")

	registry map[string]Factory = map[string]Factory{}
	regLock  sync.RWMutex
)

// Factory builds store backends from JSON configuration. Backends register
// themselves in an init function; import lib/store/all to pull in every
// built-in backend.
type Factory interface {
	Build(ctx context.Context, config json.RawMessage) (Interface, error)
	Valid(config json.RawMessage) error
}

func Register(name string, impl Factory) {
	regLock.Lock()
	defer regLock.Unlock()

	registry[name] = impl
}

func Get(name string) (Factory, bool) {
	regLock.RLock()
	defer regLock.RUnlock()
	result, ok := registry[name]
	return result, ok
}

func Methods() []string {
	regLock.RLock()
	defer regLock.RUnlock()
	var result []string
	for method := range registry {
		result = append(result, method)
	}
	sort.Strings(result)
	return result
}

// Open validates the configuration for the named backend and builds it.
func Open(ctx context.Context, backend string, config json.RawMessage) (Interface, error) {
	fac, ok := Get(backend)
	if !ok {
		return nil, fmt.Errorf("%w: %q (have: %v)", ErrUnknownBackend, backend, Methods())
	}

	if err := fac.Valid(config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadConfig, err)
	}

	return fac.Build(ctx, config)
}
