package challenge

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/botforum/botforum"
	"github.com/botforum/botforum/lib/store"
	"github.com/google/uuid"
)

// Issuer mints challenges and records them in the store under a fresh
// UUID, bounded by the configured TTL.
type Issuer struct {
	store *store.JSON[Challenge]
	ttl   time.Duration

	// rand.Rand is not safe for concurrent use, and handlers issue
	// challenges concurrently.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewIssuer creates an Issuer over the given backing store. Pass a seeded
// rng for deterministic puzzle generation in tests, or nil for a
// time-seeded one. A non-positive ttl selects the default.
func NewIssuer(backing store.Interface, ttl time.Duration, rng *rand.Rand) *Issuer {
	if ttl <= 0 {
		ttl = botforum.DefaultChallengeTTL
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Issuer{
		store: NewStore(backing),
		ttl:   ttl,
		rng:   rng,
	}
}

// Issue mints one challenge and stores it. The returned Challenge
// includes the canonical answer; callers exposing challenges over the
// wire must only reveal the ID, type, and question.
func (i *Issuer) Issue(ctx context.Context) (Challenge, error) {
	i.mu.Lock()
	family, question, answer := Mint(i.rng)
	i.mu.Unlock()

	ch := Challenge{
		ID:       uuid.NewString(),
		Type:     family,
		Question: question,
		Answer:   Normalize(answer),
		IssuedAt: time.Now().UTC(),
	}

	if err := i.store.Set(ctx, ch.ID, ch, i.ttl); err != nil {
		return Challenge{}, fmt.Errorf("can't record challenge: %w", err)
	}

	return ch, nil
}

// TTL reports how long issued challenges stay solvable.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}
