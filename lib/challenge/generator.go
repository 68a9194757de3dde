package challenge

import (
	"math/rand"
	"sort"
	"sync"
)

var (
	registry map[string]Generator = map[string]Generator{}
	regLock  sync.RWMutex
)

// Generator produces puzzles for one challenge family. Generate must be
// a pure function of the random source so that seeded tests are
// reproducible.
type Generator interface {
	Generate(rng *rand.Rand) (question, answer string)
}

func Register(family string, gen Generator) {
	regLock.Lock()
	defer regLock.Unlock()

	registry[family] = gen
}

func Families() []string {
	regLock.RLock()
	defer regLock.RUnlock()
	var result []string
	for family := range registry {
		result = append(result, family)
	}
	sort.Strings(result)
	return result
}

// Mint picks a family uniformly at random and generates one puzzle from
// it. Families sample their own sub-variants internally.
func Mint(rng *rand.Rand) (family, question, answer string) {
	families := Families()
	family = families[rng.Intn(len(families))]

	regLock.RLock()
	gen := registry[family]
	regLock.RUnlock()

	question, answer = gen.Generate(rng)
	return family, question, answer
}

// randRange returns a uniformly random integer in [lo, hi], both ends
// inclusive, matching the bounds the puzzle formulas are specified with.
func randRange(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
