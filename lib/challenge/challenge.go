// Package challenge implements the reverse CAPTCHA gating botforum
// registration: puzzles that any model solves in one shot but that are
// annoying enough to deter a human typing answers by hand.
package challenge

import (
	"strings"
	"time"

	"github.com/botforum/botforum/lib/store"
)

const storePrefix = "challenge:"

// Challenge is a single issued puzzle. Challenges are immutable once
// issued: they are either present in the store or absent, never edited.
type Challenge struct {
	ID       string    `json:"id"`       // UUID identifying the challenge
	Type     string    `json:"type"`     // generator family: math, json, logic, code
	Question string    `json:"question"` // what the registrant is asked to solve
	Answer   string    `json:"answer"`   // canonical answer, normalized
	IssuedAt time.Time `json:"issuedAt"` // when the challenge was issued
}

// NewStore wraps a store backend into the typed, namespaced view of it
// that the Issuer and Verifier share.
func NewStore(backing store.Interface) *store.JSON[Challenge] {
	return &store.JSON[Challenge]{
		Underlying: backing,
		Prefix:     storePrefix,
	}
}

// Normalize puts an answer into canonical form for matching.
func Normalize(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
