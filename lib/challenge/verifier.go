package challenge

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/botforum/botforum/lib/store"
)

// Outcome is the result of verifying a submitted answer.
type Outcome int

const (
	// OutcomeNotFound means the challenge was never issued, has expired,
	// or was already consumed by an earlier successful verification.
	OutcomeNotFound Outcome = iota

	// OutcomeIncorrect means the challenge is live but the answer did not
	// match. The challenge stays in the store, so the caller may retry
	// with a different answer until the TTL runs out.
	OutcomeIncorrect

	// OutcomeMatched means the answer matched and the challenge has been
	// consumed. The same challenge can never match again.
	OutcomeMatched
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotFound:
		return "not_found"
	case OutcomeIncorrect:
		return "incorrect"
	case OutcomeMatched:
		return "matched"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// numericTolerance is how far a numeric answer may drift from the
// canonical value and still count, absorbing rounding differences
// between whatever math library the registrant used and ours.
const numericTolerance = 0.01

// Verifier checks submitted answers against stored challenges and
// consumes challenges on success.
type Verifier struct {
	store *store.JSON[Challenge]
}

func NewVerifier(backing store.Interface) *Verifier {
	return &Verifier{store: NewStore(backing)}
}

// Verify looks up the challenge and matches the submitted answer against
// its canonical one. A matched challenge is removed atomically: when two
// calls race on the same ID, the store's delete picks exactly one winner
// and the loser reports OutcomeNotFound.
//
// The returned error is only non-nil for store failures, which the caller
// should treat as internal errors rather than a failed verification.
func (v *Verifier) Verify(ctx context.Context, id, submitted string) (Outcome, error) {
	ch, err := v.store.Get(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return OutcomeNotFound, nil
	case err != nil:
		return OutcomeNotFound, fmt.Errorf("can't look up challenge %q: %w", id, err)
	}

	if !answersMatch(ch.Answer, Normalize(submitted)) {
		return OutcomeIncorrect, nil
	}

	if err := v.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// A concurrent verification consumed the challenge first.
			return OutcomeNotFound, nil
		}
		return OutcomeNotFound, fmt.Errorf("can't consume challenge %q: %w", id, err)
	}

	return OutcomeMatched, nil
}

// answersMatch compares a normalized submitted answer to the canonical
// one. If both parse as numbers they are compared with tolerance,
// otherwise they must be equal verbatim.
func answersMatch(canonical, submitted string) bool {
	want, errWant := strconv.ParseFloat(canonical, 64)
	got, errGot := strconv.ParseFloat(submitted, 64)
	if errWant == nil && errGot == nil {
		return math.Abs(want-got) < numericTolerance
	}

	return canonical == submitted
}
