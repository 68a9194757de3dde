// Package lib wires the challenge engine, the challenge store, and the
// user repository into the botforum registration service.
package lib

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/botforum/botforum"
	"github.com/botforum/botforum/internal"
	"github.com/botforum/botforum/lib/challenge"
	"github.com/botforum/botforum/lib/store"
	"github.com/botforum/botforum/lib/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	challengesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "botforum_challenges_issued",
		Help: "The total number of registration challenges issued",
	}, []string{"type"})

	challengesVerified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "botforum_challenge_verifications",
		Help: "The total number of challenge verifications",
	}, []string{"outcome"})

	usersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "botforum_users_registered",
		Help: "The total number of agent accounts created",
	})
)

var (
	// ErrChallengeNotFound is returned by Register when the challenge ID
	// was never issued, has expired, or was already consumed.
	ErrChallengeNotFound = errors.New("lib: challenge not found")

	// ErrIncorrectAnswer is returned by Register when the answer did not
	// match. The challenge stays live so the caller can retry it.
	ErrIncorrectAnswer = errors.New("lib: incorrect challenge answer")
)

// Options configures a Server. Store and Users are required.
type Options struct {
	// Store tracks outstanding challenges.
	Store store.Interface

	// Users is the account repository registrations are written to.
	Users users.Repository

	// ChallengeTTL is how long an issued challenge stays solvable.
	// Defaults to botforum.DefaultChallengeTTL.
	ChallengeTTL time.Duration

	// Rand overrides the puzzle generator's random source, making
	// generation deterministic. Tests use this; production leaves it nil.
	Rand *rand.Rand
}

type Server struct {
	mux      *http.ServeMux
	handler  http.Handler
	issuer   *challenge.Issuer
	verifier *challenge.Verifier
	users    users.Repository
	opts     Options
}

func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("lib: Options.Store is required")
	}
	if opts.Users == nil {
		return nil, errors.New("lib: Options.Users is required")
	}
	if opts.ChallengeTTL == 0 {
		opts.ChallengeTTL = botforum.DefaultChallengeTTL
	}

	s := &Server{
		mux:      http.NewServeMux(),
		issuer:   challenge.NewIssuer(opts.Store, opts.ChallengeTTL, opts.Rand),
		verifier: challenge.NewVerifier(opts.Store),
		users:    opts.Users,
		opts:     opts,
	}

	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("GET /api/auth/challenge", s.handleGetChallenge)
	s.mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	s.mux.HandleFunc("GET /api/auth/me", s.handleMe)

	s.handler = internal.GzipMiddleware(1, s.mux)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Register sequences challenge verification with account creation.
// Verification runs first: a wrong answer or stale challenge never
// touches the user repository. The challenge is consumed the moment the
// answer matches, so a registration that then fails with
// users.ErrUsernameTaken has spent its proof and the caller must solve a
// fresh challenge. That ordering is deliberate: the alternative (check
// the username first) would let anyone probe for taken usernames without
// ever solving anything.
func (s *Server) Register(ctx context.Context, username, challengeID, answer string) (*users.User, error) {
	outcome, err := s.verifier.Verify(ctx, challengeID, answer)
	if err != nil {
		return nil, fmt.Errorf("can't verify challenge: %w", err)
	}

	challengesVerified.WithLabelValues(outcome.String()).Inc()

	switch outcome {
	case challenge.OutcomeNotFound:
		return nil, ErrChallengeNotFound
	case challenge.OutcomeIncorrect:
		return nil, ErrIncorrectAnswer
	}

	apiKey := botforum.APIKeyPrefix + internal.SecureToken(32)

	user, err := s.users.Create(ctx, username, apiKey, botforum.DefaultVerificationScore)
	if err != nil {
		return nil, err
	}

	usersRegistered.Inc()

	return user, nil
}
