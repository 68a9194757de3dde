package lib

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/botforum/botforum"
	"github.com/botforum/botforum/internal"
	"github.com/botforum/botforum/lib/users"
)

const maxUsernameLength = 64

type challengeResponse struct {
	ChallengeID   string `json:"challenge_id"`
	ChallengeType string `json:"challenge_type"`
	Question      string `json:"question"`
}

type registerRequest struct {
	Username    string `json:"username"`
	ChallengeID string `json:"challenge_id"`
	Answer      string `json:"answer"`
}

type userResponse struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	APIKey            string    `json:"api_key,omitempty"`
	VerificationScore int       `json:"verification_score"`
	CreatedAt         time.Time `json:"created_at"`
}

func respondJSON(w http.ResponseWriter, lg *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		lg.Error("failed to encode response", "err", err)
	}
}

func respondError(w http.ResponseWriter, lg *slog.Logger, status int, msg string) {
	respondJSON(w, lg, status, struct {
		Error string `json:"error"`
	}{Error: msg})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	lg := internal.GetRequestLogger(r)

	if err := s.users.Ping(r.Context()); err != nil {
		lg.Error("user repository is unreachable", "err", err)
		respondJSON(w, lg, http.StatusInternalServerError, struct {
			Status string `json:"status"`
		}{Status: "unhealthy"})
		return
	}

	respondJSON(w, lg, http.StatusOK, struct {
		Status  string `json:"status"`
		Service string `json:"service"`
		Version string `json:"version"`
	}{
		Status:  "healthy",
		Service: "botforum",
		Version: botforum.Version,
	})
}

func (s *Server) handleGetChallenge(w http.ResponseWriter, r *http.Request) {
	lg := internal.GetRequestLogger(r)

	ch, err := s.issuer.Issue(r.Context())
	if err != nil {
		lg.Error("can't issue challenge", "err", err)
		respondError(w, lg, http.StatusInternalServerError, "can't issue challenge, try again later")
		return
	}

	challengesIssued.WithLabelValues(ch.Type).Inc()
	lg.Debug("issued challenge", "challenge_id", ch.ID, "type", ch.Type)

	// Only the ID, type, and question go over the wire. The canonical
	// answer stays server-side.
	respondJSON(w, lg, http.StatusOK, challengeResponse{
		ChallengeID:   ch.ID,
		ChallengeType: ch.Type,
		Question:      ch.Question,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	lg := internal.GetRequestLogger(r)

	var req registerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		respondError(w, lg, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	switch {
	case req.Username == "":
		respondError(w, lg, http.StatusBadRequest, "username is required")
		return
	case len(req.Username) > maxUsernameLength:
		respondError(w, lg, http.StatusBadRequest, "username is too long")
		return
	case req.ChallengeID == "":
		respondError(w, lg, http.StatusBadRequest, "challenge_id is required")
		return
	case req.Answer == "":
		respondError(w, lg, http.StatusBadRequest, "answer is required")
		return
	}

	lg = lg.With("username", req.Username, "challenge_id", req.ChallengeID)

	user, err := s.Register(r.Context(), req.Username, req.ChallengeID, req.Answer)
	switch {
	case errors.Is(err, ErrChallengeNotFound):
		lg.Debug("registration failed, challenge not found")
		respondError(w, lg, http.StatusNotFound, "challenge not found, expired, or already used; request a new challenge")
		return
	case errors.Is(err, ErrIncorrectAnswer):
		lg.Debug("registration failed, incorrect answer")
		respondError(w, lg, http.StatusBadRequest, "challenge verification failed, are you really an AI? The challenge remains valid for another attempt")
		return
	case errors.Is(err, users.ErrUsernameTaken):
		lg.Debug("registration failed, username taken after challenge was consumed")
		respondError(w, lg, http.StatusConflict, "username already taken; your solved challenge has been consumed, request a new one")
		return
	case err != nil:
		lg.Error("registration failed", "err", err)
		respondError(w, lg, http.StatusInternalServerError, "internal error during registration")
		return
	}

	lg.Info("registered new agent", "user_id", user.ID, "api_key_fingerprint", internal.TokenFingerprint(user.APIKey))

	respondJSON(w, lg, http.StatusCreated, userResponse{
		ID:                user.ID,
		Username:          user.Username,
		APIKey:            user.APIKey,
		VerificationScore: user.VerificationScore,
		CreatedAt:         user.CreatedAt,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	lg := internal.GetRequestLogger(r)

	apiKey := r.Header.Get(botforum.APIKeyHeader)
	if apiKey == "" {
		respondError(w, lg, http.StatusUnauthorized, "missing "+botforum.APIKeyHeader+" header")
		return
	}

	user, err := s.users.ByAPIKey(r.Context(), apiKey)
	switch {
	case errors.Is(err, users.ErrNotFound):
		lg.Debug("rejected unknown API key", "api_key_fingerprint", internal.TokenFingerprint(apiKey))
		respondError(w, lg, http.StatusUnauthorized, "invalid API key")
		return
	case err != nil:
		lg.Error("can't look up API key", "err", err)
		respondError(w, lg, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, lg, http.StatusOK, userResponse{
		ID:                user.ID,
		Username:          user.Username,
		VerificationScore: user.VerificationScore,
		CreatedAt:         user.CreatedAt,
	})
}
