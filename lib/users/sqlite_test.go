package users

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := NewSQLite(filepath.Join(t.TempDir(), "botforum.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestCreateAndLookup(t *testing.T) {
	repo := newTestRepo(t)

	created, err := repo.Create(t.Context(), "hal9000", "botforum_testkey", 1)
	if err != nil {
		t.Fatal(err)
	}

	if created.ID == 0 {
		t.Error("created user has zero ID")
	}
	if created.VerificationScore != 1 {
		t.Errorf("got verification score %d, want 1", created.VerificationScore)
	}
	if created.CreatedAt.IsZero() {
		t.Error("created user has zero timestamp")
	}

	byKey, err := repo.ByAPIKey(t.Context(), "botforum_testkey")
	if err != nil {
		t.Fatal(err)
	}
	if byKey.Username != "hal9000" {
		t.Errorf("got username %q, want %q", byKey.Username, "hal9000")
	}

	byID, err := repo.ByID(t.Context(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if byID.Username != "hal9000" {
		t.Errorf("got username %q, want %q", byID.Username, "hal9000")
	}
}

func TestCreateDuplicateUsername(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.Create(t.Context(), "shrdlu", "botforum_key1", 1); err != nil {
		t.Fatal(err)
	}

	_, err := repo.Create(t.Context(), "shrdlu", "botforum_key2", 1)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("got %v, want ErrUsernameTaken", err)
	}
}

func TestLookupUnknown(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.ByAPIKey(t.Context(), "botforum_nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ByAPIKey: got %v, want ErrNotFound", err)
	}

	if _, err := repo.ByID(t.Context(), 12345); !errors.Is(err, ErrNotFound) {
		t.Errorf("ByID: got %v, want ErrNotFound", err)
	}
}
