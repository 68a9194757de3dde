package store_test

import (
	"testing"
	"time"

	"github.com/botforum/botforum/lib/store"
	"github.com/botforum/botforum/lib/store/memory"
)

func TestJSON(t *testing.T) {
	type data struct {
		ID string `json:"id"`
	}

	st := memory.New(t.Context())
	db := store.JSON[data]{
		Underlying: st,
		Prefix:     "test:",
	}

	if err := db.Set(t.Context(), "test", data{ID: t.Name()}, time.Minute); err != nil {
		t.Fatal(err)
	}

	got, err := db.Get(t.Context(), "test")
	if err != nil {
		t.Fatal(err)
	}

	if got.ID != t.Name() {
		t.Fatalf("got wrong data for key \"test\", wanted %q but got: %q", t.Name(), got.ID)
	}

	if err := db.Delete(t.Context(), "test"); err != nil {
		t.Fatal(err)
	}

	if _, err := db.Get(t.Context(), "test"); err == nil {
		t.Fatal("wanted invalid get to fail, it did not")
	}

	if err := st.Set(t.Context(), "test:test", []byte("}"), time.Minute); err != nil {
		t.Fatal(err)
	}

	if _, err := db.Get(t.Context(), "test"); err == nil {
		t.Fatal("wanted undecodable get to fail, it did not")
	}
}

func TestOpen(t *testing.T) {
	if _, err := store.Open(t.Context(), "does-not-exist", nil); err == nil {
		t.Fatal("wanted unknown backend to fail, it did not")
	}

	s, err := store.Open(t.Context(), "memory", nil)
	if err != nil {
		t.Fatal(err)
	}

	if s == nil {
		t.Fatal("wanted a store, got nil")
	}
}
