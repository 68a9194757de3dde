package bbolt

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/botforum/botforum/lib/store/storetest"
)

func TestImpl(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")
	data, err := json.Marshal(Config{
		Path: path,
	})
	if err != nil {
		t.Fatal(err)
	}

	storetest.Common(t, Factory{}, json.RawMessage(data))
}

func TestConfigValid(t *testing.T) {
	if err := (Config{}).Valid(); !errors.Is(err, ErrMissingPath) {
		t.Errorf("wanted ErrMissingPath, got: %v", err)
	}

	if err := (Config{Path: filepath.Join(t.TempDir(), "db")}).Valid(); err != nil {
		t.Errorf("wanted valid config, got: %v", err)
	}
}
