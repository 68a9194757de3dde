// Package bbolt is a store backend persisted to a bbolt database file.
// It keeps challenges alive across restarts of a single instance. For
// multiple instances sharing one store, use the valkey backend.
package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/botforum/botforum/lib/store"
	"go.etcd.io/bbolt"
)

var bucketName = []byte("entries")

// envelope is the on-disk format: the raw value alongside its expiry so
// that reads and the cleanup pass can test staleness without the caller's
// involvement.
type envelope struct {
	Expiry time.Time `json:"expiry"`
	Value  []byte    `json:"value"`
}

// Store implements store.Interface on top of a single bbolt bucket.
//
// Expiry is enforced lazily: Get treats a stale envelope as absent and
// queues a background delete, and a ticker pass removes whatever reads
// never touched.
type Store struct {
	bdb *bbolt.DB
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.bdb.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(bucketName)
		if bkt == nil || bkt.Get([]byte(key)) == nil {
			return fmt.Errorf("%w: %q", store.ErrNotFound, key)
		}

		return bkt.Delete([]byte(key))
	})
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var result []byte

	if err := s.bdb.View(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(bucketName)
		if bkt == nil {
			return fmt.Errorf("%w: %q", store.ErrNotFound, key)
		}

		raw := bkt.Get([]byte(key))
		if raw == nil {
			return fmt.Errorf("%w: %q", store.ErrNotFound, key)
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("[unexpected] %w: %w", store.ErrCantDecode, err)
		}

		if time.Now().After(env.Expiry) {
			go s.Delete(context.Background(), key)
			return fmt.Errorf("%w: %q", store.ErrNotFound, key)
		}

		result = make([]byte, len(env.Value))
		copy(result, env.Value)

		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, expiry time.Duration) error {
	raw, err := json.Marshal(envelope{
		Expiry: time.Now().Add(expiry),
		Value:  value,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrCantEncode, err)
	}

	return s.bdb.Update(func(tx *bbolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return fmt.Errorf("%w: %w: %q (create bucket)", store.ErrCantEncode, err, key)
		}

		return bkt.Put([]byte(key), raw)
	})
}

func (s *Store) cleanup(ctx context.Context) error {
	now := time.Now()

	return s.bdb.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(bucketName)
		if bkt == nil {
			return nil
		}

		c := bkt.Cursor()
		for key, raw := c.First(); key != nil; key, raw = c.Next() {
			var env envelope
			if err := json.Unmarshal(raw, &env); err != nil {
				slog.Warn("undecodable entry found during cleanup, deleting it", "key", string(key), "err", err)
				if err := c.Delete(); err != nil {
					return err
				}
				continue
			}

			if now.After(env.Expiry) {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}

		return nil
	})
}

func (s *Store) cleanupThread(ctx context.Context) {
	t := time.NewTicker(5 * time.Minute)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.cleanup(ctx); err != nil {
				slog.Error("error during bbolt cleanup", "err", err)
			}
		}
	}
}
