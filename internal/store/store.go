// Package store is the record cache that sits between the services and the
// catalog. It wraps an in-memory Badger database; entries carry a native
// TTL and nothing is persisted across restarts.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store: closed")

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
	now    func() time.Time
}

// New opens an in-memory store.
func New(logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil) // Disable Badger's internal logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("Record cache opened", "mode", "in-memory")
	}

	return &Store{
		db:     db,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing record cache")
	}
	return s.db.Close()
}

// Ping reports whether the store is usable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return ErrClosed
	}
	return nil
}

// GetCached decodes the value stored under key into dst.
// It returns false with a nil error on a miss or an expired entry.
func (s *Store) GetCached(ctx context.Context, key string, dst any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	k := buildKey(cachePrefix, key)
	defer releaseKey(k)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(k)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dst)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if errors.Is(err, badger.ErrDBClosed) {
		return false, ErrClosed
	}
	if err != nil {
		return false, fmt.Errorf("get cached %s: %w", key, err)
	}
	return true, nil
}

// SetCached stores value under key for ttl. A non-positive ttl stores the
// entry without expiry.
func (s *Store) SetCached(ctx context.Context, key string, value any, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cached %s: %w", key, err)
	}

	k := buildKey(cachePrefix, key)
	defer releaseKey(k)

	err = s.db.Update(func(txn *badger.Txn) error {
		// Badger keeps a reference to the key until commit, so copy it out of the pool buffer.
		e := badger.NewEntry(append([]byte(nil), k...), data)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	if errors.Is(err, badger.ErrDBClosed) {
		return ErrClosed
	}
	return err
}

// DeleteCached removes key. Deleting a missing key is not an error.
func (s *Store) DeleteCached(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	k := buildKey(cachePrefix, key)
	defer releaseKey(k)

	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(append([]byte(nil), k...))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Idempotent
		}
		return err
	})
}

// Len counts live entries.
func (s *Store) Len(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(cachePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
