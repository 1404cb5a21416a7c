package kv

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

var slotBucket = []byte("slots")

// BoltNamespace stores slots in a single BoltDB bucket.
type BoltNamespace struct {
	db *bbolt.DB
}

// OpenBolt opens a BoltDB-backed namespace at the provided path.
func OpenBolt(path string) (*BoltNamespace, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(slotBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create slots bucket: %w", err)
	}

	return &BoltNamespace{db: db}, nil
}

// Get returns a copy of the value for key, taken inside a read transaction.
func (s *BoltNamespace) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(slotBucket).Get([]byte(key))
		if v == nil {
			return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		// Values are only valid for the life of the transaction.
		value = bytes.Clone(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put writes value under key in one update transaction.
func (s *BoltNamespace) Put(_ context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(slotBucket).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSaveFailed, key, err)
	}
	return nil
}

// Delete removes key from the bucket. Missing keys are ignored.
func (s *BoltNamespace) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(slotBucket).Delete([]byte(key))
	})
}

// Keys returns the bucket keys in byte order.
func (s *BoltNamespace) Keys(_ context.Context) ([]string, error) {
	keys := []string{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(slotBucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return keys, nil
}

// Ping checks that the slots bucket is readable.
func (s *BoltNamespace) Ping(context.Context) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(slotBucket) == nil {
			return fmt.Errorf("slots bucket missing")
		}
		return nil
	})
}

// Close releases the database file lock.
func (s *BoltNamespace) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
