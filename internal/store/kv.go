package store

import (
	"context"
	"errors"
)

// KV is the durable key-value namespace backing all persisted records.
// It mirrors the storage contract the rest of the system relies on:
// finite capacity, no expiry, single writer per process.
type KV interface {
	// Get returns the raw value for key, or ErrNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes value under key, replacing any prior value. Returns
	// ErrQuotaExceeded when the namespace is full.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
	// Keys lists keys with the given prefix in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

var (
	ErrNotFound      = errors.New("not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrCorruptRecord = errors.New("corrupt record")
)

// Storage key scheme. This layout is the persistence protocol: it must
// stay stable across versions for recovery to succeed.
const (
	keyCatalog  = "catalog"
	keyAppState = "app-state"

	docKeyPrefix      = "doc:"
	settingsKeyPrefix = "settings:"
)

func docKey(id string) string      { return docKeyPrefix + id }
func settingsKey(id string) string { return settingsKeyPrefix + id }
