// Package kvstore provides durable string-keyed storage for the library.
//
// Values are opaque strings produced by the caller; the store never
// interprets them. A Set either fully replaces the value at a key or leaves
// the previous value untouched.
//
// # Backends
//
//	sqlite   gorm + SQLite file, survives restarts (default)
//	redis    go-redis client, keys namespaced with a prefix
//	memory   process-local map, lost on exit
//
// Any backend can be wrapped in a QuotaStore to reject oversized values the
// way browser storage rejects writes past its quota.
package kvstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key holds no value.
	ErrNotFound = errors.New("kvstore: key not found")

	// ErrQuotaExceeded is returned by Set when the value is larger than the configured quota.
	ErrQuotaExceeded = errors.New("kvstore: quota exceeded")
)

// Store is the contract every backend implements.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
