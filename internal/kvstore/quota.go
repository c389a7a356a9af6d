package kvstore

import (
	"context"
	"fmt"
)

// QuotaStore rejects values longer than maxBytes before they reach the
// wrapped store, leaving the stored value unchanged.
type QuotaStore struct {
	Store
	maxBytes int
}

func NewQuotaStore(inner Store, maxBytes int) *QuotaStore {
	return &QuotaStore{Store: inner, maxBytes: maxBytes}
}

func (q *QuotaStore) Set(ctx context.Context, key, value string) error {
	if q.maxBytes > 0 && len(value) > q.maxBytes {
		return fmt.Errorf("set %q: %d bytes over %d byte limit: %w", key, len(value), q.maxBytes, ErrQuotaExceeded)
	}
	return q.Store.Set(ctx, key, value)
}
