package interfaces

//go:generate moq -out mocks/repository_mock.go -pkg mocks . KVStore

import (
	"context"
)

// KVStore is a persistent key-value store with a byte budget. Get returns
// model.ErrKeyNotFound for an absent key and Set returns
// model.ErrQuotaExceeded when the budget is exhausted.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys returns every key starting with prefix in ascending order
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close closes the store connection
	Close() error
}
