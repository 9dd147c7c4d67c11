package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/domain/model"
)

// Memory implements KVStore with in-memory storage. An optional quota bounds
// the total of len(key)+len(value) over all entries.
type Memory struct {
	mu    sync.RWMutex
	data  map[string][]byte
	used  int64
	quota int64
}

// MemoryOption configures Memory
type MemoryOption func(*Memory)

// WithMemoryQuota limits the stored bytes. Zero or negative means unlimited.
func WithMemoryQuota(quota int64) MemoryOption {
	return func(m *Memory) {
		m.quota = quota
	}
}

// NewMemory creates a new memory store
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		data: make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns a copy of the value stored for key
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, goerr.New("key is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.data[key]
	if !exists {
		return nil, goerr.Wrap(model.ErrKeyNotFound, "memory get", goerr.V("key", key))
	}

	// Return a copy to prevent external modification
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores value for key
func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return goerr.New("key is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.used + entrySize(key, value)
	if old, exists := m.data[key]; exists {
		next -= entrySize(key, old)
	}
	if m.quota > 0 && next > m.quota {
		return goerr.Wrap(model.ErrQuotaExceeded, "memory set",
			goerr.V("key", key),
			goerr.V("used", m.used),
			goerr.V("quota", m.quota),
		)
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	m.used = next
	return nil
}

// Delete removes key
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, exists := m.data[key]; exists {
		m.used -= entrySize(key, old)
		delete(m.data, key)
	}
	return nil
}

// Keys lists keys with the prefix in ascending order
func (m *Memory) Keys(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0)
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Used returns the number of bytes counted against the quota
func (m *Memory) Used() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.used
}

// Close is a no-op for memory store
func (m *Memory) Close() error {
	return nil
}

func entrySize(key string, value []byte) int64 {
	return int64(len(key) + len(value))
}
