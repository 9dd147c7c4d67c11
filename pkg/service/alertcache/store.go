// Package alertcache persists upstream advisory responses per (year, page)
// in a key-value store with a TTL and a byte budget.
package alertcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/domain/interfaces"
	"github.com/secmon-lab/misemon/pkg/domain/model"
	"github.com/secmon-lab/misemon/pkg/metrics"
)

const (
	// DefaultPrefix is the key prefix of the current cache format
	DefaultPrefix = "alert_v3"
	// FamilyPrefix is shared by every cache format ever written
	FamilyPrefix = "alert_"
	// DefaultTTL is the lifetime of an entry
	DefaultTTL = 7 * 24 * time.Hour
	// DefaultMaxBytes is the largest serialized entry accepted
	DefaultMaxBytes = 5 * 1024 * 1024
)

// Cache-entry keys of every generation: alert_2024_page1, alert_v2_2024_page1, ...
var cacheKeyPattern = regexp.MustCompile(`^alert_(?:[A-Za-z0-9]+_)?\d+_page\d+$`)

// Store is the persistent cache of upstream responses. It never returns
// errors; failures degrade to a cache miss or a rejected write.
type Store struct {
	kv       interfaces.KVStore
	prefix   string
	ttl      time.Duration
	maxBytes int
	now      func() time.Time
}

// Option configures Store
type Option func(*Store)

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithPrefix sets the key prefix
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL sets the entry lifetime
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithMaxBytes sets the largest serialized entry accepted
func WithMaxBytes(n int) Option {
	return func(s *Store) {
		s.maxBytes = n
	}
}

// New creates a cache store over kv
func New(kv interfaces.KVStore, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		prefix:   DefaultPrefix,
		ttl:      DefaultTTL,
		maxBytes: DefaultMaxBytes,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key of (year, page)
func (s *Store) Key(year, page int) string {
	return fmt.Sprintf("%s_%d_page%d", s.prefix, year, page)
}

// Get returns the cached response of (year, page), or nil on a miss.
// Expired and unparseable entries are deleted.
func (s *Store) Get(ctx context.Context, year, page int) *model.RawResponse {
	logger := ctxlog.From(ctx)
	key := s.Key(year, page)

	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, model.ErrKeyNotFound) {
			logger.Warn("failed to read cache", "key", key, "error", err)
		}
		metrics.CacheLookupsTotal.WithLabelValues(metrics.LookupMiss).Inc()
		return nil
	}

	entry, err := decodeEntry(data)
	if err != nil {
		logger.Warn("remove corrupt cache entry", "key", key, "error", err)
		s.remove(ctx, key)
		metrics.CacheLookupsTotal.WithLabelValues(metrics.LookupCorrupt).Inc()
		return nil
	}

	if age := entry.Age(s.now()); age > s.ttl {
		logger.Debug("cache expired", "key", key, "age", age.String())
		s.remove(ctx, key)
		metrics.CacheLookupsTotal.WithLabelValues(metrics.LookupExpired).Inc()
		return nil
	}

	logger.Debug("cache hit", "key", key)
	metrics.CacheLookupsTotal.WithLabelValues(metrics.LookupHit).Inc()
	return entry.Response()
}

// Set stores the response of (year, page) and reports whether it was
// written. An oversized entry is rejected without writing. When the storage
// quota is exhausted the oldest entries are evicted and the write is retried
// once.
func (s *Store) Set(ctx context.Context, year, page int, raw *model.RawResponse) bool {
	logger := ctxlog.From(ctx)
	if raw == nil {
		return false
	}
	key := s.Key(year, page)

	data, err := json.Marshal(model.NewCacheEntry(year, page, raw, s.now()))
	if err != nil {
		logger.Warn("failed to encode cache entry", "key", key, "error", err)
		metrics.CacheWritesTotal.WithLabelValues(metrics.WriteFailed).Inc()
		return false
	}

	if len(data) > s.maxBytes {
		logger.Warn("cache entry too large",
			"key", key,
			"size", len(data),
			"limit", s.maxBytes,
		)
		metrics.CacheWritesTotal.WithLabelValues(metrics.WriteRejected).Inc()
		return false
	}

	err = s.kv.Set(ctx, key, data)
	if err != nil && errors.Is(err, model.ErrQuotaExceeded) {
		logger.Warn("storage full, evicting old cache entries", "key", key)
		s.evictOldest(ctx)
		err = s.kv.Set(ctx, key, data)
	}
	if err != nil {
		logger.Warn("failed to write cache", "key", key, "error", err)
		metrics.CacheWritesTotal.WithLabelValues(metrics.WriteFailed).Inc()
		return false
	}

	logger.Debug("cached", "key", key, "size", len(data))
	metrics.CacheWritesTotal.WithLabelValues(metrics.WriteOK).Inc()
	return true
}

// ClearAll removes every cache entry of any generation and returns how many
// were removed. Other keys sharing the family prefix are kept.
func (s *Store) ClearAll(ctx context.Context) int {
	keys, err := s.kv.Keys(ctx, FamilyPrefix)
	if err != nil {
		ctxlog.From(ctx).Warn("failed to list cache keys", "error", err)
		return 0
	}

	targets := make([]string, 0, len(keys))
	for _, key := range keys {
		if cacheKeyPattern.MatchString(key) || isPrefixed(key, s.prefix) {
			targets = append(targets, key)
		}
	}
	count := s.removeAll(ctx, targets)
	ctxlog.From(ctx).Info("cleared cache", "count", count)
	return count
}

// ClearYear removes every entry of one year under the current prefix
func (s *Store) ClearYear(ctx context.Context, year int) int {
	keys, err := s.kv.Keys(ctx, s.prefix+"_"+strconv.Itoa(year)+"_")
	if err != nil {
		ctxlog.From(ctx).Warn("failed to list cache keys", "year", year, "error", err)
		return 0
	}
	count := s.removeAll(ctx, keys)
	ctxlog.From(ctx).Info("cleared cache of year", "year", year, "count", count)
	return count
}

type evictCandidate struct {
	key       string
	timestamp int64
}

// evictOldest removes the oldest 20% (at least one) of the entries under the
// current prefix. Unparseable entries found on the way are removed too and do
// not count toward the 20%.
func (s *Store) evictOldest(ctx context.Context) {
	logger := ctxlog.From(ctx)

	keys, err := s.kv.Keys(ctx, s.prefix+"_")
	if err != nil {
		logger.Warn("failed to list cache keys for eviction", "error", err)
		return
	}

	candidates := make([]evictCandidate, 0, len(keys))
	for _, key := range keys {
		data, err := s.kv.Get(ctx, key)
		if err != nil {
			continue
		}
		entry, err := decodeEntry(data)
		if err != nil {
			s.remove(ctx, key)
			continue
		}
		candidates = append(candidates, evictCandidate{key: key, timestamp: entry.Timestamp})
	}
	if len(candidates) == 0 {
		return
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].timestamp < candidates[j].timestamp
	})
	n := EvictCount(len(candidates))

	for _, c := range candidates[:n] {
		s.remove(ctx, c.key)
	}
	metrics.CacheEvictedTotal.Add(float64(n))
	logger.Info("evicted old cache entries", "count", n, "total", len(candidates))
}

// EvictCount returns how many of n entries one eviction removes
func EvictCount(n int) int {
	if n <= 0 {
		return 0
	}
	// ceil(n * 0.2)
	return max(1, (n+4)/5)
}

func (s *Store) remove(ctx context.Context, key string) bool {
	if err := s.kv.Delete(ctx, key); err != nil {
		ctxlog.From(ctx).Warn("failed to delete cache entry", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) removeAll(ctx context.Context, keys []string) int {
	count := 0
	for _, key := range keys {
		if s.remove(ctx, key) {
			count++
		}
	}
	return count
}

func isPrefixed(key, prefix string) bool {
	return len(key) > len(prefix) && key[:len(prefix)+1] == prefix+"_"
}

func decodeEntry(data []byte) (*model.CacheEntry, error) {
	var entry model.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, goerr.Wrap(err, "failed to decode cache entry")
	}
	if len(entry.Payload) == 0 {
		return nil, goerr.New("cache entry has no payload")
	}
	return &entry, nil
}
