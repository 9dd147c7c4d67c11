package repository

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/redis/go-redis/v9"
	"github.com/secmon-lab/misemon/pkg/domain/model"
)

const (
	redisScanCount = 100
	redisSeparator = ":"
)

// Redis implements KVStore with Redis. Keys are stored under an optional
// namespace, as "<namespace>:<key>", so that several deployments can share
// one server.
type Redis struct {
	client    *redis.Client
	namespace string
	keyPrefix string
}

func redisKeyPrefix(namespace string) string {
	if namespace == "" {
		return ""
	}
	return namespace + redisSeparator
}

// NewRedis connects to the Redis server at addr, which may be a redis:// URL
// or a plain host:port
func NewRedis(ctx context.Context, addr, namespace string) (*Redis, error) {
	opt, err := redis.ParseURL(addr)
	if err != nil {
		opt = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, goerr.Wrap(err, "failed to connect to redis", goerr.V("addr", opt.Addr))
	}

	ctxlog.From(ctx).Info("Redis store initialized successfully",
		"addr", opt.Addr,
		"db", opt.DB,
		"namespace", namespace,
	)

	return &Redis{
		client:    client,
		namespace: namespace,
		keyPrefix: redisKeyPrefix(namespace),
	}, nil
}

func (r *Redis) fullKey(key string) string {
	return r.keyPrefix + key
}

// Get retrieves the value of key
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, goerr.New("key is empty")
	}

	value, err := r.client.Get(ctx, r.fullKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, goerr.Wrap(model.ErrKeyNotFound, "redis get", goerr.V("key", key))
		}
		return nil, goerr.Wrap(err, "failed to get key from redis", goerr.V("key", key))
	}
	return value, nil
}

// Set stores value for key without expiration
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return goerr.New("key is empty")
	}

	if err := r.client.Set(ctx, r.fullKey(key), value, 0).Err(); err != nil {
		if isOOM(err) {
			return goerr.Wrap(model.ErrQuotaExceeded, "redis set",
				goerr.V("key", key),
				goerr.V("cause", err.Error()),
			)
		}
		return goerr.Wrap(err, "failed to set key to redis", goerr.V("key", key))
	}
	return nil
}

// Redis reports maxmemory rejections with the OOM error prefix
func isOOM(err error) bool {
	return strings.HasPrefix(err.Error(), "OOM ")
}

// Delete removes key
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.fullKey(key)).Err(); err != nil {
		return goerr.Wrap(err, "failed to delete key from redis", goerr.V("key", key))
	}
	return nil
}

// Keys lists keys with the prefix in ascending order
func (r *Redis) Keys(ctx context.Context, prefix string) ([]string, error) {
	match := escapeGlob(r.fullKey(prefix)) + "*"

	seen := make(map[string]struct{})
	var cursor uint64
	for {
		batch, next, err := r.client.Scan(ctx, cursor, match, redisScanCount).Result()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan redis keys", goerr.V("prefix", prefix))
		}
		for _, k := range batch {
			seen[strings.TrimPrefix(k, r.keyPrefix)] = struct{}{}
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	// SCAN may return a key more than once
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func escapeGlob(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return replacer.Replace(s)
}

// Close closes the Redis client
func (r *Redis) Close() error {
	return r.client.Close()
}
