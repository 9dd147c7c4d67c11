package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/domain/interfaces"
	"github.com/secmon-lab/misemon/pkg/repository"
	"github.com/urfave/cli/v3"
)

// Storage backends
const (
	BackendMemory    = "memory"
	BackendFile      = "file"
	BackendFirestore = "firestore"
	BackendRedis     = "redis"
)

// Storage holds configuration of the key-value store backing the cache and
// preferences
type Storage struct {
	Backend string
	Quota   int64

	Dir string

	FirestoreProject    string
	FirestoreDatabase   string
	FirestoreCollection string

	RedisAddr      string
	RedisNamespace string
}

// Flags returns CLI flags for Storage configuration
func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage",
			Usage:       "Storage backend (memory, file, firestore, redis)",
			Category:    "Storage",
			Value:       BackendFile,
			Sources:     cli.EnvVars("MISEMON_STORAGE"),
			Destination: &s.Backend,
		},
		&cli.Int64Flag{
			Name:        "storage-quota",
			Usage:       "Byte quota of the memory and file backends (0 is unlimited)",
			Category:    "Storage",
			Sources:     cli.EnvVars("MISEMON_STORAGE_QUOTA"),
			Destination: &s.Quota,
		},
		&cli.StringFlag{
			Name:        "storage-dir",
			Usage:       "Directory of the file backend (default: user cache directory)",
			Category:    "Storage",
			Sources:     cli.EnvVars("MISEMON_STORAGE_DIR"),
			Destination: &s.Dir,
		},
		&cli.StringFlag{
			Name:        "firestore-project",
			Usage:       "GCP project ID for Firestore",
			Category:    "Storage",
			Sources:     cli.EnvVars("MISEMON_FIRESTORE_PROJECT"),
			Destination: &s.FirestoreProject,
		},
		&cli.StringFlag{
			Name:        "firestore-database",
			Usage:       "Firestore database ID",
			Category:    "Storage",
			Value:       "(default)",
			Sources:     cli.EnvVars("MISEMON_FIRESTORE_DATABASE"),
			Destination: &s.FirestoreDatabase,
		},
		&cli.StringFlag{
			Name:        "firestore-collection",
			Usage:       "Firestore collection holding the entries",
			Category:    "Storage",
			Value:       repository.DefaultFirestoreCollection,
			Sources:     cli.EnvVars("MISEMON_FIRESTORE_COLLECTION"),
			Destination: &s.FirestoreCollection,
		},
		&cli.StringFlag{
			Name:        "redis-addr",
			Usage:       "Redis address or redis:// URL",
			Category:    "Storage",
			Value:       "localhost:6379",
			Sources:     cli.EnvVars("MISEMON_REDIS_ADDR"),
			Destination: &s.RedisAddr,
		},
		&cli.StringFlag{
			Name:        "redis-namespace",
			Usage:       "Key namespace in Redis",
			Category:    "Storage",
			Value:       "misemon",
			Sources:     cli.EnvVars("MISEMON_REDIS_NAMESPACE"),
			Destination: &s.RedisNamespace,
		},
	}
}

// Configure creates the key-value store of the selected backend
func (s *Storage) Configure(ctx context.Context) (interfaces.KVStore, error) {
	logger := ctxlog.From(ctx)

	switch s.Backend {
	case BackendMemory:
		logger.Warn("Using memory storage. The cache and preferences will be removed when shutting down")
		return repository.NewMemory(repository.WithMemoryQuota(s.Quota)), nil

	case BackendFile, "":
		dir, err := s.dir()
		if err != nil {
			return nil, err
		}
		kv, err := repository.NewFile(dir, repository.WithFileQuota(s.Quota))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init file storage", goerr.V("dir", dir))
		}
		logger.Debug("Using file storage", "dir", dir)
		return kv, nil

	case BackendFirestore:
		if s.FirestoreProject == "" {
			return nil, goerr.New("firestore project is required. Please provide MISEMON_FIRESTORE_PROJECT")
		}
		kv, err := repository.NewFirestore(ctx, s.FirestoreProject, s.FirestoreDatabase, s.FirestoreCollection)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init firestore",
				goerr.V("project", s.FirestoreProject),
				goerr.V("database", s.FirestoreDatabase),
			)
		}
		return kv, nil

	case BackendRedis:
		kv, err := repository.NewRedis(ctx, s.RedisAddr, s.RedisNamespace)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init redis", goerr.V("namespace", s.RedisNamespace))
		}
		return kv, nil
	}

	return nil, goerr.New("invalid storage backend", goerr.V("backend", s.Backend))
}

func (s *Storage) dir() (string, error) {
	if s.Dir != "" {
		return s.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve user cache directory")
	}
	return filepath.Join(base, "misemon"), nil
}

// LogValue returns structured log value
func (s Storage) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("backend", s.Backend),
		slog.Int64("quota", s.Quota),
	}
	switch s.Backend {
	case BackendFile, "":
		attrs = append(attrs, slog.String("dir", s.Dir))
	case BackendFirestore:
		attrs = append(attrs,
			slog.String("project", s.FirestoreProject),
			slog.String("database", s.FirestoreDatabase),
			slog.String("collection", s.FirestoreCollection),
		)
	case BackendRedis:
		attrs = append(attrs,
			slog.Bool("has_addr", s.RedisAddr != ""),
			slog.String("namespace", s.RedisNamespace),
		)
	}
	return slog.GroupValue(attrs...)
}
