package repository

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/domain/model"
)

const (
	fileExt    = ".json"
	tmpFileExt = ".tmp"
)

// File implements KVStore with one file per key under a root directory.
// Writes go to a uniquely named temp file that is renamed into place.
type File struct {
	root  string
	quota int64

	// serializes the size accounting of Set; readers never block
	writeLock sync.Mutex
}

// FileOption configures File
type FileOption func(*File)

// WithFileQuota limits the total size of stored files. Zero or negative
// means unlimited.
func WithFileQuota(quota int64) FileOption {
	return func(f *File) {
		f.quota = quota
	}
}

// NewFile creates a file store rooted at dir, creating the directory if needed
func NewFile(dir string, opts ...FileOption) (*File, error) {
	if dir == "" {
		return nil, goerr.New("storage directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create storage directory", goerr.V("dir", dir))
	}

	f := &File{root: dir}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.root, url.PathEscape(key)+fileExt)
}

// Get reads the file stored for key
func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, goerr.New("key is empty")
	}

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(model.ErrKeyNotFound, "file get", goerr.V("key", key))
		}
		return nil, goerr.Wrap(err, "failed to read file", goerr.V("key", key))
	}
	return data, nil
}

// Set writes value for key atomically
func (f *File) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return goerr.New("key is empty")
	}

	f.writeLock.Lock()
	defer f.writeLock.Unlock()

	path := f.path(key)
	if f.quota > 0 {
		used, err := f.usage()
		if err != nil {
			return err
		}
		if info, err := os.Stat(path); err == nil {
			used -= info.Size()
		}
		if used+int64(len(value)) > f.quota {
			return goerr.Wrap(model.ErrQuotaExceeded, "file set",
				goerr.V("key", key),
				goerr.V("used", used),
				goerr.V("quota", f.quota),
			)
		}
	}

	tmpPath := filepath.Join(f.root, "."+uuid.NewString()+tmpFileExt)
	if err := os.WriteFile(tmpPath, value, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to write temp file", goerr.V("key", key))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to rename temp file", goerr.V("key", key))
	}
	return nil
}

// Delete removes the file of key
func (f *File) Delete(ctx context.Context, key string) error {
	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return goerr.Wrap(err, "failed to delete file", goerr.V("key", key))
	}
	return nil
}

// Keys lists keys with the prefix in ascending order
func (f *File) Keys(ctx context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read storage directory", goerr.V("dir", f.root))
	}

	keys := make([]string, 0)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *File) usage() (int64, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to read storage directory", goerr.V("dir", f.root))
	}

	var total int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}

// Close is a no-op for file store
func (f *File) Close() error {
	return nil
}
