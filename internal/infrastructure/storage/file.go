package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/ports"
)

// corruptSuffix is appended to a store file that could not be decoded.
const corruptSuffix = ".corrupt"

// FileStore keeps every key in one JSON object on disk. Writes go to a
// temporary file that is renamed over the original.
//
// Updates are serialized within one process only. Two processes sharing
// the file can still lose a write; use the sqlite backend for that.
type FileStore struct {
	path   string
	logger ports.Logger
	mu     sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on the
// first write. logger may be nil.
func NewFileStore(path string, logger ports.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return "", false, err
	}
	value, ok := data[key]
	return value, ok, nil
}

func (f *FileStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return err
	}
	data[key] = value
	return f.write(data)
}

func (f *FileStore) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return f.write(data)
}

// Update applies fn to the current value of key and stores the result
// while holding the store lock.
func (f *FileStore) Update(_ context.Context, key string, fn func(current string, ok bool) (string, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return err
	}
	current, ok := data[key]
	next, err := fn(current, ok)
	if err != nil {
		return err
	}
	data[key] = next
	return f.write(data)
}

func (f *FileStore) Close() error { return nil }

func (f *FileStore) read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("read store %s: %w", f.path, err)
	}
	data := make(map[string]string)
	if len(raw) == 0 {
		return data, nil
	}
	if err := sonic.Unmarshal(raw, &data); err != nil {
		return f.quarantine(err)
	}
	return data, nil
}

// quarantine moves an undecodable store file to <path>.corrupt and returns
// an empty object.
func (f *FileStore) quarantine(decodeErr error) (map[string]string, error) {
	target := f.path + corruptSuffix
	if err := os.Rename(f.path, target); err != nil {
		return nil, fmt.Errorf("move corrupt store %s: %w", f.path, err)
	}
	if f.logger != nil {
		f.logger.Warn("store file is corrupt, starting empty", map[string]interface{}{
			"path":  f.path,
			"moved": target,
			"error": decodeErr.Error(),
		})
	}
	return make(map[string]string), nil
}

func (f *FileStore) write(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	raw, err := sonic.ConfigStd.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".store-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), domain.DataFilePermissions); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

var (
	_ ports.KeyValueStore = (*FileStore)(nil)
	_ ports.Updater       = (*FileStore)(nil)
)
