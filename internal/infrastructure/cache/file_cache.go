// Package cache persists validated prompt metadata so repeated prompts skip
// the provider call.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/ports"
)

// FileCache stores one JSON file per prompt, named by the prompt hash.
type FileCache struct {
	dir        string
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

// NewFileCache returns a cache rooted at dir. A zero ttl never expires and a
// zero maxEntries never evicts.
func NewFileCache(dir string, ttl time.Duration, maxEntries int) *FileCache {
	return &FileCache{
		dir:        dir,
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Key hashes prompt text and variant into the cache file name. The empty
// variant hashes the prompt text alone.
func Key(promptText, variant string) string {
	input := promptText
	if variant != "" {
		input = variant + "\x00" + promptText
	}
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// Get returns the metadata cached for promptText under variant.
func (c *FileCache) Get(promptText, variant string) (domain.Metadata, bool, error) {
	if promptText == "" {
		return domain.Metadata{}, false, nil
	}
	path := c.pathFor(Key(promptText, variant))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Metadata{}, false, nil
		}
		return domain.Metadata{}, false, err
	}
	var entry domain.CacheEntry
	if err := sonic.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return domain.Metadata{}, false, fmt.Errorf("decode cache entry: %w", err)
	}
	if c.ttl > 0 && c.now().Sub(entry.CreatedAt) > c.ttl {
		_ = os.Remove(path)
		return domain.Metadata{}, false, nil
	}
	return entry.Metadata, true, nil
}

// Set stores meta for promptText under variant and evicts the oldest
// entries beyond the limit.
func (c *FileCache) Set(promptText, variant string, meta domain.Metadata) error {
	if promptText == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(c.dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	entry := domain.CacheEntry{
		Key:        Key(promptText, variant),
		PromptText: promptText,
		Variant:    variant,
		Metadata:   meta,
		CreatedAt:  c.now(),
	}
	data, err := sonic.Marshal(entry)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.pathFor(entry.Key), data, domain.DataFilePermissions); err != nil {
		return err
	}
	return c.evictIfNeeded()
}

// Dir exposes the cache directory path.
func (c *FileCache) Dir() string {
	return c.dir
}

// Clear removes all cached entries.
func (c *FileCache) Clear() error {
	return os.RemoveAll(c.dir)
}

// Entries lists cache entries, newest first (best-effort).
func (c *FileCache) Entries() ([]domain.CacheEntry, error) {
	files, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []domain.CacheEntry
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.dir, f.Name()))
		if err != nil {
			continue
		}
		var entry domain.CacheEntry
		if err := sonic.Unmarshal(data, &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	return entries, nil
}

func (c *FileCache) pathFor(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func (c *FileCache) evictIfNeeded() error {
	if c.maxEntries <= 0 {
		return nil
	}
	files, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(files) <= c.maxEntries {
		return nil
	}
	type fileInfo struct {
		name string
		mod  time.Time
	}
	var infos []fileInfo
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		infos = append(infos, fileInfo{name: f.Name(), mod: info.ModTime()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].mod.Before(infos[j].mod) })
	for len(infos) > c.maxEntries {
		_ = os.Remove(filepath.Join(c.dir, infos[0].name))
		infos = infos[1:]
	}
	return nil
}

var _ ports.MetadataCache = (*FileCache)(nil)
