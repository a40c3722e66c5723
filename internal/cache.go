package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	tt "github.com/gnolang/solint/internal/types"
)

const (
	cacheFileName      = "lint_cache.msgpack"
	cacheSchemaVersion = 1
)

// CacheEntry holds the issues of one syntax tree file and the hash they
// were computed for.
type CacheEntry struct {
	Hash      string
	Issues    []tt.Issue
	CreatedAt time.Time
}

type cachePayload struct {
	Schema  uint16
	Entries map[string]CacheEntry
}

// Cache keeps lint results across runs, keyed by file path and validated
// by content hash. It is safe for concurrent use.
type Cache struct {
	CacheDir string

	mutex   sync.RWMutex
	entries map[string]CacheEntry
	dirty   bool
}

// NewCache opens the cache stored in cacheDir, creating the directory when
// needed. A cache written by another schema version starts empty.
func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir: cacheDir,
		entries:  make(map[string]CacheEntry),
	}
	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}
	return cache, nil
}

func (c *Cache) path() string {
	return filepath.Join(c.CacheDir, cacheFileName)
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil // nothing cached yet
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}

	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}
	if payload.Schema != cacheSchemaVersion || payload.Entries == nil {
		return nil
	}
	c.entries = payload.Entries
	return nil
}

// Get returns the cached issues for filename when they were computed for hash.
func (c *Cache) Get(filename, hash string) ([]tt.Issue, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.entries[filename]
	if !ok || entry.Hash != hash {
		return nil, false
	}
	return entry.Issues, true
}

// Set records the issues computed for filename at hash.
func (c *Cache) Set(filename, hash string, issues []tt.Issue) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[filename] = CacheEntry{
		Hash:      hash,
		Issues:    issues,
		CreatedAt: time.Now(),
	}
	c.dirty = true
}

// Save writes the cache to disk if anything changed since it was loaded.
func (c *Cache) Save() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.dirty {
		return nil
	}

	data, err := msgpack.Marshal(cachePayload{Schema: cacheSchemaVersion, Entries: c.entries})
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	if err := os.WriteFile(c.path(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	c.dirty = false
	return nil
}
