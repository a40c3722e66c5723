package internal

import (
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	tt "github.com/gnolang/solint/internal/types"
)

func TestCache(t *testing.T) {
	t.Parallel()

	cacheDir := filepath.Join(t.TempDir(), "cache")
	cache, err := NewCache(cacheDir)
	require.NoError(t, err)

	issues := []tt.Issue{
		{
			Rule:     "func-param-name-trailing-underscore",
			Category: "naming",
			Filename: "Token.sol",
			Message:  "'owner' should end with _",
			Start:    token.Position{Line: 10, Column: 21, Filename: "Token.sol"},
			End:      token.Position{Line: 10, Column: 34, Filename: "Token.sol"},
			Severity: tt.SeverityWarning,
		},
	}

	t.Run("NotFound", func(t *testing.T) {
		_, found := cache.Get("nonexistent.sol.json", "abc")
		assert.False(t, found)
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		cache.Set("Token.sol.json", "hash-1", issues)

		got, found := cache.Get("Token.sol.json", "hash-1")
		require.True(t, found)
		assert.Equal(t, issues, got)

		require.NoError(t, cache.Save())

		reloaded, err := NewCache(cacheDir)
		require.NoError(t, err)
		got, found = reloaded.Get("Token.sol.json", "hash-1")
		require.True(t, found)
		assert.Equal(t, issues, got)
	})

	t.Run("HashChanged", func(t *testing.T) {
		_, found := cache.Get("Token.sol.json", "hash-2")
		assert.False(t, found)
	})
}

func TestCacheSaveWithoutChanges(t *testing.T) {
	t.Parallel()

	cacheDir := t.TempDir()
	cache, err := NewCache(cacheDir)
	require.NoError(t, err)

	require.NoError(t, cache.Save())
	_, err = os.Stat(filepath.Join(cacheDir, cacheFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestCacheIgnoresOtherSchema(t *testing.T) {
	t.Parallel()

	cacheDir := t.TempDir()
	data, err := msgpack.Marshal(cachePayload{
		Schema: cacheSchemaVersion + 1,
		Entries: map[string]CacheEntry{
			"Token.sol.json": {Hash: "hash-1"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, cacheFileName), data, 0o644))

	cache, err := NewCache(cacheDir)
	require.NoError(t, err)
	_, found := cache.Get("Token.sol.json", "hash-1")
	assert.False(t, found)
}

func TestCacheRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	cacheDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, cacheFileName), []byte{0xc1}, 0o644))

	_, err := NewCache(cacheDir)
	assert.Error(t, err)
}
