package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())

	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err), "file is only created on first write")
}

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("crawl.api_url", "https://crawl.test"))
	require.NoError(t, store.Set("crawl.limit", 25))
	require.NoError(t, store.Set("archive.enabled", true))

	assert.Equal(t, "https://crawl.test", store.GetString("crawl.api_url"))
	assert.Equal(t, 25, store.GetInt("crawl.limit"))
	assert.True(t, store.GetBool("archive.enabled"))

	assert.Equal(t, "", store.GetString("crawl.limit"))
	assert.Equal(t, 0, store.GetInt("crawl.api_url"))
	assert.False(t, store.GetBool("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("crawl.api_key", "sk-test"))
	require.NoError(t, store.Set("crawl.limit", 10))
	require.NoError(t, store.Set("view.sort", "name"))
	require.NoError(t, store.Set("archive.enabled", false))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[crawl]")
	assert.Contains(t, string(raw), "[view]")
	assert.NotContains(t, string(raw), `"crawl.limit"`)

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", reloaded.GetString("crawl.api_key"))
	assert.Equal(t, 10, reloaded.GetInt("crawl.limit"))
	assert.Equal(t, "name", reloaded.GetString("view.sort"))
	assert.False(t, reloaded.GetBool("archive.enabled"))
	_, ok := reloaded.Get("archive.enabled")
	assert.True(t, ok)
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := "[crawl]\napi_url = \"https://crawl.test\"\nlimit = 5\n\n[sqs]\nqueue_url = \"https://sqs.test/q\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, "https://crawl.test", store.GetString("crawl.api_url"))
	assert.Equal(t, 5, store.GetInt("crawl.limit"))
	assert.Equal(t, "https://sqs.test/q", store.GetString("sqs.queue_url"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("crawl.api_key", "sk-secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	require.NoError(t, store.Set("view.direction", "asc"))
	assert.Equal(t, "asc", store.GetString("view.direction"))
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not toml {{{[["), 0600))

	store, err := NewConfigStore(dir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("crawl.limit", 5))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Save())
}

func TestConfigStore_SetUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("crawl.limit", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("crawl.limit")
		}()
	}
	wg.Wait()

	_, ok := store.Get("crawl.limit")
	assert.True(t, ok)
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"crawl.limit":   50,
		"crawl.api_url": "https://crawl.test",
		"top":           true,
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{
		"crawl": map[string]any{"limit": 50, "api_url": "https://crawl.test"},
		"top":   true,
	}, nested)
	assert.Equal(t, flat, flattenMap(nested, ""))
}
