package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.False(t, store.Exists())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	t.Setenv("HOME", base)

	dir, err := DefaultDir()
	require.NoError(t, err)

	store, err := NewConfigStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	assert.Equal(t, "jiri", filepath.Base(dir))
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "deep", "path")

	store, err := NewConfigStore(nestedPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	info, err := os.Stat(nestedPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestOpen_DoesNotCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "jiri.toml")

	store, err := Open(path)
	require.NoError(t, err)

	assert.False(t, store.Exists())
	_, err = os.Stat(filepath.Dir(path))
	assert.True(t, os.IsNotExist(err))
}

func TestConfigStore_LoadsNestedTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jiri.toml")
	content := `
[auth]
username = "me@example.com"
token = "secret"
site = "https://example.atlassian.net"

[general]
default_project = "PROJ"
color = false

[search]
fields = ["key", "status", "Story Points"]
limit = 250
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	store, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, "me@example.com", store.GetString("auth.username"))
	assert.Equal(t, "PROJ", store.GetString("general.default_project"))
	assert.False(t, store.GetBool("general.color"))
	assert.Equal(t, []string{"key", "status", "Story Points"}, store.GetStringSlice("search.fields"))
	assert.Equal(t, 250, store.GetInt("search.limit"))
	assert.Equal(t, []string{
		"auth.site", "auth.token", "auth.username",
		"general.color", "general.default_project",
		"search.fields", "search.limit",
	}, store.Keys())
}

func TestConfigStore_SaveWritesTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("auth.username", "me@example.com"))
	require.NoError(t, store.Set("auth.token", "secret"))
	require.NoError(t, store.Set("general.default_project", "PROJ"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[auth]")
	assert.Contains(t, string(data), "[general]")
	assert.NotContains(t, string(data), "'auth.username'")

	reloaded, err := Open(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", reloaded.GetString("auth.username"))
	assert.Equal(t, "PROJ", reloaded.GetString("general.default_project"))
}

func TestConfigStore_GetString(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("auth.site", "https://x.atlassian.net"))
	assert.Equal(t, "https://x.atlassian.net", store.GetString("auth.site"))
	assert.Equal(t, "", store.GetString("nonexistent"))

	require.NoError(t, store.Set("search.limit", 42))
	assert.Equal(t, "", store.GetString("search.limit"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("search.limit", 42))
	assert.Equal(t, 42, store.GetInt("search.limit"))
	assert.Equal(t, 0, store.GetInt("nonexistent"))

	store.mu.Lock()
	store.data["int64_key"] = int64(9999)
	store.mu.Unlock()
	assert.Equal(t, 9999, store.GetInt("int64_key"))

	require.NoError(t, store.Set("string_key", "not an int"))
	assert.Equal(t, 0, store.GetInt("string_key"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("general.color", true))
	assert.True(t, store.GetBool("general.color"))
	assert.False(t, store.GetBool("nonexistent"))

	require.NoError(t, store.Set("string_key", "true"))
	assert.False(t, store.GetBool("string_key"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("a", []string{"x", "y"}))
	require.NoError(t, store.Set("b", "key, summary ,,status"))
	store.mu.Lock()
	store.data["c"] = []any{"p", 1, "q"}
	store.mu.Unlock()

	assert.Equal(t, []string{"x", "y"}, store.GetStringSlice("a"))
	assert.Equal(t, []string{"key", "summary", "status"}, store.GetStringSlice("b"))
	assert.Equal(t, []string{"p", "q"}, store.GetStringSlice("c"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("auth.token", "value1"))
	require.NoError(t, store1.Set("search.limit", 42))
	require.NoError(t, store1.Set("general.color", true))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "value1", store2.GetString("auth.token"))
	assert.Equal(t, 42, store2.GetInt("search.limit"))
	assert.True(t, store2.GetBool("general.color"))
	assert.True(t, store2.Exists())
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("auth.token", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	// Channels cannot be marshaled to TOML
	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_Load_EmptyTOMLData(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# Just a comment\n\n"), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestUnflattenMap(t *testing.T) {
	got := unflattenMap(map[string]any{
		"auth.token":   "t",
		"auth.site":    "s",
		"top":          1,
		"a.b.c":        true,
		"general":      "shadowed",
		"general.name": "x",
	})

	assert.Equal(t, map[string]any{
		"auth":    map[string]any{"token": "t", "site": "s"},
		"top":     1,
		"a":       map[string]any{"b": map[string]any{"c": true}},
		"general": map[string]any{"name": "x"},
	}, got)
	assert.Equal(t, map[string]any{
		"auth.token": "t", "auth.site": "s", "top": 1, "a.b.c": true, "general.name": "x",
	}, flattenMap(got, ""))
}
