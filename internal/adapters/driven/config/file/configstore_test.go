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
}

func TestNewConfigStore_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HANDOUT_CONFIG_DIR", tmpDir)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyShareRole, "commenter"))

	val, ok := store.Get(KeyShareRole)
	assert.True(t, ok)
	assert.Equal(t, "commenter", val)
	assert.Equal(t, "commenter", store.GetString(KeyShareRole))
}

func TestConfigStore_GetMissing(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("nope"))
	assert.Equal(t, 0, store.GetInt("nope"))
	assert.False(t, store.GetBool("nope"))
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyShareNotify, true))

	assert.Equal(t, "", store.GetString(KeyShareNotify))
	assert.True(t, store.GetBool(KeyShareNotify))
}

func TestConfigStore_PersistsAcrossLoads(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyStripStyle, "HEADING_5"))
	require.NoError(t, store.Set(KeyRosterGroupColumn, 3))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "HEADING_5", reopened.GetString(KeyStripStyle))
	assert.Equal(t, 3, reopened.GetInt(KeyRosterGroupColumn))
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	toml := "[share]\nrole = \"writer\"\nnotify = true\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(toml), 0o600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "writer", store.GetString(KeyShareRole))
	assert.True(t, store.GetBool(KeyShareNotify))
}
