package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "credentials.json"))
}

func TestStoreSaveLoad(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.Save("A", "R"))

	access, refresh, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "A", access)
	assert.Equal(t, "R", refresh)
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := tempStore(t)

	access, refresh, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestStoreLoadExpiredAccessToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	creds := credentialsFile{
		AccessToken:  &storedToken{Value: "A", ExpiresAt: time.Now().Add(-time.Hour)},
		RefreshToken: &storedToken{Value: "R", ExpiresAt: time.Now().Add(time.Hour)},
	}
	data, err := json.Marshal(creds)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))

	access, refresh, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Empty(t, access)
	assert.Equal(t, "R", refresh)
}

func TestStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, _, err := NewStore(path).Load()
	assert.Error(t, err)
}

func TestStoreClear(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Save("A", "R"))

	require.NoError(t, store.Clear())

	access, refresh, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, access)
	assert.Empty(t, refresh)

	// Clearing again is not an error.
	require.NoError(t, store.Clear())
}

func TestStoreFilePermissions(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Save("A", "R"))

	info, err := os.Stat(store.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
