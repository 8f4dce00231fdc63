package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "photo.png", []byte("fake image"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/photo.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "photo.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake image"), data)
}

func TestLocalStorageCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewLocalStorage(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFromEnvDefaultsToLocal(t *testing.T) {
	t.Setenv("S3_BUCKET", "")
	t.Setenv("UPLOAD_DIR", t.TempDir())

	store, err := FromEnv(context.Background())
	require.NoError(t, err)
	_, ok := store.(*LocalStorage)
	assert.True(t, ok)
}
