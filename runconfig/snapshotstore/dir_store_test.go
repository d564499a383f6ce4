package snapshotstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirStoreRoundTrip(t *testing.T) {
	storeRoundTrip(t, NewDirStore(filepath.Join(t.TempDir(), "snapshots")), "run1")
}

func TestDirStoreFileLayout(t *testing.T) {
	dir := t.TempDir()
	store := NewDirStore(dir)
	s := makeSnapshot(t)

	require.NoError(t, store.Put(context.Background(), "run1", s))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "run1.json", entries[0].Name())

	read, err := ReadSnapshotFile(filepath.Join(dir, "run1.json"))
	require.NoError(t, err)
	assert.Equal(t, s, read)
}

func TestDirStoreRejectsInvalidKey(t *testing.T) {
	store := NewDirStore(t.TempDir())

	assert.Error(t, store.Put(context.Background(), "../escape", makeSnapshot(t)))
	_, err := store.Get(context.Background(), "../escape")
	assert.Error(t, err)
}

func TestDirStoreMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0600))

	_, err := NewDirStore(dir).Get(context.Background(), "bad")
	assert.Error(t, err)

	_, err = ReadSnapshotFile(filepath.Join(dir, "bad.json"))
	assert.Error(t, err)
}
