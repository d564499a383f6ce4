package hostenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFiles(t *testing.T, dir string, names ...string) {
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("#!/bin/sh\n"), 0755)) //nolint:gosec
	}
}

func TestWhichSearchesInOrder(t *testing.T) {
	dir1, dir2 := t.TempDir(), t.TempDir()
	makeFiles(t, dir2, "tool")

	f := NewFinder(false)
	p, ok := f.Which("tool", []string{dir1, dir2})
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir2, "tool"), p)

	makeFiles(t, dir1, "tool")
	p, ok = f.Which("tool", []string{dir1, dir2})
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir1, "tool"), p)
}

func TestWhichIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "tool"), 0755))

	_, ok := NewFinder(false).Which("tool", []string{dir})
	assert.False(t, ok)
}

func TestWhichNotFound(t *testing.T) {
	_, ok := NewFinder(false).Which("tool", []string{t.TempDir(), ""})
	assert.False(t, ok)

	_, ok = NewFinder(false).Which("tool", nil)
	assert.False(t, ok)
}

func TestWhichAcceptsAbsoluteCommand(t *testing.T) {
	dir := t.TempDir()
	makeFiles(t, dir, "tool")

	p, ok := NewFinder(false).Which(filepath.Join(dir, "tool"), nil)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "tool"), p)
}

func TestWhichTriesPathExtOnWindows(t *testing.T) {
	dir := t.TempDir()
	makeFiles(t, dir, "bash.exe")

	f := NewFinder(true)
	f.Getenv = func(key string) string {
		if key == "PATHEXT" {
			return ".COM;.EXE"
		}
		return ""
	}
	p, ok := f.Which("bash", []string{dir})
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "bash.exe"), p)

	_, ok = NewFinder(false).Which("bash", []string{dir})
	assert.False(t, ok)
}

func TestWhichOnPath(t *testing.T) {
	dir := t.TempDir()
	makeFiles(t, dir, "tool")

	f := NewFinder(false)
	f.Getenv = func(key string) string {
		if key == "PATH" {
			return t.TempDir() + string(os.PathListSeparator) + dir
		}
		return ""
	}
	p, ok := f.WhichOnPath("tool")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "tool"), p)
}

func TestToolsPath(t *testing.T) {
	partial, full := t.TempDir(), t.TempDir()
	makeFiles(t, partial, "cmp")
	makeFiles(t, full, "cmp", "diff", "grep")
	tools := []string{"cmp", "diff", "grep"}

	f := NewFinder(false)
	assert.False(t, f.CheckToolsPath(partial, tools))
	assert.True(t, f.CheckToolsPath(full, tools))
	assert.True(t, f.CheckToolsPath(partial, nil))

	dir, ok := f.WhichTools(tools, []string{partial, full})
	assert.True(t, ok)
	assert.Equal(t, full, dir)

	_, ok = f.WhichTools(tools, []string{partial})
	assert.False(t, ok)
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	makeFiles(t, dir, "file")

	f := NewFinder(false)
	assert.True(t, f.IsDir(dir))
	assert.False(t, f.IsDir(filepath.Join(dir, "file")))
	assert.False(t, f.IsDir(filepath.Join(dir, "missing")))
}
