package shell_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gYonder/posh/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkExecutable(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0755))
}

func TestBuildPathIndex_FirstSeenWins(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()

	mkExecutable(t, dirA, "foo")
	mkExecutable(t, dirB, "foo")
	mkExecutable(t, dirB, "bar")

	idx := shell.BuildPathIndex(dirA + string(os.PathListSeparator) + dirB)

	foo, ok := idx.Lookup("foo")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dirA, "foo"), foo)

	bar, ok := idx.Lookup("bar")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dirB, "bar"), bar)
}

func TestBuildPathIndex_ExcludesBuiltinNames(t *testing.T) {
	dir := t.TempDir()
	mkExecutable(t, dir, "echo")
	mkExecutable(t, dir, "cd")

	idx := shell.BuildPathIndex(dir)

	_, ok := idx.Lookup("echo")
	assert.False(t, ok)
	_, ok = idx.Lookup("cd")
	assert.False(t, ok)
}

func TestBuildPathIndex_SkipsNonExecutableAndDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))
	mkExecutable(t, dir, "real")

	idx := shell.BuildPathIndex(dir)

	_, ok := idx.Lookup("readme.txt")
	assert.False(t, ok)
	_, ok = idx.Lookup("subdir")
	assert.False(t, ok)
	_, ok = idx.Lookup("real")
	assert.True(t, ok)
}

func TestBuildPathIndex_EmptyPath(t *testing.T) {
	idx := shell.BuildPathIndex("")
	assert.Empty(t, idx)
}

func TestBuildPathIndex_DisjointFromBuiltins(t *testing.T) {
	dir := t.TempDir()
	for name := range shell.BuiltinNames {
		mkExecutable(t, dir, name)
	}
	mkExecutable(t, dir, "ls")

	idx := shell.BuildPathIndex(dir)
	for name := range shell.BuiltinNames {
		_, ok := idx.Lookup(name)
		assert.False(t, ok, "builtin name %q leaked into PathIndex", name)
	}
	_, ok := idx.Lookup("ls")
	assert.True(t, ok)
}
