// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempCache points the cache at a fresh temp dir with caching enabled.
func useTempCache(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(DirEnvVar, dir)
	t.Setenv(EnabledEnvVar, "")
	return dir
}

// TestDir_WithEnv verifies Dir() respects RCBEAM_CACHE_DIR with highest
// priority.
func TestDir_WithEnv(t *testing.T) {
	customDir := useTempCache(t)

	result, ok := Dir()

	assert.True(t, ok)
	assert.Equal(t, customDir, result)
}

// TestDir_WithoutEnv verifies Dir() falls back to os.UserCacheDir/rcbeam.
func TestDir_WithoutEnv(t *testing.T) {
	t.Setenv(DirEnvVar, "")

	result, ok := Dir()

	if ok {
		assert.True(t, filepath.IsAbs(result))
		assert.Equal(t, "rcbeam", filepath.Base(result))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"yes", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv(EnabledEnvVar, tt.value)
			assert.Equal(t, tt.expected, Enabled())
		})
	}
}

func TestEnsureBaseDir(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		useTempCache(t)
		t.Setenv(EnabledEnvVar, "0")

		base, ok, err := EnsureBaseDir()

		assert.False(t, ok)
		assert.Empty(t, base)
		assert.NoError(t, err)
	})

	t.Run("creates nested directory", func(t *testing.T) {
		cacheDir := filepath.Join(useTempCache(t), "cache", "nested")
		t.Setenv(DirEnvVar, cacheDir)
		assert.NoDirExists(t, cacheDir)

		base, ok, err := EnsureBaseDir()

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, cacheDir, base)
		assert.DirExists(t, cacheDir)
	})

	t.Run("base is a file", func(t *testing.T) {
		f := filepath.Join(useTempCache(t), "file")
		require.NoError(t, os.WriteFile(f, nil, 0o600))
		t.Setenv(DirEnvVar, f)

		_, ok, err := EnsureBaseDir()

		assert.False(t, ok)
		assert.Error(t, err)
	})
}

func TestWriteRead(t *testing.T) {
	useTempCache(t)
	subdirs := []string{"s3", "drawings"}
	data := []byte("beam_height = 600.0\n\n")

	_, found := Read(subdirs, "beams/b1.toml@v1")
	assert.False(t, found)

	require.NoError(t, Write(subdirs, "beams/b1.toml@v1", data))

	entry, found := Read(subdirs, "beams/b1.toml@v1")
	require.True(t, found)
	assert.Equal(t, data, entry.Data, "data is not trimmed")
	assert.Equal(t, "beams/b1.toml@v1", entry.Key)
	assert.Equal(t, encodeKey("beams/b1.toml@v1"), entry.EncodedKey)
	assert.WithinDuration(t, time.Now(), entry.ModTime, time.Minute)

	info, err := os.Stat(entry.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, found = Read([]string{"s3", "other"}, "beams/b1.toml@v1")
	assert.False(t, found, "subdirs partition the cache")
}

func TestWrite_Overwrites(t *testing.T) {
	useTempCache(t)

	require.NoError(t, Write(nil, "k", []byte("one")))
	require.NoError(t, Write(nil, "k", []byte("two")))

	entry, found := Read(nil, "k")
	require.True(t, found)
	assert.Equal(t, []byte("two"), entry.Data)
}

func TestWriteRead_Disabled(t *testing.T) {
	dir := useTempCache(t)
	t.Setenv(EnabledEnvVar, "false")

	require.NoError(t, Write([]string{"s3"}, "k", []byte("x")))
	_, found := Read([]string{"s3"}, "k")

	assert.False(t, found)
	assert.NoDirExists(t, filepath.Join(dir, "s3"))
}

func TestEntryPath(t *testing.T) {
	dir := useTempCache(t)

	p, exists := EntryPath([]string{"s3", "b"}, "key")
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(dir, "s3", "b", encodeKey("key")), p)

	require.NoError(t, Write([]string{"s3", "b"}, "key", []byte("x")))
	_, exists = EntryPath([]string{"s3", "b"}, "key")
	assert.True(t, exists)
}

func TestPurge(t *testing.T) {
	dir := useTempCache(t)
	require.NoError(t, Write([]string{"s3", "b"}, "old", []byte("x")))
	require.NoError(t, Write([]string{"s3", "b"}, "new", []byte("y")))

	oldPath, _ := EntryPath([]string{"s3", "b"}, "old")
	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, stale, stale))

	require.NoError(t, Purge(0), "zero hours is a no-op")
	assert.FileExists(t, oldPath)

	require.NoError(t, Purge(24))

	assert.NoFileExists(t, oldPath)
	_, found := Read([]string{"s3", "b"}, "new")
	assert.True(t, found)
	assert.DirExists(t, filepath.Join(dir, "s3", "b"))
}

func TestPurge_MissingBase(t *testing.T) {
	t.Setenv(DirEnvVar, filepath.Join(t.TempDir(), "absent"))
	assert.NoError(t, Purge(1))
}

func TestEncodeKey(t *testing.T) {
	a := encodeKey("s3://bucket/beam.toml")
	assert.Equal(t, a, encodeKey("s3://bucket/beam.toml"))
	assert.NotEqual(t, a, encodeKey("s3://bucket/beam.yaml"))
	assert.Len(t, a, 64)
	assert.Regexp(t, "^[0-9a-f]+$", a)
}
