package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yllada/wg-toggle/common"
)

func newTestStore(t *testing.T) *PathStore {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "data", "vpn_paths.db"))
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestInitialize_CreatesDirectoryAndFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "a", "b", "vpn_paths.db")
	s := New(dbPath)

	require.NoError(t, s.Initialize(context.Background()))
	assert.FileExists(t, dbPath)
	assert.Equal(t, dbPath, s.Path())
}

func TestInitialize_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Add(ctx, "/etc/wg/home.conf")
	require.NoError(t, err)

	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.Initialize(ctx))

	paths, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/etc/wg/home.conf"}, paths)
}

func TestInitialize_Unavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	s := New(filepath.Join(blocker, "sub", "vpn_paths.db"))
	err := s.Initialize(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
}

func TestAddList_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	paths := []string{
		"/etc/wg/home.conf",
		"relative/work.conf",
		"/path with spaces/wg0.conf",
		"",
		"/etc/wg/home.conf",
	}
	for _, p := range paths {
		_, err := s.Add(ctx, p)
		require.NoError(t, err)
	}

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, paths, got, "paths are stored verbatim, duplicates included")
}

func TestList_EmptyIsNotNil(t *testing.T) {
	s := newTestStore(t)

	paths, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, paths)
	assert.Empty(t, paths)
}

func TestDeleteAll(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, p := range []string{"/a.conf", "/b.conf", "/a.conf"} {
		_, err := s.Add(ctx, p)
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteAll(ctx))

	paths, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestDeleteAll_EmptyStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.DeleteAll(ctx))
	require.NoError(t, s.DeleteAll(ctx))

	paths, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestAdd_IDsAreMonotonicAndNotReused(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, err := s.Add(ctx, "/a.conf")
	require.NoError(t, err)
	second, err := s.Add(ctx, "/b.conf")
	require.NoError(t, err)
	assert.Greater(t, second, first)

	require.NoError(t, s.DeleteAll(ctx))

	third, err := s.Add(ctx, "/c.conf")
	require.NoError(t, err)
	assert.Greater(t, third, second, "ids are never reused after delete-all")

	entries, err := s.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, PathEntry{ID: third, Path: "/c.conf"}, entries[0])
}

func TestPersistsAcrossStoreInstances(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "vpn_paths.db")

	first := New(dbPath)
	require.NoError(t, first.Initialize(ctx))
	_, err := first.Add(ctx, "/etc/wg/home.conf")
	require.NoError(t, err)

	second := New(dbPath)
	require.NoError(t, second.Initialize(ctx))
	paths, err := second.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/etc/wg/home.conf"}, paths)
}

func TestOperations_MissingDirectory(t *testing.T) {
	ctx := context.Background()
	s := New(filepath.Join(t.TempDir(), "missing", "vpn_paths.db"))

	_, err := s.List(ctx)
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)

	_, err = s.Add(ctx, "/a.conf")
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)

	err = s.DeleteAll(ctx)
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
}

func TestOperations_CorruptDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "vpn_paths.db")
	garbage := make([]byte, 4096)
	for i := range garbage {
		garbage[i] = 0xAB
	}
	require.NoError(t, os.WriteFile(dbPath, garbage, 0600))

	_, err := New(dbPath).List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrStorage) || errors.Is(err, common.ErrStorageUnavailable),
		"unexpected error: %v", err)
}

func TestInitialize_IgnoresWorkingDirectory(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"sql migration", "00002_unrelated.sql", "-- +goose Up\nDROP TABLE vpn_paths;\n"},
		{"go migration", "20240101_init.go", "package migrations\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			workDir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(workDir, tt.file), []byte(tt.content), 0600))
			origDir, wdErr := os.Getwd()
			require.NoError(t, wdErr)
			require.NoError(t, os.Chdir(workDir))
			t.Cleanup(func() { _ = os.Chdir(origDir) })

			s := New(filepath.Join(t.TempDir(), "vpn_paths.db"))
			require.NoError(t, s.Initialize(ctx))

			_, err := s.Add(ctx, "/etc/wg/home.conf")
			require.NoError(t, err)

			paths, err := s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"/etc/wg/home.conf"}, paths)
		})
	}
}

func TestPathWithURICharacters(t *testing.T) {
	for _, name := range []string{"what?.db", "hash#1.db", "100%.db", "with space.db"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()
			dbPath := filepath.Join(dir, name)
			s := New(dbPath)

			require.NoError(t, s.Initialize(ctx))
			_, err := s.Add(ctx, "/etc/wg/home.conf")
			require.NoError(t, err)

			assert.FileExists(t, dbPath)
			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			for _, e := range entries {
				assert.True(t, strings.HasPrefix(e.Name(), name), "unexpected file %s", e.Name())
			}
		})
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/var/lib/vpn_paths.db", "file:/var/lib/vpn_paths.db?_pragma=busy_timeout(5000)"},
		{"/tmp/what?.db", "file:/tmp/what%3F.db?_pragma=busy_timeout(5000)"},
		{"data/vpn_paths.db", "file:data/vpn_paths.db?_pragma=busy_timeout(5000)"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, New(tt.path).dsn())
		})
	}
}
