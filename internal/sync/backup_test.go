package sync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupFileDistinctNamesWithinSameSecond(t *testing.T) {
	engine, dir := newTestEngine(t, newFakeRemote(), Options{BackupOnPull: true})

	path := filepath.Join(dir, "Widget.fs")
	require.NoError(t, os.WriteFile(path, []byte("first\n"), 0o644))

	first, err := engine.backupFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	require.NoError(t, os.WriteFile(path, []byte("second\n"), 0o644))
	second, err := engine.backupFile(path)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.FileExists(t, first)
	assert.FileExists(t, second)

	saved, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(saved))
}

func TestBackupFileSkipsWhenDisabledOrAbsent(t *testing.T) {
	engine, dir := newTestEngine(t, newFakeRemote(), Options{BackupOnPull: true})
	path, err := engine.backupFile(filepath.Join(dir, "missing.fs"))
	require.NoError(t, err)
	assert.Empty(t, path)

	off, dir2 := newTestEngine(t, newFakeRemote(), Options{})
	existing := filepath.Join(dir2, "Widget.fs")
	require.NoError(t, os.WriteFile(existing, []byte("x\n"), 0o644))
	path, err = off.backupFile(existing)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.NoDirExists(t, filepath.Join(dir2, defaultBackupDir))
}
