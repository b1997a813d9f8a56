package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	// repeated calls are fine
	for range 2 {
		require.NoError(t, EnsureDirs(tmpDir))
	}

	dirs := []string{
		filepath.Join(tmpDir, ".config", "gnblob"),
		filepath.Join(tmpDir, ".cache", "gnblob"),
		filepath.Join(tmpDir, ".local", "share", "gnblob", "logs"),
	}
	for _, v := range dirs {
		info, err := os.Stat(v)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), v)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
	}
}

func TestEnsureBlobDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "datasets", "ds1")

	exists, _ := Exists(dir)
	assert.False(t, exists)

	require.NoError(t, EnsureBlobDir(dir))
	exists, isDir := Exists(dir)
	assert.True(t, exists)
	assert.True(t, isDir)

	// a file is in the way
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	exists, isDir = Exists(file)
	assert.True(t, exists)
	assert.False(t, isDir)
	assert.Error(t, EnsureBlobDir(file))
}

func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureConfigFile(tmpDir))

	configPath := filepath.Join(tmpDir, ".config", "gnblob", "config.yaml")
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	// an existing file is not overwritten
	custom := "log:\n  level: debug\n"
	require.NoError(t, os.WriteFile(configPath, []byte(custom), 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))
	content, err = os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content))
}

func TestConfigYAML(t *testing.T) {
	assert.Contains(t, ConfigYAML, "log:")
	assert.Contains(t, ConfigYAML, "store:")
	assert.Contains(t, ConfigYAML, "taxdump_dir")
}
