package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithExplicitRoot(t *testing.T) {
	vault := t.TempDir()
	configDir := t.TempDir()
	stateDir := t.TempDir()
	t.Setenv(EnvConfigDir, configDir)
	t.Setenv(EnvStateDir, stateDir)

	p, err := New(vault)
	require.NoError(t, err)

	assert.Equal(t, vault, p.VaultRoot())
	assert.False(t, p.UsedFallback())
	assert.Equal(t, filepath.Join(configDir, "settings.toml"), p.SettingsPath())
	assert.Equal(t, filepath.Join(stateDir, "gardener.log"), p.LogFilePath())
	assert.Equal(t, filepath.Join(vault, ".obsidian", "workspace.json"), p.WorkspaceStatePath())
}

func TestFindVaultRoot(t *testing.T) {
	t.Run("env_var_wins", func(t *testing.T) {
		t.Setenv(EnvVault, "/srv/notes")
		root, fallback := findVaultRoot(t.TempDir())
		assert.Equal(t, "/srv/notes", root)
		assert.False(t, fallback)
	})

	t.Run("nearest_host_dir", func(t *testing.T) {
		t.Setenv(EnvVault, "")
		vault := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(vault, ".obsidian"), 0755))
		nested := filepath.Join(vault, "daily", "2026")
		require.NoError(t, os.MkdirAll(nested, 0755))

		root, fallback := findVaultRoot(nested)
		assert.Equal(t, vault, root)
		assert.False(t, fallback)
	})

	t.Run("falls_back_to_start", func(t *testing.T) {
		t.Setenv(EnvVault, "")
		start := t.TempDir()
		if _, ok := FindHostRoot(start); ok {
			t.Skip("a parent of the temp dir is itself a vault")
		}
		root, fallback := findVaultRoot(start)
		assert.Equal(t, start, root)
		assert.True(t, fallback)
	})
}

func TestExpandHome(t *testing.T) {
	t.Setenv(EnvHome, "/home/gardener")
	home, err := GetHomeDirectory()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/garden", filepath.Join(home, "garden")},
		{"~other/garden", "~other/garden"},
		{"/abs/path", "/abs/path"},
		{"rel/path", "rel/path"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}

func TestDirOverrides(t *testing.T) {
	t.Setenv(EnvConfigDir, "/tmp/gardener-config")
	t.Setenv(EnvStateDir, "/tmp/gardener-state")
	assert.Equal(t, "/tmp/gardener-config", ConfigDir())
	assert.Equal(t, "/tmp/gardener-state", StateDir())

	t.Setenv(EnvConfigDir, "")
	assert.Equal(t, AppDirName, filepath.Base(ConfigDir()))
}

func TestSettingsPathFormat(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv(EnvConfigDir, configDir)

	p, err := New(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configDir, "settings.toml"), p.SettingsPath())

	yamlPath := filepath.Join(configDir, "settings.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("migration_path: /x\n"), 0600))
	assert.Equal(t, yamlPath, p.SettingsPath())

	tomlPath := filepath.Join(configDir, "settings.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(""), 0600))
	assert.Equal(t, tomlPath, p.SettingsPath())
}
