package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/gardener/pkg/errors"
)

// Environment variable names
const (
	// EnvVault is the primary environment variable for the vault location
	EnvVault = "GARDENER_VAULT"

	// EnvConfigDir overrides the XDG config directory for gardener
	EnvConfigDir = "GARDENER_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for gardener
	EnvStateDir = "GARDENER_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names. These describe gardener's own layout and the host's, neither
// is user-configurable.
const (
	// AppDirName is the directory name for gardener-specific files
	AppDirName = "gardener"

	// HostConfigDir is the per-vault directory the host application keeps
	// its own state in. Its presence marks a vault root.
	HostConfigDir = ".obsidian"

	// WorkspaceStateFile is the host's persisted workspace layout inside HostConfigDir
	WorkspaceStateFile = "workspace.json"

	// SettingsFileName is the name of the persisted settings record
	SettingsFileName = "settings.toml"

	// LogFileName is the name of the log file
	LogFileName = "gardener.log"
)

// yamlSettingsFileNames are accepted in place of SettingsFileName
var yamlSettingsFileNames = []string{"settings.yaml", "settings.yml"}

// Paths provides centralized path management for gardener
type Paths interface {
	VaultRoot() string
	UsedFallback() bool
	ConfigDir() string
	StateDir() string
	SettingsPath() string
	LogFilePath() string
	WorkspaceStatePath() string
}

type paths struct {
	vaultRoot    string
	configDir    string
	stateDir     string
	usedFallback bool
}

// New creates a Paths instance for the given vault root. An empty root is
// resolved from the environment and the working directory.
func New(vaultRoot string) (Paths, error) {
	p := &paths{
		configDir: ConfigDir(),
		stateDir:  StateDir(),
	}

	if vaultRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
		root, usedFallback := findVaultRoot(cwd)
		p.vaultRoot = root
		p.usedFallback = usedFallback
	} else {
		p.vaultRoot = ExpandHome(vaultRoot)
	}

	absRoot, err := filepath.Abs(p.vaultRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for vault root")
	}
	p.vaultRoot = absRoot

	return p, nil
}

// findVaultRoot resolves the vault root using the following priority:
// 1. GARDENER_VAULT environment variable
// 2. Nearest ancestor of start holding the host config directory
// 3. start itself (fallback)
func findVaultRoot(start string) (string, bool) {
	if root := os.Getenv(EnvVault); root != "" {
		return ExpandHome(root), false
	}

	if root, ok := FindHostRoot(start); ok {
		return root, false
	}

	return start, true
}

// FindHostRoot walks up from start until it finds a directory containing
// the host config directory.
func FindHostRoot(start string) (string, bool) {
	dir := filepath.Clean(start)
	for {
		info, err := os.Stat(filepath.Join(dir, HostConfigDir))
		if err == nil && info.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ConfigDir returns the gardener config directory, honoring GARDENER_CONFIG_DIR
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the gardener state directory, honoring GARDENER_STATE_DIR
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// ExpandHome expands a leading ~ to the home directory. Paths it cannot
// expand are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is not supported
	return path
}

// GetHomeDirectory returns the user's home directory, falling back to $HOME.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	return "", errors.New(errors.ErrFileAccess, "unable to determine home directory")
}

func (p *paths) VaultRoot() string {
	return p.vaultRoot
}

// UsedFallback returns true if the working directory was used as the vault root
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

func (p *paths) ConfigDir() string {
	return p.configDir
}

func (p *paths) StateDir() string {
	return p.stateDir
}

// SettingsPath returns the location of the persisted settings record. A
// YAML record is used only when it exists and the TOML one does not.
func (p *paths) SettingsPath() string {
	primary := filepath.Join(p.configDir, SettingsFileName)
	if _, err := os.Stat(primary); err == nil {
		return primary
	}
	for _, name := range yamlSettingsFileNames {
		candidate := filepath.Join(p.configDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return primary
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// WorkspaceStatePath returns the host's workspace state file inside the vault
func (p *paths) WorkspaceStatePath() string {
	return filepath.Join(p.vaultRoot, HostConfigDir, WorkspaceStateFile)
}
