// Package paths provides centralized path handling for gardener.
//
// It resolves the vault root and the XDG directories gardener uses for its
// own files:
//
//   - Vault: the notes directory the active note is read from
//   - Config: $XDG_CONFIG_HOME/gardener (settings.toml)
//   - State: $XDG_STATE_HOME/gardener (gardener.log)
//
// # Environment Variables
//
//   - GARDENER_VAULT: vault root (default: nearest ancestor holding .obsidian)
//   - GARDENER_CONFIG_DIR: override the config directory
//   - GARDENER_STATE_DIR: override the state directory
//
// # Vault discovery
//
// When no vault root is given explicitly, New looks at GARDENER_VAULT, then
// walks up from the working directory looking for a directory that holds
// the host's .obsidian folder, and finally falls back to the working
// directory. UsedFallback reports the last case so callers can warn.
package paths
