package commands

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort         = "Publish notes from your vault to a digital garden"
	MsgPublishShort      = "Copy the active note into the migration directory"
	MsgCommandsShort     = "List the plugin's registered commands"
	MsgSettingsShort     = "Show and change the migration settings"
	MsgSettingsShowShort = "Show the settings panel"
	MsgSettingsGetShort  = "Print one setting"
	MsgSettingsSetShort  = "Change one setting and save it"
	MsgSettingsEditShort = "Edit every setting interactively"
	MsgSettingsPathShort = "Print the settings file location"
	MsgVersionShort      = "Print version information"
	MsgCompletionShort   = "Generate shell completion script"
	MsgManShort          = "Generate man page"

	// Status messages
	MsgCommandItem      = "  %s  %s\n"
	MsgNoChanges        = "No settings changed."
	MsgChangedFormat    = "Saved %d setting(s) to %s\n"
	MsgSetFormat        = "%s saved to %s\n"
	MsgVersionFormat    = "gardener version %s\n"
	MsgVersionCommit    = "  commit: %s\n"
	MsgVersionBuilt     = "  built:  %s\n"
	MsgEditIntroFormat  = "Editing %s. Enter keeps a value, %q clears it.\n\n"
	MsgDebugVaultFormat = "Debug: Using vault: %s (fallback=%v)\n"

	// Error messages
	MsgErrInitPaths = "failed to initialize paths"
	MsgErrNoCommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagVault   = "Vault root directory (default: $GARDENER_VAULT or the nearest vault above the current directory)"
	MsgFlagOutput  = "Output format: auto, term, text, json, yaml or toml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/publish-long.txt
	msgPublishLongRaw string
	MsgPublishLong    = strings.TrimSpace(msgPublishLongRaw)

	//go:embed msgs/publish-example.txt
	msgPublishExampleRaw string
	MsgPublishExample    = strings.TrimSpace(msgPublishExampleRaw)

	//go:embed msgs/settings-long.txt
	msgSettingsLongRaw string
	MsgSettingsLong    = strings.TrimSpace(msgSettingsLongRaw)

	//go:embed msgs/settings-example.txt
	msgSettingsExampleRaw string
	MsgSettingsExample    = strings.TrimSpace(msgSettingsExampleRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw) + "\n"

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
