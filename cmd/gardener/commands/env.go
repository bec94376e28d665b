package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/arthur-debert/gardener/pkg/errors"
	"github.com/arthur-debert/gardener/pkg/filesystem"
	"github.com/arthur-debert/gardener/pkg/host"
	"github.com/arthur-debert/gardener/pkg/paths"
	"github.com/arthur-debert/gardener/pkg/plugin"
	"github.com/arthur-debert/gardener/pkg/publish"
	"github.com/arthur-debert/gardener/pkg/settings"
	"github.com/arthur-debert/gardener/pkg/settingsui"
	"github.com/spf13/cobra"
)

// initPaths resolves the vault and config locations, warning on stderr
// when the vault is only the working directory
func initPaths(cmd *cobra.Command, opts *globalOptions) (paths.Paths, error) {
	p, err := paths.New(opts.vault)
	if err != nil {
		return nil, errors.Wrap(err, errors.GetErrorCode(err), MsgErrInitPaths)
	}

	if p.UsedFallback() {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, p.VaultRoot())
	} else if os.Getenv("GARDENER_DEBUG") != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgDebugVaultFormat, p.VaultRoot(), p.UsedFallback())
	}
	return p, nil
}

// loadPlugin builds the host for the current vault and loads the plugin
// into it. Callers must OnUnload the result.
func loadPlugin(cmd *cobra.Command, opts *globalOptions, note string) (*plugin.Plugin, error) {
	p, err := initPaths(cmd, opts)
	if err != nil {
		return nil, err
	}

	fs := filesystem.NewOS()
	h, err := host.NewLocal(fs, p, note)
	if err != nil {
		return nil, err
	}

	plug := plugin.New(h, fs, settings.NewFileDataStore(fs, p.SettingsPath()),
		plugin.WithNotifier(publish.NewConsoleNotifier(cmd.OutOrStdout(), cmd.ErrOrStderr())),
	)
	if err := plug.OnLoad(commandContext(cmd)); err != nil {
		return nil, err
	}
	return plug, nil
}

// openSettings loads the settings panel without touching the vault
func openSettings() (*settingsui.Tab, *settings.Store, error) {
	p, err := paths.New("")
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.GetErrorCode(err), MsgErrInitPaths)
	}

	store := settings.NewStore(settings.NewFileDataStore(filesystem.NewOS(), p.SettingsPath()))
	if err := store.Load(); err != nil {
		return nil, nil, err
	}
	return settingsui.New(store), store, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// reportedError marks an error the user has already been shown
type reportedError struct{ error }

func (r reportedError) Unwrap() error { return r.error }

// IsReported tells main whether err still needs printing
func IsReported(err error) bool {
	_, ok := err.(reportedError)
	return ok
}
