// Package commands is the gardener command line.
package commands

import (
	"embed"

	"github.com/arthur-debert/gardener/internal/version"
	"github.com/arthur-debert/gardener/pkg/cobrax/topics"
	"github.com/arthur-debert/gardener/pkg/errors"
	"github.com/arthur-debert/gardener/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

//go:embed topics
var helpTopics embed.FS

const (
	groupCore = "core"
	groupMisc = "misc"
)

// globalOptions holds the persistent flags shared by every subcommand
type globalOptions struct {
	verbosity int
	vault     string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "gardener",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			logging.LogCommand(cmd.CommandPath(), args)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.vault, "vault", "", MsgFlagVault)

	rootCmd.AddGroup(&cobra.Group{ID: groupCore, Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: groupMisc, Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newPublishCmd(opts))
	rootCmd.AddCommand(newCommandsCmd(opts))
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	renderer := topics.NewGlamourRenderer()
	if !stdoutIsTerminal() {
		renderer.Style = "notty"
	}
	manager, err := topics.Load(afero.FromIOFS{FS: helpTopics}, "topics", topics.Options{
		Extensions: []string{".md"},
		Renderer:   renderer,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	} else {
		manager.Install(rootCmd)
	}
	rootCmd.SetHelpCommandGroupID(groupMisc)

	return rootCmd
}
