package commands

import (
	"github.com/arthur-debert/gardener/pkg/plugin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newPublishCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "publish [note]",
		Aliases: []string{plugin.PublishCommandID},
		Short:   MsgPublishShort,
		Long:    MsgPublishLong,
		Example: MsgPublishExample,
		GroupID: groupCore,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var note string
			if len(args) == 1 {
				note = args[0]
			}

			plug, err := loadPlugin(cmd, opts, note)
			if err != nil {
				return err
			}
			defer plug.OnUnload()

			log.Info().Str("note", note).Msg("Publishing")
			if err := plug.Registry().Execute(commandContext(cmd), plugin.PublishCommandID); err != nil {
				return reportedError{err}
			}
			return nil
		},
	}
}
