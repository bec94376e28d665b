package commands

import (
	"fmt"

	"github.com/arthur-debert/gardener/pkg/style"
	"github.com/arthur-debert/gardener/pkg/ui"
	"github.com/spf13/cobra"
)

func newCommandsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "commands",
		Short:   MsgCommandsShort,
		GroupID: groupCore,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plug, err := loadPlugin(cmd, opts, "")
			if err != nil {
				return err
			}
			defer plug.OnUnload()

			styled := ui.ResolveWriter(ui.FormatAuto, cmd.OutOrStdout()) == ui.FormatTerminal
			for _, c := range plug.Registry().Commands() {
				id := c.ID
				if styled {
					id = style.LabelStyle.Render(id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), MsgCommandItem, id, c.Name)
			}
			return nil
		},
	}
}
