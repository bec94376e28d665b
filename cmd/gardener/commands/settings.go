package commands

import (
	"fmt"

	"github.com/arthur-debert/gardener/pkg/settings"
	"github.com/arthur-debert/gardener/pkg/settingsui"
	"github.com/arthur-debert/gardener/pkg/ui"
	"github.com/spf13/cobra"
)

func fieldCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, f := range settings.Fields() {
		names = append(names, string(f))
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings",
		Short:   MsgSettingsShort,
		Long:    MsgSettingsLong,
		Example: MsgSettingsExample,
		GroupID: groupCore,
	}

	cmd.AddCommand(newSettingsShowCmd())
	cmd.AddCommand(newSettingsGetCmd())
	cmd.AddCommand(newSettingsSetCmd())
	cmd.AddCommand(newSettingsEditCmd())
	cmd.AddCommand(newSettingsPathCmd())
	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: MsgSettingsShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ui.ParseFormat(output)
			if err != nil {
				return err
			}

			tab, _, err := openSettings()
			if err != nil {
				return err
			}
			return tab.Display(cmd.OutOrStdout(), ui.ResolveWriter(format, cmd.OutOrStdout()))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "auto", MsgFlagOutput)
	return cmd
}

func newSettingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "get <field>",
		Short:             MsgSettingsGetShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: fieldCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := settings.ParseField(args[0])
			if err != nil {
				return err
			}
			_, store, err := openSettings()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Settings().Get(field))
			return nil
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "set <field> <value>",
		Short:             MsgSettingsSetShort,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: fieldCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := settings.ParseField(args[0])
			if err != nil {
				return err
			}
			tab, store, err := openSettings()
			if err != nil {
				return err
			}
			if err := tab.OnChange(field, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgSetFormat, field, store.Location())
			return nil
		},
	}
}

func newSettingsEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: MsgSettingsEditShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, store, err := openSettings()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgEditIntroFormat, settingsui.Heading, settingsui.ClearValue)
			changed, err := tab.Edit(settingsui.NewConsolePrompter(cmd.InOrStdin(), out))
			fmt.Fprintln(out)
			if err != nil {
				return err
			}

			if len(changed) == 0 {
				fmt.Fprintln(out, MsgNoChanges)
				return nil
			}
			fmt.Fprintf(out, MsgChangedFormat, len(changed), store.Location())
			return nil
		},
	}
}

func newSettingsPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: MsgSettingsPathShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openSettings()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Location())
			return nil
		},
	}
}
