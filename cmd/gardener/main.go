package main

import (
	"os"

	"github.com/arthur-debert/gardener/cmd/gardener/commands"
	"github.com/pterm/pterm"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !commands.IsReported(err) {
			pterm.Error.WithWriter(os.Stderr).Println(err.Error())
		}
		os.Exit(1)
	}
}
