package cmd

import (
	"github.com/minepkg/modkit/internals/commands"
	"github.com/spf13/cobra"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "run",
		Short: "Saves the mod and starts minecraft with it",
		Args:  cobra.NoArgs,
	}, &runRunner{})

	rootCmd.AddCommand(cmd.Command)
}

type runRunner struct{}

func (r *runRunner) RunE(cmd *cobra.Command, args []string) error {
	m, err := loadMod(cmd.Context())
	if err != nil {
		return err
	}
	return m.Run(cmd.Context())
}
