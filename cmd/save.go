package cmd

import (
	"github.com/minepkg/modkit/internals/commands"
	"github.com/spf13/cobra"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "save",
		Short: "Creates or updates the mod project",
		Long: `Creates the mod project from the fabric example mod if it does not exist yet
and (re)writes the initializer and all assets.`,
		Args: cobra.NoArgs,
	}, &saveRunner{})

	rootCmd.AddCommand(cmd.Command)
}

type saveRunner struct{}

func (s *saveRunner) RunE(cmd *cobra.Command, args []string) error {
	m, err := loadMod(cmd.Context())
	if err != nil {
		return err
	}
	return m.Save(cmd.Context())
}
