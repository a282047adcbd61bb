package cmd

import (
	"fmt"

	"github.com/minepkg/modkit/internals/commands"
	"github.com/spf13/cobra"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "render",
		Short: "Prints the generated mod initializer",
		Long:  "Prints the java source of the mod initializer without touching the project",
		Args:  cobra.NoArgs,
	}, &renderRunner{})

	rootCmd.AddCommand(cmd.Command)
}

type renderRunner struct{}

func (r *renderRunner) RunE(cmd *cobra.Command, args []string) error {
	m, err := loadMod(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), m.RenderSource())
	return nil
}
