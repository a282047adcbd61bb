package cmd

import (
	"os"

	"github.com/dustin/go-humanize"
	"github.com/minepkg/modkit/internals/commands"
	"github.com/minepkg/modkit/internals/globals"
	"github.com/spf13/cobra"
)

func init() {
	runner := &buildRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "build",
		Short: "Saves the mod and builds the jar",
		Args:  cobra.NoArgs,
	}, runner)

	cmd.Flags().StringVarP(&runner.output, "output", "o", ".", "directory the jar is copied to")
	rootCmd.AddCommand(cmd.Command)
}

type buildRunner struct {
	output string
}

func (b *buildRunner) RunE(cmd *cobra.Command, args []string) error {
	m, err := loadMod(cmd.Context())
	if err != nil {
		return err
	}
	jar, err := m.Build(cmd.Context(), b.output)
	if err != nil {
		return err
	}
	if info, err := os.Stat(jar); err == nil {
		globals.Logger.Infof("  %s (%s)", jar, humanize.Bytes(uint64(info.Size())))
	}
	return nil
}
