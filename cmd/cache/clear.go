package cache

import (
	"os"

	"github.com/minepkg/modkit/internals/commands"
	"github.com/minepkg/modkit/internals/globals"
	"github.com/minepkg/modkit/internals/merrors"
	"github.com/spf13/cobra"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "clear",
		Short: "Clears the modkit cache",
	}, &clearCacheRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type clearCacheRunner struct{}

func (i *clearCacheRunner) RunE(cmd *cobra.Command, args []string) error {
	cacheDir, err := globals.CacheDir()
	if err != nil {
		return err
	}

	if err := os.RemoveAll(cacheDir); err != nil {
		return merrors.Filesystem(err, "could not clear %s", cacheDir)
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return merrors.Filesystem(err, "could not recreate %s", cacheDir)
	}
	globals.Logger.Success("Cleared " + cacheDir)
	return nil
}
