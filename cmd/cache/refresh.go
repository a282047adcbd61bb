package cache

import (
	"strconv"
	"time"

	"github.com/minepkg/modkit/internals/commands"
	"github.com/minepkg/modkit/internals/globals"
	"github.com/minepkg/modkit/internals/versions"
	"github.com/spf13/cobra"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "refresh",
		Short: "Fetches all fabric API releases and rebuilds the version cache",
		Args:  cobra.NoArgs,
	}, &refreshRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type refreshRunner struct{}

func (r *refreshRunner) RunE(cmd *cobra.Command, args []string) error {
	dir, err := globals.CacheDir()
	if err != nil {
		return err
	}
	start := time.Now()
	resolver := versions.New(globals.HTTPClient, dir, globals.Logger)
	cache, err := resolver.Refresh(cmd.Context())
	if err != nil {
		return err
	}
	globals.Logger.Timed("Cached fabric API versions for "+plural(len(cache), "minecraft version"), start)
	return nil
}

func plural(n int, s string) string {
	if n == 1 {
		return "1 " + s
	}
	return strconv.Itoa(n) + " " + s + "s"
}
