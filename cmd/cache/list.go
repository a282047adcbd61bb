package cache

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/jwalton/gchalk"
	"github.com/minepkg/modkit/internals/commands"
	"github.com/minepkg/modkit/internals/versions"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "list",
		Short: "Lists the cached fabric API version of every minecraft version",
		Args:  cobra.NoArgs,
	}, &listRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type listRunner struct{}

func (l *listRunner) RunE(cmd *cobra.Command, args []string) error {
	file, err := cacheFile()
	if err != nil {
		return err
	}
	cache, err := versions.LoadCache(file)
	if err != nil {
		return err
	}
	if len(cache) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "The cache is empty. Run \"modkit cache refresh\" to fill it")
		return nil
	}

	gameVersions := maps.Keys(cache)
	slices.SortFunc(gameVersions, lessVersion)
	for _, gameVersion := range gameVersions {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %s\n", gchalk.Bold(gameVersion), cache[gameVersion])
	}
	return nil
}

// lessVersion sorts semver like versions first, snapshots lexically after them
func lessVersion(a string, b string) bool {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		return va.LessThan(vb)
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}
