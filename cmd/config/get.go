package config

import (
	"fmt"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/modkit/internals/commands"
	"github.com/minepkg/modkit/internals/merrors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "get [key]",
		Short: "Gets a global config value (all values without a key)",
		Args:  cobra.MaximumNArgs(1),
	}, &getRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type getRunner struct{}

func (i *getRunner) RunE(cmd *cobra.Command, args []string) error {
	keys := maps.Keys(config)
	slices.Sort(keys)
	if len(args) == 1 {
		key := strings.ToLower(args[0])
		if _, ok := config[key]; !ok {
			return unknownKey(key)
		}
		keys = []string{key}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Printing config entries:")
	for _, key := range keys {
		value := viper.Get(key)
		if value == nil || value == "" {
			value = "(unset)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %v %s\n", key, value, gchalk.Dim("# "+config[key].help))
	}

	return nil
}

func unknownKey(key string) error {
	err := merrors.Usage("config key \"%s\" does not exist", key)
	keys := maps.Keys(config)
	slices.Sort(keys)
	err.Help = "Available keys: " + strings.Join(keys, ", ")
	return err
}
