package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/modkit/internals/commands"
	"github.com/minepkg/modkit/internals/globals"
	"github.com/minepkg/modkit/internals/locale"
	"github.com/minepkg/modkit/internals/merrors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Sets a global config value",
		Args:  cobra.ExactArgs(2),
	}, &setRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type setRunner struct{}

func (i *setRunner) RunE(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])
	newValue, err := parseValue(key, args[1])
	if err != nil {
		return err
	}

	previousValue := viper.Get(key)
	previousStringValue := fmt.Sprintf("%v", previousValue)
	if previousValue == nil {
		previousStringValue = "(unset)"
	}
	viper.Set(key, newValue)

	fmt.Fprintf(
		cmd.OutOrStdout(),
		"Changing config entry:\n  %s: %s → %v\n",
		key,
		gchalk.Strikethrough(previousStringValue),
		gchalk.Bold(fmt.Sprintf("%v", newValue)),
	)

	configDir, err := globals.ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return merrors.Filesystem(err, "could not create %s", configDir)
	}
	if err := viper.WriteConfigAs(filepath.Join(configDir, "config.toml")); err != nil {
		return merrors.Filesystem(err, "could not write the config")
	}

	return nil
}

func parseValue(key string, value string) (interface{}, error) {
	entry, ok := config[key]
	if !ok {
		return nil, unknownKey(key)
	}

	switch entry.kind {
	case configKindBool:
		return parseBool(value)
	case configKindString:
		if key == "locale" {
			if err := locale.Validate(value); err != nil {
				return nil, err
			}
		}
		return value, nil
	default:
		return nil, fmt.Errorf("what? uncovered config values type")
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "ja", "on", "1":
		return true, nil
	case "false", "no", "nein", "off", "0":
		return false, nil
	default:
		return false, merrors.Usage("invalid boolean value. Use \"true\" or \"false\"")
	}
}
