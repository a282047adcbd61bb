package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/minepkg/modkit/cmd/cache"
	"github.com/minepkg/modkit/cmd/config"
	"github.com/minepkg/modkit/cmd/initCmd"
	"github.com/minepkg/modkit/internals/cmdlog"
	"github.com/minepkg/modkit/internals/commands"
	"github.com/minepkg/modkit/internals/globals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// set by main
var (
	Version string
	Commit  string
)

var rootCmd = &cobra.Command{
	Use:   "modkit",
	Short: "Generate fabric mods from a modkit.toml",
	Long: `modkit turns a short declaration of items and food into a complete
fabric mod project and builds it with gradle.`,
	Example: `
  modkit init
  modkit build -o dist
  modkit run`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	if Commit != "" {
		rootCmd.Version = Version + " (" + Commit + ")"
	}
	if err := rootCmd.Execute(); err != nil {
		commands.Render(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "show debug output including the gradle log")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable color output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "never ask questions, use the defaults")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("nocolor", rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("noninteractive", rootCmd.PersistentFlags().Lookup("non-interactive"))

	rootCmd.AddCommand(initCmd.New())
	rootCmd.AddCommand(config.SubCmd)
	rootCmd.AddCommand(cache.SubCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("modkit")
	// MODKIT_TEMPLATE_REF sets template.ref
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("template.owner", "FabricMC")
	viper.SetDefault("template.repo", "fabric-example-mod")

	if configDir, err := globals.ConfigDir(); err == nil {
		viper.SetConfigFile(filepath.Join(configDir, "config.toml"))
	}
	// a missing config file is fine
	configErr := viper.ReadInConfig()

	globals.Logger = cmdlog.New(cmdlog.Options{
		Verbose: viper.GetBool("verbose"),
		NoColor: viper.GetBool("nocolor"),
	})
	if viper.GetBool("nocolor") {
		commands.EmojiEnabled = false
	}
	if configErr == nil {
		globals.Logger.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}
