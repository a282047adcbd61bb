package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/minepkg/modkit/internals/commands"
	"github.com/minepkg/modkit/internals/credentials"
	"github.com/minepkg/modkit/internals/github"
	"github.com/minepkg/modkit/internals/globals"
	"github.com/minepkg/modkit/internals/merrors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"
)

func init() {
	runner := &loginRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "login",
		Short: "Stores a GitHub token used to download the mod template",
		Long: `Stores a GitHub personal access token in the system keyring.
modkit works without it, but anonymous GitHub API requests are heavily rate limited.`,
		Args: cobra.NoArgs,
	}, runner)

	cmd.Flags().StringVar(&runner.token, "token", "", "the token to store (asks for it if empty)")
	rootCmd.AddCommand(cmd.Command)
}

type loginRunner struct {
	token string
}

func (l *loginRunner) RunE(cmd *cobra.Command, args []string) error {
	token := strings.TrimSpace(l.token)
	if token == "" {
		if viper.GetBool("noninteractive") {
			return merrors.Usage("no token given. Use --token in non interactive mode")
		}
		prompt := promptui.Prompt{
			Label: "Please enter your GitHub token",
			Validate: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("token is required")
				}
				return nil
			},
			Mask: '■',
		}
		var err error
		if token, err = prompt.Run(); err != nil {
			fmt.Println("Aborting")
			os.Exit(0)
		}
		token = strings.TrimSpace(token)
	}

	client := github.New(cmd.Context(), globals.HTTPClient, token)
	owner, repo := viper.GetString("template.owner"), viper.GetString("template.repo")
	if _, err := client.DefaultBranch(cmd.Context(), owner, repo); err != nil {
		return merrors.Usage("could not read %s/%s with this token", owner, repo).WithCause(err)
	}

	configDir, err := globals.ConfigDir()
	if err != nil {
		return err
	}
	store, err := credentials.New(configDir)
	if err != nil {
		return err
	}
	if err := store.SetGitHubAuth(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}); err != nil {
		return merrors.Filesystem(err, "could not store the token")
	}

	if store.NoKeyRingMode {
		globals.Logger.Warn("No keyring available, the token is stored in " + configDir)
	}
	globals.Logger.Success("Stored your GitHub token")
	return nil
}
