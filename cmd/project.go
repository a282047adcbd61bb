package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/minepkg/modkit/internals/credentials"
	"github.com/minepkg/modkit/internals/globals"
	"github.com/minepkg/modkit/internals/template"
	"github.com/minepkg/modkit/pkg/manifest"
	"github.com/minepkg/modkit/pkg/mod"
	"github.com/spf13/viper"
)

// loadMod finds the manifest in the working directory and builds the mod
// declared in it
func loadMod(ctx context.Context) (*mod.Mod, error) {
	logger := globals.Logger
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	file, err := manifest.Find(wd)
	if err != nil {
		return nil, err
	}
	man, err := manifest.Load(file)
	if err != nil {
		return nil, err
	}
	problems := man.Validate()
	for _, warning := range problems.Warnings() {
		logger.Warn(warning.Error())
	}

	cacheDir, err := globals.CacheDir()
	if err != nil {
		return nil, err
	}
	bootstrapper := template.New(ctx, template.Config{
		CacheDir:    cacheDir,
		GitHubToken: githubToken(),
		Owner:       viper.GetString("template.owner"),
		Repo:        viper.GetString("template.repo"),
		Ref:         viper.GetString("template.ref"),
		JVMArgs:     viper.GetString("gradle.jvmargs"),
		Logger:      logger,
	})

	return man.Build(filepath.Dir(file), mod.Options{
		Locale:       viper.GetString("locale"),
		Logger:       logger,
		Bootstrapper: bootstrapper,
	})
}

// githubToken prefers MODKIT_GITHUB_TOKEN over the stored login
func githubToken() string {
	if token := viper.GetString("github_token"); token != "" {
		return token
	}
	configDir, err := globals.ConfigDir()
	if err != nil {
		return ""
	}
	store, err := credentials.New(configDir)
	if err != nil {
		globals.Logger.Debug("could not read credentials", "err", err)
		return ""
	}
	return store.Token()
}
