// Package globals holds the process wide state of the CLI. Library packages
// never use it, they get everything passed explicitly.
package globals

import (
	"os"
	"path/filepath"

	"github.com/minepkg/modkit/internals/cmdlog"
	"github.com/minepkg/modkit/internals/ownhttp"
	"github.com/spf13/viper"
)

var (
	HTTPClient = ownhttp.New()
	// Logger is replaced once the config and flags are parsed
	Logger = cmdlog.New(cmdlog.Options{})
)

// ConfigDir is where config.toml and file based credentials live
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "modkit"), nil
}

// CacheDir is the "cachedir" setting or the user cache directory
func CacheDir() (string, error) {
	if dir := viper.GetString("cachedir"); dir != "" {
		return dir, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "modkit"), nil
}
