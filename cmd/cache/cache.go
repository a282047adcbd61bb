package cache

import (
	"path/filepath"

	"github.com/minepkg/modkit/internals/globals"
	"github.com/minepkg/modkit/internals/versions"
	"github.com/spf13/cobra"
)

var SubCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the fabric version cache",
}

func cacheFile() (string, error) {
	dir, err := globals.CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, versions.CacheFileName), nil
}
