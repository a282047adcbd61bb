package initCmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/manifoldco/promptui"
	"github.com/minepkg/modkit/internals/commands"
	"github.com/minepkg/modkit/internals/fabric"
	"github.com/minepkg/modkit/internals/globals"
	"github.com/minepkg/modkit/internals/ident"
	"github.com/minepkg/modkit/internals/locale"
	"github.com/minepkg/modkit/internals/merrors"
	"github.com/minepkg/modkit/pkg/manifest"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// fallbackMinecraft is used when fabric meta can not be reached
const fallbackMinecraft = "1.20.1"

var fallbackVersion = "0.1.0"

func New() *cobra.Command {
	runner := &initRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "init [name]",
		Short: "Creates a modkit.toml in the current directory",
		Args:  cobra.MaximumNArgs(1),
	}, runner)

	cmd.Flags().BoolVarP(&runner.force, "force", "f", false, "Overwrite the manifest if one exists")
	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "Choose defaults for all questions. (same as --non-interactive)")
	cmd.Flags().BoolVar(&runner.yaml, "yaml", false, "Write a modkit.yaml instead of a modkit.toml")

	return cmd.Command
}

type initRunner struct {
	force bool
	yes   bool
	yaml  bool
}

func (i *initRunner) RunE(cmd *cobra.Command, args []string) error {
	logger := globals.Logger
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	if existing, err := manifest.Find(wd); err == nil && !i.force {
		return merrors.Usage("this directory already contains %s. Use --force to overwrite it", filepath.Base(existing))
	}

	man := defaultManifest(wd, args)

	if !i.yes && !viper.GetBool("noninteractive") {
		i.ask(cmd.Context(), man)
	}

	file, err := i.writeManifest(wd, man)
	if err != nil {
		return err
	}
	logger.Success("Created " + filepath.Base(file))
	logger.Info("Declare your items there and run \"modkit save\"")
	return nil
}

func defaultManifest(wd string, args []string) *manifest.Manifest {
	man := manifest.New()
	man.Mod.Name = filepath.Base(wd)
	if len(args) == 1 {
		man.Mod.Name = args[0]
	}
	man.Mod.Version = fallbackVersion
	man.Mod.Minecraft = fallbackMinecraft
	man.Mod.Locale = viper.GetString("locale")
	if man.Mod.Locale == "" {
		man.Mod.Locale = locale.Detect()
	}
	return man
}

func (i *initRunner) ask(ctx context.Context, man *manifest.Manifest) {
	man.Mod.Name = stringPrompt(&promptui.Prompt{
		Label:   "Name",
		Default: man.Mod.Name,
		Validate: func(s string) error {
			if ident.NormalizeID(s) == "" {
				return errors.New("needs at least one letter or digit")
			}
			return nil
		},
		AllowEdit: true,
	})

	man.Mod.Description = stringPrompt(&promptui.Prompt{
		Label:     "Description",
		Default:   man.Mod.Description,
		AllowEdit: true,
	})

	if author := stringPrompt(&promptui.Prompt{
		Label:     "Author",
		AllowEdit: true,
	}); author != "" {
		man.Mod.Authors = []string{author}
	}

	man.Mod.Website = stringPrompt(&promptui.Prompt{
		Label:     "Website",
		AllowEdit: true,
	})

	man.Mod.License = stringPrompt(&promptui.Prompt{
		Label:     "License (like MIT, empty for none)",
		AllowEdit: true,
	})

	man.Mod.Version = stringPrompt(&promptui.Prompt{
		Label:     "Version",
		Default:   man.Mod.Version,
		AllowEdit: true,
		Validate: func(s string) error {
			switch {
			case s == "":
				return errors.New("version is required")
			case strings.HasPrefix(s, "v"):
				return errors.New("please do not include v as a prefix")
			}

			if _, err := semver.NewVersion(s); err != nil {
				return errors.New("not a valid semver version (major.minor.patch)")
			}

			return nil
		},
	})

	gameVersions := stableGameVersions(ctx)
	if len(gameVersions) == 0 {
		man.Mod.Minecraft = stringPrompt(&promptui.Prompt{
			Label:     "Minecraft version",
			Default:   man.Mod.Minecraft,
			AllowEdit: true,
		})
	} else {
		man.Mod.Minecraft = selectPrompt(&promptui.Select{
			Label: "Minecraft version",
			Items: gameVersions,
			Size:  10,
		})
	}

	codes := locale.Codes()
	cursorPos := 0
	for n, code := range codes {
		if code == man.Mod.Locale {
			cursorPos = n
		}
	}
	man.Mod.Locale = selectPrompt(&promptui.Select{
		Label:     "Language of the item names",
		Items:     codes,
		CursorPos: cursorPos,
		Size:      10,
		Searcher: func(input string, index int) bool {
			return strings.Contains(codes[index], strings.ToLower(input))
		},
	})

	if boolPrompt(&promptui.Prompt{
		Label:     "Add an example item",
		IsConfirm: true,
	}) {
		man.Items = append(man.Items, manifest.Item{Name: "Ruby", Category: "INGREDIENTS"})
	}
}

// stableGameVersions returns the stable minecraft versions, newest first.
// Errors are only logged, init works offline too
func stableGameVersions(ctx context.Context) []string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	all, err := fabric.NewMetaClient(globals.HTTPClient, "").GameVersions(ctx)
	if err != nil {
		globals.Logger.Debug("could not fetch minecraft versions", "err", err)
		return nil
	}
	stable := fabric.Stable(all)
	names := make([]string, len(stable))
	for n, v := range stable {
		names[n] = v.Version
	}
	return names
}

func (i *initRunner) writeManifest(dir string, man *manifest.Manifest) (string, error) {
	file := filepath.Join(dir, manifest.FileNames[0])
	content := man.Buffer().Bytes()
	if i.yaml {
		file = filepath.Join(dir, manifest.FileNames[1])
		var err error
		if content, err = yaml.Marshal(man); err != nil {
			return "", err
		}
	}

	if err := os.WriteFile(file, content, 0644); err != nil {
		return "", merrors.Filesystem(err, "could not write %s", filepath.Base(file))
	}
	return file, nil
}
