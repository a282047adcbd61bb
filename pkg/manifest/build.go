package manifest

import (
	"path/filepath"

	"github.com/minepkg/modkit/internals/merrors"
	"github.com/minepkg/modkit/pkg/mod"
	"github.com/pkg/errors"
)

// Options returns the mod options declared in the manifest. dir is the
// directory of the manifest; the project and textures are relative to it
func (m *Manifest) Options(dir string) mod.Options {
	return mod.Options{
		Name:             m.Mod.Name,
		Version:          m.Mod.Version,
		Description:      m.Mod.Description,
		MinecraftVersion: m.Mod.Minecraft,
		Authors:          m.AuthorNames(),
		Website:          m.Mod.Website,
		License:          m.Mod.License,
		Locale:           m.Mod.Locale,
		Directory:        dir,
		TextureDir:       dir,
	}
}

// Build returns a Mod with all declared content. opts are completed with the
// values of the manifest, everything else (logger, bootstrapper…) is kept
func (m *Manifest) Build(dir string, opts mod.Options) (*mod.Mod, error) {
	problems := m.Validate()
	if fatal := problems.Fatal(); fatal != nil {
		return nil, merrors.Usage("invalid manifest: %s", fatal).WithCause(fatal)
	}

	declared := m.Options(dir)
	declared.Logger = opts.Logger
	declared.Bootstrapper = opts.Bootstrapper
	declared.Builder = opts.Builder
	if opts.Locale != "" && declared.Locale == "" {
		declared.Locale = opts.Locale
	}

	result, err := mod.New(declared)
	if err != nil {
		return nil, err
	}

	texture := func(t string) string {
		if t == "" || filepath.IsAbs(t) {
			return t
		}
		return filepath.Join(dir, t)
	}

	for _, item := range m.Items {
		if err := result.AddItem(item.Name, item.Category, texture(item.Texture)); err != nil {
			return nil, errors.Wrapf(err, "item %q", item.Name)
		}
	}
	for _, food := range m.Food {
		if err := result.AddFoodItem(food.Name, food.Hunger, food.Saturation, food.Category, texture(food.Texture)); err != nil {
			return nil, errors.Wrapf(err, "food %q", food.Name)
		}
	}
	return result, nil
}
