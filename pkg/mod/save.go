package mod

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/minepkg/modkit/internals/datafile"
	"github.com/minepkg/modkit/internals/gradle"
	"github.com/minepkg/modkit/internals/merrors"
	"github.com/pkg/errors"
)

// ErrNoBootstrapper is returned when a mod without project folder is saved
// but no Bootstrapper was configured
var ErrNoBootstrapper = &merrors.Error{
	Kind: merrors.KindUsage,
	Err:  "the project folder does not exist and no bootstrapper is configured",
	Help: "Set Options.Bootstrapper (template.New creates the default one)",
}

// Save writes the initializer and all resources into the project folder.
// The project is created first if it does not exist yet. Saving twice without
// adding content writes identical files
func (m *Mod) Save(ctx context.Context) error {
	root := m.Root()
	_, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		if m.bootstrapper == nil {
			return ErrNoBootstrapper
		}
		start := time.Now()
		m.logger.Headline("Creating " + m.folderName)
		if err := m.bootstrapper.Bootstrap(ctx, m.Project()); err != nil {
			return err
		}
		m.logger.Timed("Created project "+root, start)
	case err != nil:
		return merrors.Filesystem(err, "could not access the project folder")
	}

	locations, err := datafile.Read(root)
	if err != nil {
		return err
	}

	entrypoint := filepath.Join(root, locations.Entrypoint)
	if err := os.WriteFile(entrypoint, []byte(m.RenderSource()), 0644); err != nil {
		return merrors.Filesystem(err, "could not write %s", locations.Entrypoint)
	}
	m.logger.Debug("wrote initializer", "file", entrypoint)

	if err := m.writeAssets(filepath.Join(root, locations.Assets)); err != nil {
		return merrors.Filesystem(err, "could not write the mod assets")
	}

	m.logger.Success("Saved " + m.folderName)
	return nil
}

func (m *Mod) writeAssets(assets string) error {
	lang, err := marshalJSON(m.lang)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(assets, "lang", m.Locale+".json"), lang); err != nil {
		return err
	}

	for kind, models := range map[string]map[string]Model{"item": m.itemModels, "block": m.blockModels} {
		for id, model := range models {
			content, err := marshalJSON(model)
			if err != nil {
				return err
			}
			if err := writeFile(filepath.Join(assets, "models", kind, id+".json"), content); err != nil {
				return err
			}
		}
	}

	for kind, textures := range map[string][]Texture{"item": m.itemTextures, "block": m.blockTextures} {
		for _, texture := range textures {
			target := filepath.Join(assets, "textures", kind, texture.ID+".png")
			if err := copyTexture(texture.Source, target); err != nil {
				return errors.Wrapf(err, "could not copy texture of %s", texture.ID)
			}
		}
	}
	return nil
}

func writeFile(file string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(file), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(file, content, 0644)
}

func copyTexture(src string, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return err
	}
	// the texture might already be the target (textures found in the project itself)
	if same, err := sameFile(src, dst); err == nil && same {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

func sameFile(a string, b string) (bool, error) {
	sa, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	sb, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(sa, sb), nil
}

// Run saves the mod and starts minecraft with it
func (m *Mod) Run(ctx context.Context) error {
	if err := m.Save(ctx); err != nil {
		return err
	}
	m.logger.Headline("Starting minecraft")
	return m.gradle().Run(ctx, m.Root(), "runClient")
}

// Build saves the mod, builds it and copies the jar into outputDir.
// It returns the path of the copied jar
func (m *Mod) Build(ctx context.Context, outputDir string) (string, error) {
	if err := m.Save(ctx); err != nil {
		return "", err
	}

	start := time.Now()
	spinner := m.logger.Spinner("Building " + m.folderName)
	spinner.Start()
	err := m.gradle().Run(ctx, m.Root(), "build")
	spinner.Stop()
	if err != nil {
		return "", err
	}

	jar, err := gradle.FindJar(m.Root(), m.archiveBaseName, m.Version)
	if err != nil {
		return "", err
	}
	target, err := gradle.CopyFile(jar, outputDir)
	if err != nil {
		return "", merrors.Filesystem(err, "could not copy %s", filepath.Base(jar))
	}
	m.logger.Timed("Built "+target, start)
	return target, nil
}

func (m *Mod) gradle() Builder {
	if m.builder == nil {
		return &gradle.Driver{Logger: m.logger}
	}
	return m.builder
}
