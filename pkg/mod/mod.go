/*
Package mod is the content model of a generated fabric mod.

A Mod collects declared content (items, food items) and renders it into
the mod's initializer class and resource files. Saving a Mod for the first time
creates the project from the fabric example mod.

	m, err := mod.New(mod.Options{
		Name:             "Test Mod",
		Version:          "1.0.0",
		MinecraftVersion: "1.20.1",
		Authors:          []string{"Alice"},
	})
	if err != nil {
		return err
	}
	if err := m.AddItem("Ruby", "INGREDIENTS", "textures/ruby.png"); err != nil {
		return err
	}
	return m.Save(ctx)
*/
package mod

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/minepkg/modkit/internals/cmdlog"
	"github.com/minepkg/modkit/internals/ident"
	"github.com/minepkg/modkit/internals/locale"
	"github.com/minepkg/modkit/internals/merrors"
	"github.com/minepkg/modkit/internals/template"
)

// Bootstrapper creates the project folder of a mod that was never saved
type Bootstrapper interface {
	Bootstrap(ctx context.Context, p *template.Project) error
}

// Builder runs gradle tasks in the project folder
type Builder interface {
	Run(ctx context.Context, dir string, tasks ...string) error
}

// Options are the inputs of New. Only Name, Version and MinecraftVersion are required
type Options struct {
	Name             string
	Version          string
	Description      string
	MinecraftVersion string
	Authors          []string
	Website          string
	// License is an SPDX identifier like "MIT". New projects get a matching LICENSE file
	License string
	// Directory is the parent of the project folder. Defaults to the working
	// directory, relative paths are made absolute
	Directory string
	// Locale is the minecraft locale code of the generated lang file. Defaults to en_us
	Locale string
	// TextureDir is searched for item textures that were not passed explicitly.
	// Defaults to the working directory
	TextureDir string

	Logger       *cmdlog.Logger
	Bootstrapper Bootstrapper
	Builder      Builder
}

// Mod is a mod and all of its declared content. A Mod must not be used
// from multiple goroutines. Changing Name or Directory after New does not
// move the project folder
type Mod struct {
	Name             string
	Version          string
	Description      string
	MinecraftVersion string
	Authors          []string
	Website          string
	License          string
	Directory        string
	Locale           string

	// derived from the options once
	modID           string
	entryPoint      string
	group           string
	archiveBaseName string
	folderName      string
	directory       string
	root            string

	textureDir   string
	logger       *cmdlog.Logger
	bootstrapper Bootstrapper
	builder      Builder

	entries      []*Entry
	imports      map[string]struct{}
	definitions  []string
	registry     []string
	lang         map[string]string
	itemModels   map[string]Model
	itemTextures []Texture

	// reserved for block content, no entry kind adds to them yet
	blockModels   map[string]Model
	blockTextures []Texture
}

// New returns a Mod without any content
func New(opts Options) (*Mod, error) {
	switch {
	case strings.TrimSpace(opts.Name) == "":
		return nil, merrors.Usage("the mod needs a name")
	case opts.Version == "":
		return nil, merrors.Usage("the mod needs a version")
	case opts.MinecraftVersion == "":
		return nil, merrors.Usage("the mod needs a minecraft version")
	}
	if opts.Locale == "" {
		opts.Locale = locale.Default
	}
	if err := locale.Validate(opts.Locale); err != nil {
		return nil, err
	}

	directory, err := filepath.Abs(opts.Directory)
	if err != nil {
		return nil, merrors.Filesystem(err, "could not resolve the mod directory")
	}
	textureDir, err := filepath.Abs(opts.TextureDir)
	if err != nil {
		return nil, merrors.Filesystem(err, "could not resolve the texture directory")
	}
	if opts.Logger == nil {
		opts.Logger = cmdlog.Discard()
	}

	m := &Mod{
		Name:             opts.Name,
		Version:          opts.Version,
		Description:      opts.Description,
		MinecraftVersion: opts.MinecraftVersion,
		Authors:          append([]string(nil), opts.Authors...),
		Website:          opts.Website,
		License:          opts.License,
		Directory:        directory,
		Locale:           opts.Locale,

		modID:           ident.SafeModID(opts.Name),
		group:           ident.Group(opts.Website, opts.Authors, opts.Name),
		entryPoint:      ident.EntryPointName(opts.Name),
		archiveBaseName: ident.ArchiveBaseName(opts.Name),
		folderName:      opts.Name,
		directory:       directory,
		root:            filepath.Join(directory, opts.Name),

		textureDir:   textureDir,
		logger:       opts.Logger,
		bootstrapper: opts.Bootstrapper,
		builder:      opts.Builder,

		imports:     map[string]struct{}{importInitializer: {}},
		lang:        map[string]string{},
		itemModels:  map[string]Model{},
		blockModels: map[string]Model{},
	}
	// class names can not start with a digit
	if m.entryPoint == "" || (m.entryPoint[0] >= '0' && m.entryPoint[0] <= '9') {
		m.entryPoint = "Mod" + m.entryPoint
	}
	if m.archiveBaseName == "" {
		m.archiveBaseName = m.modID
	}

	return m, nil
}

// ModID is the identifier of the mod. "Test Mod" → "testmod"
func (m *Mod) ModID() string { return m.modID }

// EntryPoint is the class name of the mod initializer. "test mod" → "TestMod"
func (m *Mod) EntryPoint() string { return m.entryPoint }

// Group is the java package and maven group of the mod
func (m *Mod) Group() string { return m.group }

// ArchiveBaseName is the file name prefix of built jars
func (m *Mod) ArchiveBaseName() string { return m.archiveBaseName }

// Root is the absolute project folder
func (m *Mod) Root() string { return m.root }

// Project returns what the bootstrapper needs to create the project folder
func (m *Mod) Project() *template.Project {
	return &template.Project{
		Name:             m.folderName,
		ModID:            m.modID,
		Group:            m.group,
		EntryPoint:       m.entryPoint,
		ArchiveBaseName:  m.archiveBaseName,
		Description:      m.Description,
		Version:          m.Version,
		MinecraftVersion: m.MinecraftVersion,
		Website:          m.Website,
		Authors:          append([]string(nil), m.Authors...),
		License:          m.License,
		Directory:        m.directory,
	}
}
