// Package template turns the fabric example mod into a fresh project:
// it downloads the template, rewrites its metadata for the new mod and removes
// the placeholder sources.
package template

import (
	"path/filepath"

	"github.com/minepkg/modkit/internals/datafile"
	"github.com/minepkg/modkit/internals/ident"
)

const (
	// JavaRoot is the source directory of the main source set
	JavaRoot = "src/main/java"
	// ResourceRoot contains fabric.mod.json and the assets directory
	ResourceRoot = "src/main/resources"
	// AssetRoot contains one asset directory per namespace
	AssetRoot = ResourceRoot + "/assets"
)

// Project is everything needed to bootstrap a new mod
type Project struct {
	Name             string
	ModID            string
	Group            string
	EntryPoint       string
	ArchiveBaseName  string
	Description      string
	Version          string
	MinecraftVersion string
	Website          string
	Authors          []string
	// License is an SPDX identifier like "MIT". A LICENSE file is written if set
	License string
	// Directory is the parent directory of the project folder
	Directory string
}

// Root is the project folder
func (p *Project) Root() string {
	return filepath.Join(p.Directory, p.Name)
}

// EntrypointClass is the fully qualified class name of the generated initializer
func (p *Project) EntrypointClass() string {
	return p.Group + "." + p.EntryPoint
}

// Locations returns the project relative paths that are written to the
// location manifest. They use the native path separator
func (p *Project) Locations() *datafile.Locations {
	parts := append([]string{filepath.FromSlash(JavaRoot)}, ident.GroupPath(p.Group)...)
	parts = append(parts, p.EntryPoint+".java")
	return &datafile.Locations{
		Entrypoint: filepath.Join(parts...),
		Assets:     filepath.Join(filepath.FromSlash(AssetRoot), p.ModID),
	}
}
