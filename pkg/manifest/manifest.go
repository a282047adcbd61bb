/*
Package manifest defines the file format that declares a mod and its content.
The "modkit.toml" (or "modkit.yaml") file is how the modkit CLI knows what to
generate. It is turned into a mod.Mod by Build.

	[mod]
	name = "Test Mod"
	version = "1.0.0"
	minecraft = "1.20.1"
	authors = ["Alice <alice@example.com>"]

	[[items]]
	name = "Ruby"
	category = "INGREDIENTS"

	[[food]]
	name = "Cheese"
	hunger = 4
	saturation = 0.3
*/
package manifest

import (
	"bytes"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/minepkg/modkit/internals/merrors"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileNames are the supported manifest names in lookup order
var FileNames = []string{"modkit.toml", "modkit.yaml", "modkit.yml"}

// ErrNotFound is returned if a directory has no manifest
var ErrNotFound = &merrors.Error{
	Kind: merrors.KindUsage,
	Err:  "no modkit.toml found",
	Help: "Run \"modkit init\" to create one",
}

// Manifest describes a mod and its content
type Manifest struct {
	Mod struct {
		// Name is the display name. This field is REQUIRED
		Name string `toml:"name" yaml:"name" json:"name"`
		// Version of the mod, should be semver. This field is REQUIRED
		Version     string `toml:"version" yaml:"version" json:"version"`
		Description string `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty"`
		// Minecraft is the exact minecraft version. This field is REQUIRED
		Minecraft string `toml:"minecraft" yaml:"minecraft" json:"minecraft"`
		// Authors in the form of "Full Name <email@example.com>". Email can be omitted
		Authors []string `toml:"authors,omitempty" yaml:"authors,omitempty" json:"authors,omitempty"`
		// Website is used for the contact info and the java package
		Website string `toml:"website,omitempty" yaml:"website,omitempty" json:"website,omitempty"`
		// License is an SPDX identifier like "MIT"
		License string `toml:"license,omitempty" yaml:"license,omitempty" json:"license,omitempty"`
		// Locale is the minecraft language code of the names (en_us if empty)
		Locale string `toml:"locale,omitempty" yaml:"locale,omitempty" json:"locale,omitempty"`
	} `toml:"mod" yaml:"mod" json:"mod"`
	Items []Item `toml:"items,omitempty" yaml:"items,omitempty" json:"items,omitempty"`
	Food  []Food `toml:"food,omitempty" yaml:"food,omitempty" json:"food,omitempty"`
}

// Item is a plain item
type Item struct {
	Name string `toml:"name" yaml:"name" json:"name"`
	// Category is the creative tab like "INGREDIENTS"
	Category string `toml:"category" yaml:"category" json:"category"`
	// Texture is relative to the manifest. Searched by item id if empty
	Texture string `toml:"texture,omitempty" yaml:"texture,omitempty" json:"texture,omitempty"`
}

// Food is an edible item
type Food struct {
	Name       string  `toml:"name" yaml:"name" json:"name"`
	Hunger     int     `toml:"hunger" yaml:"hunger" json:"hunger"`
	Saturation float64 `toml:"saturation" yaml:"saturation" json:"saturation"`
	// Category defaults to FOOD_AND_DRINK
	Category string `toml:"category,omitempty" yaml:"category,omitempty" json:"category,omitempty"`
	Texture  string `toml:"texture,omitempty" yaml:"texture,omitempty" json:"texture,omitempty"`
}

// AuthorNames returns the authors without their email addresses
func (m *Manifest) AuthorNames() []string {
	names := make([]string, 0, len(m.Mod.Authors))
	for _, author := range m.Mod.Authors {
		if parsed, err := mail.ParseAddress(author); err == nil && parsed.Name != "" {
			names = append(names, parsed.Name)
			continue
		}
		names = append(names, author)
	}
	return names
}

// Buffer returns the manifest as toml in Buffer form
func (m *Manifest) Buffer() *bytes.Buffer {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Order(toml.OrderPreserve).Encode(m); err != nil {
		log.Fatal(err)
	}
	return buf
}

func (m *Manifest) String() string {
	return m.Buffer().String()
}

// New returns an empty manifest
func New() *Manifest {
	return &Manifest{}
}

// Parse decodes data. format is the file extension ("toml", "yaml" or "yml")
func Parse(data []byte, format string) (*Manifest, error) {
	m := New()
	var err error
	switch strings.TrimPrefix(format, ".") {
	case "toml":
		err = toml.Unmarshal(data, m)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, m)
	default:
		return nil, merrors.Usage("unsupported manifest format %q", format)
	}
	if err != nil {
		return nil, (&merrors.Error{
			Kind: merrors.KindUsage,
			Err:  "the manifest could not be parsed",
			Help: err.Error(),
		}).WithCause(err)
	}
	return m, nil
}

// Load reads the manifest file
func Load(file string) (*Manifest, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound.WithCause(err)
		}
		return nil, errors.Wrap(err, "could not read the manifest")
	}
	return Parse(data, filepath.Ext(file))
}

// Find returns the path of the manifest in dir
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		file := filepath.Join(dir, name)
		if _, err := os.Stat(file); err == nil {
			return file, nil
		}
	}
	return "", ErrNotFound
}
