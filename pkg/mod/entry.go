package mod

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/minepkg/modkit/internals/ident"
	"github.com/minepkg/modkit/internals/merrors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	importInitializer     = "net.fabricmc.api.ModInitializer"
	importIdentifier      = "net.minecraft.util.Identifier"
	importRegistry        = "net.minecraft.registry.Registry"
	importRegistries      = "net.minecraft.registry.Registries"
	importItem            = "net.minecraft.item.Item"
	importItemGroups      = "net.minecraft.item.ItemGroups"
	importItemGroupEvents = "net.fabricmc.fabric.api.itemgroup.v1.ItemGroupEvents"
	importFoodComponent   = "net.minecraft.item.FoodComponent"
)

// imports every item needs
var itemImports = []string{
	importIdentifier,
	importRegistry,
	importRegistries,
	importItem,
	importItemGroups,
	importItemGroupEvents,
}

// DefaultFoodCategory is the creative category of food items without one
const DefaultFoodCategory = "FOOD_AND_DRINK"

// EntryKind is the kind of a content entry
type EntryKind int

const (
	KindItem EntryKind = iota
	KindFood
)

func (k EntryKind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindFood:
		return "food"
	}
	return "unknown"
}

// Entry is a declared piece of content. Hunger and Saturation are only set
// for KindFood
type Entry struct {
	Kind EntryKind
	// Name is the display name
	Name string
	// ID is the normalized name used for registry keys and file names
	ID string
	// Constant is the name of the java field
	Constant string
	// Category is the creative inventory tab (a field of ItemGroups)
	Category string
	// Texture is the source path of the texture
	Texture string

	Hunger     int
	Saturation float64
}

// Model is an item or block model file
type Model struct {
	Parent   string            `json:"parent"`
	Textures map[string]string `json:"textures"`
}

// Texture is a texture that gets copied into the assets when saving
type Texture struct {
	ID     string
	Source string
}

// ErrMissingTexture is returned if no texture could be found for an item
var ErrMissingTexture = &merrors.Error{
	Kind: merrors.KindUsage,
	Err:  "missing texture",
	Help: "Pass the texture explicitly or put a png named like the item id next to your declarations",
}

// errFound stops the texture search
var errFound = errors.New("found")

// renderDefinition returns the java field declaration of e. This is the only
// place where the entry kinds differ in generated code
func renderDefinition(e *Entry) string {
	settings := "new Item.Settings()"
	if e.Kind == KindFood {
		settings += fmt.Sprintf(
			".food(new FoodComponent.Builder().hunger(%d).saturationModifier(%sf).build())",
			e.Hunger,
			strconv.FormatFloat(e.Saturation, 'f', -1, 64),
		)
	}
	return fmt.Sprintf("public static final Item %s = new Item(%s);", e.Constant, settings)
}

// AddItem declares a plain item. category is a field of ItemGroups like
// "INGREDIENTS". If image is empty, a png named like the item id is searched
// in the texture directory
func (m *Mod) AddItem(name string, category string, image string) error {
	return m.add(&Entry{Kind: KindItem, Name: name, Category: category}, image)
}

// AddFoodItem declares an edible item. hunger is in half drumsticks, saturation
// is the saturation modifier. Neither is validated. An empty category
// defaults to DefaultFoodCategory
func (m *Mod) AddFoodItem(name string, hunger int, saturation float64, category string, image string) error {
	if category == "" {
		category = DefaultFoodCategory
	}
	return m.add(&Entry{
		Kind:       KindFood,
		Name:       name,
		Category:   category,
		Hunger:     hunger,
		Saturation: saturation,
	}, image)
}

// add validates e and applies all of its side effects. Nothing is changed if
// it returns an error
func (m *Mod) add(e *Entry, image string) error {
	e.ID = ident.NormalizeID(e.Name)
	e.Constant = ident.ConstantName(e.Name)
	e.Category = ident.ConstantName(e.Category)

	switch {
	case e.ID == "":
		return merrors.Usage("%q is not a valid %s name", e.Name, e.Kind)
	case e.ID[0] >= '0' && e.ID[0] <= '9':
		return merrors.Usage("%s names can not start with a digit (%q)", e.Kind, e.Name)
	case e.Category == "":
		return merrors.Usage("%s %q needs a creative category", e.Kind, e.Name)
	}
	for _, existing := range m.entries {
		if existing.ID == e.ID {
			return merrors.Usage("%q is already declared", e.Name)
		}
	}

	texture, err := m.resolveTexture(e.ID, image)
	if err != nil {
		return err
	}
	e.Texture = texture

	m.itemModels[e.ID] = Model{
		Parent:   "minecraft:item/generated",
		Textures: map[string]string{"layer0": m.modID + ":item/" + e.ID},
	}
	m.itemTextures = append(m.itemTextures, Texture{ID: e.ID, Source: texture})

	for _, imp := range itemImports {
		m.imports[imp] = struct{}{}
	}
	if e.Kind == KindFood {
		m.imports[importFoodComponent] = struct{}{}
	}

	m.registry = append(m.registry,
		fmt.Sprintf("Registry.register(Registries.ITEM, new Identifier(%q, %q), %s);", m.modID, e.ID, e.Constant),
		fmt.Sprintf("ItemGroupEvents.modifyEntriesEvent(ItemGroups.%s).register(content -> content.add(%s));", e.Category, e.Constant),
	)
	m.lang["item."+m.modID+"."+e.ID] = e.Name
	m.definitions = append(m.definitions, renderDefinition(e))
	m.entries = append(m.entries, e)

	m.logger.Debug("added content", "kind", e.Kind, "id", e.ID, "texture", texture)
	return nil
}

// resolveTexture returns image if it exists, or searches the texture
// directory for "<id>.png". The project folder is not searched, it only
// holds copies of earlier textures
func (m *Mod) resolveTexture(id string, image string) (string, error) {
	if image != "" {
		if stat, err := os.Stat(image); err != nil || stat.IsDir() {
			return "", ErrMissingTexture.WithCause(fmt.Errorf("%s does not exist", image))
		}
		return image, nil
	}

	want := id + ".png"
	found := ""
	err := filepath.WalkDir(m.textureDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable directories are skipped
			if d != nil && d.IsDir() && path != m.textureDir {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			if path == m.textureDir {
				return nil
			}
			if path == m.root || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == want {
			found = path
			return errFound
		}
		return nil
	})
	if err != nil && err != errFound {
		return "", merrors.Filesystem(err, "could not search for textures")
	}
	if found == "" {
		return "", ErrMissingTexture.WithCause(fmt.Errorf("no %s found in %s", want, m.textureDir))
	}
	return found, nil
}

// Entries returns all declared content in declaration order
func (m *Mod) Entries() []*Entry {
	return slices.Clone(m.entries)
}

// Imports returns the sorted java imports
func (m *Mod) Imports() []string {
	imports := maps.Keys(m.imports)
	slices.Sort(imports)
	return imports
}

// Definitions returns the java field declarations in declaration order
func (m *Mod) Definitions() []string {
	return slices.Clone(m.definitions)
}

// Registry returns the statements of the initializer in declaration order
func (m *Mod) Registry() []string {
	return slices.Clone(m.registry)
}

// Lang returns the translations of the configured locale
func (m *Mod) Lang() map[string]string {
	return maps.Clone(m.lang)
}

// ItemModels returns the item model files by item id
func (m *Mod) ItemModels() map[string]Model {
	return maps.Clone(m.itemModels)
}
