package manifest

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/minepkg/modkit/internals/ident"
	"github.com/minepkg/modkit/internals/locale"
)

const (
	ErrorLevelWarn = iota
	ErrorLevelFatal
)

type ValidationError struct {
	message string
	Path    string
	Level   int
}

func (e ValidationError) Error() string {
	return e.Path + ": " + e.message
}

var (
	// ErrNameEmpty is returned when the mod has no name
	ErrNameEmpty = ValidationError{
		message: "name is empty",
		Path:    "mod.name",
		Level:   ErrorLevelFatal,
	}
	// ErrVersionEmpty is returned when the mod has no version
	ErrVersionEmpty = ValidationError{
		message: "version is empty",
		Path:    "mod.version",
		Level:   ErrorLevelFatal,
	}
	// ErrVersionNotSemver is returned when the version is not a semver version
	ErrVersionNotSemver = ValidationError{
		message: "version is not a valid semver version",
		Path:    "mod.version",
		Level:   ErrorLevelWarn,
	}
	// ErrNoMinecraftVersion is returned when the mod does not set a minecraft version
	ErrNoMinecraftVersion = ValidationError{
		message: "does not contain a minecraft version",
		Path:    "mod.minecraft",
		Level:   ErrorLevelFatal,
	}
	// ErrInvalidLocale is returned for unknown locale codes
	ErrInvalidLocale = ValidationError{
		message: "is not a minecraft language code",
		Path:    "mod.locale",
		Level:   ErrorLevelFatal,
	}
)

// helper regexes
var (
	// exact versions only, no ranges
	validMinecraftVersion = regexp.MustCompile(`^[0-9][0-9a-z.\-+ ]*$`)
)

type Problems []ValidationError

// Fatal returns the first fatal error in the list. If there are no fatal errors, it returns nil.
func (p *Problems) Fatal() error {
	for _, problem := range *p {
		if problem.Level == ErrorLevelFatal {
			return problem
		}
	}
	return nil
}

// Warnings returns all problems that are not fatal
func (p *Problems) Warnings() Problems {
	warnings := Problems{}
	for _, problem := range *p {
		if problem.Level == ErrorLevelWarn {
			warnings = append(warnings, problem)
		}
	}
	return warnings
}

func validateMinecraftVersion(mcVersion string) Problems {
	problems := Problems{}

	if mcVersion == "" {
		problems = append(problems, ErrNoMinecraftVersion)
		return problems
	}

	if !validMinecraftVersion.MatchString(mcVersion) {
		problems = append(problems, ValidationError{
			message: fmt.Sprintf("%q is not an exact minecraft version (like 1.20.1)", mcVersion),
			Path:    "mod.minecraft",
			Level:   ErrorLevelFatal,
		})
	}

	return problems
}

func validateContent(path string, i int, name string, category string) Problems {
	problems := Problems{}
	at := fmt.Sprintf("%s[%d]", path, i)

	id := ident.NormalizeID(name)
	switch {
	case id == "":
		problems = append(problems, ValidationError{
			message: fmt.Sprintf("%q is not a valid name", name),
			Path:    at + ".name",
			Level:   ErrorLevelFatal,
		})
	case id[0] >= '0' && id[0] <= '9':
		problems = append(problems, ValidationError{
			message: fmt.Sprintf("%q can not start with a digit", name),
			Path:    at + ".name",
			Level:   ErrorLevelFatal,
		})
	}

	if category == "" && path == "items" {
		problems = append(problems, ValidationError{
			message: "category is empty",
			Path:    at + ".category",
			Level:   ErrorLevelFatal,
		})
	}

	return problems
}

// Validate checks the manifest for correctness.
func (m *Manifest) Validate() Problems {
	problems := Problems{}

	switch {
	case m.Mod.Name == "":
		problems = append(problems, ErrNameEmpty)
	case ident.ModID(m.Mod.Name) == "":
		problems = append(problems, ValidationError{
			message: "name needs at least one letter or digit",
			Path:    "mod.name",
			Level:   ErrorLevelFatal,
		})
	}

	switch {
	case m.Mod.Version == "":
		problems = append(problems, ErrVersionEmpty)
	default:
		if _, err := semver.NewVersion(m.Mod.Version); err != nil {
			problems = append(problems, ErrVersionNotSemver)
		}
	}

	problems = append(problems, validateMinecraftVersion(m.Mod.Minecraft)...)

	if m.Mod.Locale != "" && !locale.Valid(m.Mod.Locale) {
		problems = append(problems, ErrInvalidLocale)
	}

	if len(m.Mod.Authors) == 0 && m.Mod.Website == "" {
		problems = append(problems, ValidationError{
			message: "neither authors nor website are set, the java package will be generic",
			Path:    "mod.authors",
			Level:   ErrorLevelWarn,
		})
	}

	// duplicates would be duplicate java fields
	seen := map[string]string{}
	check := func(path string, i int, name string) {
		id := ident.NormalizeID(name)
		if first, ok := seen[id]; ok && id != "" {
			problems = append(problems, ValidationError{
				message: fmt.Sprintf("%q has the same id as %s", name, first),
				Path:    fmt.Sprintf("%s[%d].name", path, i),
				Level:   ErrorLevelFatal,
			})
			return
		}
		seen[id] = fmt.Sprintf("%s[%d]", path, i)
	}

	for i, item := range m.Items {
		problems = append(problems, validateContent("items", i, item.Name, item.Category)...)
		check("items", i, item.Name)
	}
	for i, food := range m.Food {
		problems = append(problems, validateContent("food", i, food.Name, food.Category)...)
		check("food", i, food.Name)
	}

	return problems
}
