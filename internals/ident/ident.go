// Package ident turns human display names into the identifiers used in
// generated Java sources, resource paths and gradle properties.
package ident

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/stoewer/go-strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	notIdent      = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	notIdentSpace = regexp.MustCompile(`[^a-zA-Z0-9_ ]`)
)

// DefaultGroupPrefix is used when no usable group could be derived
const DefaultGroupPrefix = "net.modkit"

// NormalizeID returns the lowercase identifier for name. Spaces become
// underscores, everything else that is not a letter, digit or underscore is dropped.
// "Ruby Ore" → "ruby_ore"
func NormalizeID(name string) string {
	return strings.ToLower(notIdent.ReplaceAllString(strings.ReplaceAll(name, " ", "_"), ""))
}

// ConstantName is like NormalizeID but uppercased. "Ruby Ore" → "RUBY_ORE"
func ConstantName(name string) string {
	return strings.ToUpper(notIdent.ReplaceAllString(strings.ReplaceAll(name, " ", "_"), ""))
}

// ModID strips everything (including spaces) that is not a valid identifier
// character and lowercases the rest. "Test Mod" → "testmod"
func ModID(name string) string {
	return strings.ToLower(notIdent.ReplaceAllString(name, ""))
}

// EntryPointName title-cases every word and joins them. "test mod" → "TestMod"
func EntryPointName(name string) string {
	// casers are stateful, so every call gets its own
	titled := cases.Title(language.Und).String(notIdentSpace.ReplaceAllString(name, ""))
	return strings.ReplaceAll(titled, " ", "")
}

// ArchiveBaseName returns the kebab-cased name used for built jar files.
// "Test Mod" → "test-mod"
func ArchiveBaseName(name string) string {
	return strcase.KebabCase(notIdentSpace.ReplaceAllString(name, ""))
}

// Group derives the maven group (which is also the java package) of a mod.
// A website wins over the author: "https://alice.dev/mods" → "dev.alice.mods".
// Without a website the first author and the words of the mod name are used:
// ("Alice", "Test Mod") → "alice.test.mod"
func Group(website string, authors []string, name string) string {
	var segments []string

	if website != "" {
		if u, err := url.Parse(website); err == nil && u.Hostname() != "" {
			host := strings.Split(u.Hostname(), ".")
			for i := len(host) - 1; i >= 0; i-- {
				segments = append(segments, host[i])
			}
			segments = append(segments, strings.Split(u.Path, "/")...)
		}
	}

	if len(segments) == 0 {
		if len(authors) != 0 {
			segments = append(segments, notIdent.ReplaceAllString(authors[0], ""))
		}
		segments = append(segments, strings.Split(notIdentSpace.ReplaceAllString(name, ""), " ")...)
	}

	clean := make([]string, 0, len(segments))
	for _, s := range segments {
		if s = sanitizeSegment(s); s != "" {
			clean = append(clean, s)
		}
	}

	if len(clean) == 0 {
		return DefaultGroupPrefix + "." + SafeModID(name)
	}
	return strings.Join(clean, ".")
}

// GroupPath splits a group into its path segments ("a.b.c" → ["a", "b", "c"])
func GroupPath(group string) []string {
	return strings.Split(group, ".")
}

// SafeModID is ModID, but never returns an empty or digit-leading id
func SafeModID(name string) string {
	id := ModID(name)
	switch {
	case id == "":
		return "mod"
	case id[0] >= '0' && id[0] <= '9':
		return "_" + id
	}
	return id
}

func sanitizeSegment(s string) string {
	s = strings.ToLower(notIdent.ReplaceAllString(strings.ReplaceAll(s, "-", "_"), ""))
	if s != "" && s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}
