// Package locale picks the Minecraft language code used for generated
// lang files.
package locale

import (
	_ "embed"
	"os"
	"strings"

	"github.com/minepkg/modkit/internals/merrors"
	"golang.org/x/text/language"
)

// Default is used when nothing better can be detected
const Default = "en_us"

//go:embed locale_codes.txt
var rawCodes string

var codes = func() []string {
	lines := strings.Split(rawCodes, "\n")
	list := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		list = append(list, l)
	}
	return list
}()

// Codes returns all known Minecraft language codes
func Codes() []string {
	return append([]string(nil), codes...)
}

// Valid reports if code is a known Minecraft language code
func Valid(code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// Validate returns a usage error for unknown codes
func Validate(code string) error {
	if !Valid(code) {
		return &merrors.Error{
			Kind: merrors.KindUsage,
			Err:  "invalid locale code \"" + code + "\"",
			Help: "Use a Minecraft language code like \"en_us\" or \"de_de\"",
		}
	}
	return nil
}

// Match finds the best Minecraft code for a system locale like "de_DE.UTF-8"
// or "pt-BR". Exact matches win, then the first code with the same language.
// It returns Default if nothing matches.
func Match(system string) string {
	system = strings.SplitN(system, ".", 2)[0]
	system = strings.SplitN(system, "@", 2)[0]
	if system == "" || system == "C" || system == "POSIX" {
		return Default
	}

	tag, err := language.Parse(strings.ReplaceAll(system, "_", "-"))
	if err != nil {
		return Default
	}
	base, _ := tag.Base()
	region, confidence := tag.Region()

	lang := strings.ToLower(base.String())
	if confidence == language.Exact {
		if candidate := lang + "_" + strings.ToLower(region.String()); Valid(candidate) {
			return candidate
		}
	}

	for _, c := range codes {
		if strings.HasPrefix(c, lang+"_") {
			return c
		}
	}
	return Default
}

// Detect guesses the language code from the usual environment variables
func Detect() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			return Match(v)
		}
	}
	return Default
}
