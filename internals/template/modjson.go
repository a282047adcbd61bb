package template

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/minepkg/modkit/internals/fabric"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var pathEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)

// modJSONChanges are applied to the template's fabric.mod.json
func modJSONChanges(p *Project) []struct {
	path  string
	value interface{}
} {
	authors := p.Authors
	if authors == nil {
		authors = []string{}
	}
	changes := []struct {
		path  string
		value interface{}
	}{
		{"id", p.ModID},
		{"name", p.Name},
		{"description", p.Description},
		{"authors", authors},
		{"contact.homepage", p.Website},
		{"contact.sources", ""},
		{"icon", "assets/" + p.ModID + "/icon.png"},
		{"mixins", []string{}},
		{"entrypoints.main", []string{p.EntrypointClass()}},
	}
	if p.License != "" {
		changes = append(changes, struct {
			path  string
			value interface{}
		}{"license", p.License})
	}
	return changes
}

// rewriteModJSON sets our metadata in data. Every field we don't touch stays
// as it is. All entrypoints except "main" point to template classes that get
// removed, so they are dropped too
func rewriteModJSON(data []byte, p *Project) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("fabric.mod.json is not valid json")
	}

	var drop []string
	gjson.GetBytes(data, "entrypoints").ForEach(func(key, _ gjson.Result) bool {
		if key.String() != "main" {
			drop = append(drop, key.String())
		}
		return true
	})

	var err error
	for _, key := range drop {
		if data, err = sjson.DeleteBytes(data, "entrypoints."+pathEscaper.Replace(key)); err != nil {
			return nil, errors.Wrapf(err, "could not remove entrypoint %s", key)
		}
	}

	for _, change := range modJSONChanges(p) {
		if data, err = sjson.SetBytes(data, change.path, change.value); err != nil {
			return nil, errors.Wrapf(err, "could not set %s", change.path)
		}
	}

	data = pretty.PrettyOptions(data, &pretty.Options{Width: 80, Indent: "    "})

	// make sure fabric can still read it
	var manifest fabric.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "rewritten fabric.mod.json is invalid")
	}
	if manifest.ID != p.ModID {
		return nil, errors.Errorf("rewritten fabric.mod.json has id %q instead of %q", manifest.ID, p.ModID)
	}
	return data, nil
}

// templateIcon returns the icon the template ships with (if any)
func templateIcon(resources string, data []byte) []byte {
	icon := gjson.GetBytes(data, "icon").String()
	if icon == "" {
		return nil
	}
	content, err := os.ReadFile(filepath.Join(resources, filepath.FromSlash(icon)))
	if err != nil {
		return nil
	}
	return content
}
