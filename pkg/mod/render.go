package mod

import (
	"bytes"
	"encoding/json"
	"text/template"
)

var sourceTemplate = template.Must(template.New("initializer").Parse(`package {{.Group}};

{{range .Imports}}import {{.}};
{{end}}
public class {{.EntryPoint}} implements ModInitializer {
{{- range .Definitions}}
	{{.}}
{{- end}}

	@Override
	public void onInitialize() {
{{- range .Registry}}
		{{.}}
{{- end}}
	}
}
`))

// RenderSource returns the java source of the mod initializer. It only
// depends on the declared content
func (m *Mod) RenderSource() string {
	var buf bytes.Buffer
	err := sourceTemplate.Execute(&buf, struct {
		Group       string
		EntryPoint  string
		Imports     []string
		Definitions []string
		Registry    []string
	}{
		Group:       m.group,
		EntryPoint:  m.entryPoint,
		Imports:     m.Imports(),
		Definitions: m.definitions,
		Registry:    m.registry,
	})
	if err != nil {
		// the template only ranges over strings
		panic(err)
	}
	return buf.String()
}

// marshalJSON is used for every generated json file: sorted keys and
// 4 space indention
func marshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
