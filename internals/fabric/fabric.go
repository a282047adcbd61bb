package fabric

// Manifest is the content of a fabric.mod.json file
type Manifest struct {
	SchemaVersion int    `json:"schemaVersion"`
	ID            string `json:"id"`
	Name          string `json:"name"`
	Version       string `json:"version"`
	Environment   string `json:"environment"`
	License       string `json:"license"`
	Icon          string `json:"icon"`
	Contact       struct {
		Homepage string `json:"homepage"`
		Issues   string `json:"issues"`
		Sources  string `json:"sources"`
	} `json:"contact"`
	Authors     []string            `json:"authors"`
	Description string              `json:"description"`
	Entrypoints map[string][]string `json:"entrypoints"`
	Mixins      []string            `json:"mixins"`
	Depends     map[string]string   `json:"depends"`
}
