package versions

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
)

// CacheFileName is the name of the file the compat versions are cached in
const CacheFileName = "fabric_versions.json"

// Cache maps minecraft versions to the fabric API version supporting them
type Cache map[string]string

// LoadCache reads the cache from file. A missing file results in an empty cache
func LoadCache(file string) (Cache, error) {
	cache := Cache{}
	buf, err := os.ReadFile(file)
	switch {
	case os.IsNotExist(err):
		return cache, nil
	case err != nil:
		return cache, err
	}

	if err := json.Unmarshal(buf, &cache); err != nil {
		return Cache{}, err
	}
	return cache, nil
}

// Save writes the cache to file (pretty printed, 4 spaces)
func (c Cache) Save(file string) error {
	if err := os.MkdirAll(filepath.Dir(file), os.ModePerm); err != nil {
		return err
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(c); err != nil {
		return err
	}
	return os.WriteFile(file, buf.Bytes(), 0644)
}

// merge records that label supports gameVersion. If another label already
// claimed gameVersion, the higher version wins so the result does not depend
// on the order in which releases were fetched
func (c Cache) merge(gameVersion string, label string) {
	existing, ok := c[gameVersion]
	if !ok || newer(label, existing) {
		c[gameVersion] = label
	}
}

// newer reports if a is a newer version than b. Non semver labels are
// compared lexically
func newer(a string, b string) bool {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA != nil || errB != nil {
		return a > b
	}
	// semver ignores build metadata (fabric uses "0.83.0+1.20.1"), fall back to
	// the full string for otherwise equal versions
	if va.Equal(vb) {
		return a > b
	}
	return va.GreaterThan(vb)
}
