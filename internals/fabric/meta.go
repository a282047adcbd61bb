package fabric

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// DefaultMetaURL is the location of the fabric meta API
const DefaultMetaURL = "https://meta.fabricmc.net/"

var (
	// ErrNoFabricLoader is returned if fabric has no loader for a game version
	ErrNoFabricLoader = errors.New("no fabric loader available for this minecraft version")
)

// GameVersion is a minecraft version known to fabric
type GameVersion struct {
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}

// LoaderEntry describes the loader and mappings to use for a game version
type LoaderEntry struct {
	Loader   LoaderVersion  `json:"loader"`
	Mappings MappingVersion `json:"mappings"`
}

type LoaderVersion struct {
	Separator string `json:"separator"`
	Build     int    `json:"build"`
	Maven     string `json:"maven"`
	Version   string `json:"version"`
	Stable    bool   `json:"stable"`
}

type MappingVersion struct {
	GameVersion string `json:"gameVersion"`
	Separator   string `json:"separator"`
	Build       int    `json:"build"`
	Maven       string `json:"maven"`
	Version     string `json:"version"`
	Stable      bool   `json:"stable"`
}

// MetaClient talks to the fabric meta API
type MetaClient struct {
	http    *http.Client
	baseURL string
}

// NewMetaClient returns a MetaClient. httpClient and baseURL are optional
func NewMetaClient(httpClient *http.Client, baseURL string) *MetaClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultMetaURL
	}
	return &MetaClient{http: httpClient, baseURL: baseURL}
}

// GameVersions returns all minecraft versions fabric knows about, newest first
func (m *MetaClient) GameVersions(ctx context.Context) ([]GameVersion, error) {
	versions := make([]GameVersion, 0)
	if err := m.getJSON(ctx, &versions, "v2/versions/game"); err != nil {
		return nil, err
	}
	return versions, nil
}

// LoaderForGameVersion returns the newest loader & mappings for mcVersion
func (m *MetaClient) LoaderForGameVersion(ctx context.Context, mcVersion string) (*LoaderEntry, error) {
	loaders := make([]LoaderEntry, 0)
	if err := m.getJSON(ctx, &loaders, "v1/versions/loader", mcVersion); err != nil {
		return nil, err
	}

	if len(loaders) == 0 {
		return nil, ErrNoFabricLoader
	}
	matched := loaders[0]

	return &matched, nil
}

func (m *MetaClient) getJSON(ctx context.Context, v interface{}, path ...string) error {
	u, err := url.JoinPath(m.baseURL, path...)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := m.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		return fmt.Errorf("fabric meta API did respond with unexpected status %s", res.Status)
	}

	return json.NewDecoder(res.Body).Decode(v)
}

// Stable filters versions down to the stable ones (keeping the order)
func Stable(versions []GameVersion) []GameVersion {
	stable := make([]GameVersion, 0, len(versions))
	for _, v := range versions {
		if v.Stable {
			stable = append(stable, v)
		}
	}
	return stable
}
