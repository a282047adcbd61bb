// Package license fetches license texts from the GitHub licenses API
package license

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknown is returned if GitHub does not know the license
var ErrUnknown = errors.New("unknown license")

// License is what https://api.github.com/licenses/<key> returns
type License struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	SpdxID      string   `json:"spdx_id"`
	HTMLURL     string   `json:"html_url"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
	Conditions  []string `json:"conditions"`
	Limitations []string `json:"limitations"`
	Body        string   `json:"body"`
}

// Get fetches the license with the given key (like "mit" or "apache-2.0")
// from the GitHub API at apiURL
func Get(ctx context.Context, httpClient *http.Client, apiURL string, key string) (*License, error) {
	u, err := url.JoinPath(apiURL, "licenses", strings.ToLower(key))
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	r, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer r.Body.Close()

	switch {
	case r.StatusCode == http.StatusNotFound:
		return nil, errors.Wrap(ErrUnknown, key)
	case r.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("github API did respond with unexpected status %s", r.Status)
	}

	var license License
	if err := json.NewDecoder(r.Body).Decode(&license); err != nil {
		return nil, err
	}
	return &license, nil
}

// Fill replaces the year and copyright holder placeholders of the license body
func (l *License) Fill(year int, holders []string) string {
	holder := strings.Join(holders, ", ")
	if holder == "" {
		holder = "Contributors"
	}
	replacer := strings.NewReplacer(
		"[year]", strconv.Itoa(year),
		"[fullname]", holder,
	)
	return replacer.Replace(l.Body)
}
