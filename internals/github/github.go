// Package github resolves and locates template archives hosted on GitHub
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/minepkg/modkit/internals/license"
	"golang.org/x/oauth2"
)

const (
	DefaultAPIURL = "https://api.github.com/"
	DefaultWebURL = "https://github.com/"
)

// Client reads repository metadata
type Client struct {
	http   *http.Client
	APIURL string
	WebURL string
}

// New returns a client. If token is set, requests are authenticated which
// raises GitHub's rate limit. base is used as the underlying client (can be nil)
func New(ctx context.Context, base *http.Client, token string) *Client {
	if base == nil {
		base = http.DefaultClient
	}
	httpClient := base
	if token != "" {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	return &Client{http: httpClient, APIURL: DefaultAPIURL, WebURL: DefaultWebURL}
}

// Repository is the part of the repository response we care about
type Repository struct {
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
}

// DefaultBranch returns the default branch of owner/repo
func (c *Client) DefaultBranch(ctx context.Context, owner string, repo string) (string, error) {
	u, err := url.JoinPath(c.APIURL, "repos", owner, repo)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		return "", fmt.Errorf("github API did respond with unexpected status %s", res.Status)
	}

	var repository Repository
	if err := json.NewDecoder(res.Body).Decode(&repository); err != nil {
		return "", err
	}
	if repository.DefaultBranch == "" {
		return "", fmt.Errorf("repository %s/%s has no default branch", owner, repo)
	}
	return repository.DefaultBranch, nil
}

// ArchiveURL returns the zip archive location of ref
func (c *Client) ArchiveURL(owner string, repo string, ref string) string {
	u, err := url.JoinPath(c.WebURL, owner, repo, "archive", ref+".zip")
	if err != nil {
		panic(err)
	}
	return u
}

// License fetches the text of a license like "mit"
func (c *Client) License(ctx context.Context, key string) (*license.License, error) {
	return license.Get(ctx, c.http, c.APIURL, key)
}
