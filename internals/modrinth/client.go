// Package modrinth is a small client for the parts of the Modrinth API modkit
// needs: reading a project and its versions.
package modrinth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/minepkg/modkit/internals/merrors"
)

const DefaultApiURL = "https://api.modrinth.com/"

// FabricAPIProjectID is the id of the Fabric API project on Modrinth
const FabricAPIProjectID = "P7dR8mSH"

var (
	// An error that is returned if the provided project ID or slug is invalid
	// currently this is only returned if it was an empty string
	ErrInvalidProjectIDOrSlug = errors.New("invalid project ID or slug")
	// An error that is returned if the provided version ID is invalid
	// currently this is only returned if it was an empty string
	ErrInvalidVersionID = errors.New("invalid version ID")
	// A generic error that is returned if a resource was not found
	// Some methods return more specific errors that wrap this error (e.g. ErrProjectNotFound)
	ErrResourceNotFound = errors.New("resource not found")
	ErrProjectNotFound  = fmt.Errorf("project %w", ErrResourceNotFound)
	ErrVersionNotFound  = fmt.Errorf("version %w", ErrResourceNotFound)
)

type Client struct {
	http    *http.Client
	baseURL *url.URL

	// RetryBackoff is the fixed time waited after a 429 response
	RetryBackoff time.Duration
	// MaxAttempts is the number of tries for a single request that keeps getting
	// rate limited. Zero means 5
	MaxAttempts int
}

func New(httpClient *http.Client) *Client {
	c, _ := NewWithBaseURL(httpClient, DefaultApiURL)
	return c
}

// NewWithBaseURL is New with a different API location (used for mirrors and tests)
func NewWithBaseURL(httpClient *http.Client, baseURL string) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		http:         httpClient,
		baseURL:      parsed,
		RetryBackoff: 400 * time.Millisecond,
		MaxAttempts:  5,
	}, nil
}

// url joins the addedPath to the baseURL (panics if new path can not be parsed)
func (c *Client) url(addedPath ...string) *url.URL {
	joined, err := url.JoinPath(c.baseURL.String(), addedPath...)
	if err != nil {
		panic(err)
	}

	url, err := url.Parse(joined)
	if err != nil {
		panic(err)
	}

	return url
}

// get is a wrapper around http.Get() with context support. It retries
// requests that got rate limited (status 429) after a fixed backoff
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	maxAttempts := c.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	for attempt := 1; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return nil, err
		}

		res, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if res.StatusCode != http.StatusTooManyRequests {
			return res, nil
		}
		res.Body.Close()

		if attempt >= maxAttempts {
			return nil, merrors.Transient(
				fmt.Errorf("still rate limited after %d attempts", attempt),
				"modrinth API rate limit exceeded",
			)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.RetryBackoff):
		}
	}
}

// decode is a helper that decodes json, and checks the status code
func decode(res *http.Response, v interface{}, notFound error) error {
	defer res.Body.Close()

	if res.StatusCode != 200 {
		switch res.StatusCode {
		case 404:
			return notFound
		default:
			return fmt.Errorf("unexpected status code: %d", res.StatusCode)
		}
	}

	return json.NewDecoder(res.Body).Decode(v)
}
