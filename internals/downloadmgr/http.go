// Package downloadmgr downloads files over http(s)
package downloadmgr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultMaxSize is the limit of a single download. The fabric example mod is
// well below 1 MiB
const DefaultMaxSize = 64 << 20

var defaultClient = http.Client{
	Transport: &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   20 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	},
}

// ErrTooLarge is returned if a download exceeds MaxSize
var ErrTooLarge = errors.New("download exceeds the size limit")

// StatusError is returned for non 200 responses
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("invalid status code: %s from %s", e.Status, e.URL)
}

// NotFound reports whether the server responded with 404
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// HTTPItem is a URL, target pair that will be downloaded using http(s)
type HTTPItem struct {
	Client *http.Client
	URL    string
	Target string
	// MaxSize limits the body size. Defaults to DefaultMaxSize
	MaxSize int64
	// Size is set to the number of written bytes after a successful download
	Size int64
}

// Download downloads the item to the defined target using http. The body is
// written next to the target first, so Target is either complete or untouched
func (i *HTTPItem) Download(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(i.Target), os.ModePerm); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", i.URL, nil)
	if err != nil {
		return err
	}

	client := i.Client
	if client == nil {
		client = &defaultClient
	}

	fileRes, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error while fetching %s: %w", i.URL, err)
	}
	defer fileRes.Body.Close()

	if fileRes.StatusCode != http.StatusOK {
		return &StatusError{URL: fileRes.Request.URL.String(), StatusCode: fileRes.StatusCode, Status: fileRes.Status}
	}

	maxSize := i.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if fileRes.ContentLength > maxSize {
		return ErrTooLarge
	}

	partial := i.Target + ".part"
	written, err := writeLimited(partial, fileRes.Body, maxSize)
	if err != nil {
		os.Remove(partial)
		return err
	}
	if err := os.Rename(partial, i.Target); err != nil {
		os.Remove(partial)
		return err
	}
	i.Size = written
	return nil
}

func writeLimited(file string, r io.Reader, maxSize int64) (int64, error) {
	dest, err := os.Create(file)
	if err != nil {
		return 0, err
	}
	defer dest.Close()

	// one byte more to notice oversized bodies without content length
	written, err := io.Copy(dest, io.LimitReader(r, maxSize+1))
	if err != nil {
		return written, err
	}
	if written > maxSize {
		return written, ErrTooLarge
	}
	return written, dest.Sync()
}

// NewHTTPItem creates a Item that will download the file using HTTP(S)
func NewHTTPItem(URL string, Target string) *HTTPItem {
	if URL == "" {
		panic("Download URL can not be empty")
	}
	if Target == "" {
		panic("Target can not be empty")
	}
	return &HTTPItem{Client: &defaultClient, URL: URL, Target: Target}
}
