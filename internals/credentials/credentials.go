// Package credentials stores the optional GitHub token used to query the
// template repository. The system keyring is preferred, a file in the global
// directory is used where no keyring is available.
package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
)

var (
	githubAuthService = "modkit"
	githubAuthUser    = "github_auth_data"
	githubAuthFile    = "github-credentials.json"
)

// Store stores the GitHub token
type Store struct {
	globalDir     string
	NoKeyRingMode bool
	GitHubAuth    *oauth2.Token
}

// New creates a new Store and loads existing credentials
func New(globalDir string) (*Store, error) {
	store := &Store{globalDir: globalDir}
	if err := store.Find(); err != nil {
		return nil, err
	}
	return store, nil
}

// Find tries to find existing credentials
func (s *Store) Find() error {
	githubAuth, err := keyring.Get(githubAuthService, githubAuthUser)
	switch err {
	case nil:
		return json.Unmarshal([]byte(githubAuth), &s.GitHubAuth)
	case keyring.ErrNotFound:
		// no credentials (yet) is fine
		return nil
	default:
		s.NoKeyRingMode = true
		return s.readCredentialFile(githubAuthFile, &s.GitHubAuth)
	}
}

// Token returns the stored access token or an empty string
func (s *Store) Token() string {
	if s.GitHubAuth == nil {
		return ""
	}
	return s.GitHubAuth.AccessToken
}

// SetGitHubAuth sets `GitHubAuth` and persists it
func (s *Store) SetGitHubAuth(auth *oauth2.Token) error {
	s.GitHubAuth = auth

	authJSONBlob, err := json.Marshal(s.GitHubAuth)
	if err != nil {
		return err
	}
	if s.NoKeyRingMode {
		return s.writeCredentialFile(githubAuthFile, authJSONBlob)
	}
	return keyring.Set(githubAuthService, githubAuthUser, string(authJSONBlob))
}

// readCredentialFile is a helper that reads a file from the global dir
func (s *Store) readCredentialFile(location string, v interface{}) error {
	file := filepath.Join(s.globalDir, location)
	rawCreds, err := os.ReadFile(file)
	switch {
	case err == nil:
		return json.Unmarshal(rawCreds, v)
	case os.IsNotExist(err):
		// no file is fine
		return nil
	default:
		return err
	}
}

// writeCredentialFile is a helper that writes a file to the global dir
func (s *Store) writeCredentialFile(location string, content []byte) error {
	if err := os.MkdirAll(s.globalDir, os.ModePerm); err != nil {
		return err
	}
	credFile := filepath.Join(s.globalDir, location)
	return os.WriteFile(credFile, content, 0600)
}
