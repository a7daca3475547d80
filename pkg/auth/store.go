package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// Credential is the persisted form of an authorization: the OAuth token
// plus the scopes it was granted. A credential with a refresh token can
// be renewed without user interaction; one without is single-use until
// its expiry.
type Credential struct {
	oauth2.Token
	Scopes []string `json:"scopes,omitempty"`
}

// HasScopes reports whether the credential covers every required scope.
func (c *Credential) HasScopes(required []string) bool {
	granted := make(map[string]bool, len(c.Scopes))
	for _, s := range c.Scopes {
		granted[s] = true
	}
	for _, s := range required {
		if !granted[s] {
			return false
		}
	}
	return true
}

// TokenStore persists a single credential as JSON at a fixed path.
// It does no validation of the content, that is the manager's job.
type TokenStore struct {
	path string
}

// NewTokenStore creates a store backed by the given file path.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Path returns the file the store reads and writes.
func (s *TokenStore) Path() string { return s.path }

// Load reads the stored credential. A missing file yields ErrNoToken;
// anything else wrong with the file is a StoreError.
func (s *TokenStore) Load() (*Credential, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoToken
		}
		return nil, &StoreError{Op: "read", Path: s.path, Err: err}
	}
	defer f.Close()

	var cred Credential
	if err := json.NewDecoder(f).Decode(&cred); err != nil {
		return nil, &StoreError{Op: "read", Path: s.path, Err: fmt.Errorf("decode: %w", err)}
	}
	return &cred, nil
}

// Save writes the credential atomically: a temp file in the same
// directory, 0600 perms, then a rename over the target. An interrupted
// run never leaves a half-written token behind.
func (s *TokenStore) Save(cred *Credential) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return &StoreError{Op: "write", Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return &StoreError{Op: "write", Path: s.path, Err: err}
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return &StoreError{Op: "write", Path: s.path, Err: err}
	}
	if err := json.NewEncoder(tmp).Encode(cred); err != nil {
		tmp.Close()
		return &StoreError{Op: "write", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &StoreError{Op: "write", Path: s.path, Err: err}
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return &StoreError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

// Delete removes the stored credential, forcing a fresh consent flow on
// the next run. A missing file is fine.
func (s *TokenStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &StoreError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}
