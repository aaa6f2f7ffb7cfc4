// Package auth persists OAuth tokens between runs and keeps the cached
// token fresh while the Google services use it.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	"github.com/classkit-labs/handout-cli/internal/core/domain"
)

const tokenFileName = "token.json"

// TokenStore reads and writes the cached OAuth token as JSON in the
// config directory.
type TokenStore struct {
	path string
}

// NewTokenStore creates a token store rooted at dir.
func NewTokenStore(dir string) *TokenStore {
	return &TokenStore{path: filepath.Join(dir, tokenFileName)}
}

// Path returns the token file location.
func (s *TokenStore) Path() string { return s.path }

// Load reads the cached token. A missing file means no login has happened
// yet; a file that does not parse means the cache is unusable and a fresh
// login is needed.
func (s *TokenStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrAuthRequired
	}
	if err != nil {
		return nil, fmt.Errorf("read token cache: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parse token cache %s: %w", s.path, domain.ErrTokenInvalid)
	}
	if token.RefreshToken == "" && !token.Valid() {
		return nil, domain.ErrTokenInvalid
	}
	return &token, nil
}

// Save writes the token, creating the config directory if needed. The file
// is written with owner-only permissions.
func (s *TokenStore) Save(token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	return nil
}

// Clear removes the cached token. Clearing an empty cache is not an error.
func (s *TokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token cache: %w", err)
	}
	return nil
}
