package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/classkit-labs/handout-cli/internal/core/domain"
)

const credentialsFileName = "credentials.json"

// FindCredentials locates the OAuth client secret JSON downloaded from the
// Google Cloud console. Search order:
//
//  1. the HANDOUT_CREDENTIALS environment variable (a file path)
//  2. the GOOGLE_APP_CREDENTIALS environment variable (a file path)
//  3. credentials.json in the current directory
//  4. credentials.json next to the binary
//  5. credentials.json in the config directory
func FindCredentials(configDir string) (string, error) {
	for _, env := range []string{"HANDOUT_CREDENTIALS", "GOOGLE_APP_CREDENTIALS"} {
		if path := os.Getenv(env); path != "" {
			if _, err := os.Stat(path); err != nil {
				return "", fmt.Errorf("%s points at %s: %w", env, path, domain.ErrCredentialsNotFound)
			}
			return path, nil
		}
	}

	candidates := []string{credentialsFileName}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), credentialsFileName))
	}
	if configDir != "" {
		candidates = append(candidates, filepath.Join(configDir, credentialsFileName))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", domain.ErrCredentialsNotFound
}

// LoadOAuthConfig reads a client secret file and builds the OAuth config
// for the Google scopes the tool needs.
func LoadOAuthConfig(path string, scopes []string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrCredentialsNotFound)
		}
		return nil, fmt.Errorf("read client secret: %w", err)
	}

	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client secret %s: %w", path, err)
	}
	return cfg, nil
}
