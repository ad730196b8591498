package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// TokenProvider abstracts where OAuth tokens are stored. The default stores
// them on disk; tests substitute an in-memory provider.
type TokenProvider interface {
	// Token retrieves the stored OAuth token.
	Token(ctx context.Context) (*oauth2.Token, error)

	// SaveToken persists a freshly exchanged token.
	SaveToken(token *oauth2.Token) error

	// HasToken reports whether a stored token exists.
	HasToken() bool
}

const tokenFileName = "google.token"

// FileTokenProvider stores the token as JSON in the user cache directory.
type FileTokenProvider struct {
	// dir overrides the cache directory when set; used by tests.
	dir string
}

// NewFileTokenProvider creates a provider backed by the default cache
// location (for example ~/.cache/phaunabot/google.token on Linux).
func NewFileTokenProvider() *FileTokenProvider {
	return &FileTokenProvider{}
}

func (p *FileTokenProvider) tokenFile() (string, error) {
	dir := p.dir
	if dir == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate user cache directory: %w", err)
		}
		dir = filepath.Join(cache, "phaunabot")
	}
	return filepath.Join(dir, tokenFileName), nil
}

// Token reads the stored token from disk.
func (p *FileTokenProvider) Token(_ context.Context) (*oauth2.Token, error) {
	file, err := p.tokenFile()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("no stored Google OAuth token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token file %s: %w", file, err)
	}

	return &token, nil
}

// SaveToken writes the token to disk, creating the cache directory if
// needed. The file is only readable by the current user.
func (p *FileTokenProvider) SaveToken(token *oauth2.Token) error {
	file, err := p.tokenFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := os.WriteFile(file, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// HasToken reports whether a token file exists.
func (p *FileTokenProvider) HasToken() bool {
	file, err := p.tokenFile()
	if err != nil {
		return false
	}
	_, err = os.Stat(file)
	return err == nil
}
