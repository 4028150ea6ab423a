package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSession is returned by TokenCache.Load when nobody is logged in.
var ErrNoSession = errors.New("client: no cached session")

// TokenCache persists the current session in a single JSON file.
type TokenCache struct {
	path string
}

// NewTokenCache uses path for storage.
func NewTokenCache(path string) *TokenCache {
	return &TokenCache{path: path}
}

// DefaultTokenPath returns the per-user session file location.
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "moviemeter", "session.json"), nil
}

// Path reports the backing file.
func (c *TokenCache) Path() string {
	return c.path
}

// Load returns the cached session or ErrNoSession.
func (c *TokenCache) Load() (Session, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, ErrNoSession
		}
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, fmt.Errorf("parse session: %w", err)
	}
	if s.Token == "" {
		return Session{}, ErrNoSession
	}
	return s, nil
}

// Save writes the session with owner-only permissions.
func (c *TokenCache) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, c.path)
}

// Clear removes the session. Clearing an empty cache is not an error.
func (c *TokenCache) Clear() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
