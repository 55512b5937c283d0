package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// Store is the JSON file where API keys entered by the user are kept between runs.
type Store struct {
	Path string
}

// DefaultPath returns the store location under the user configuration directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".rebal.json"
	}
	return filepath.Join(dir, "rebal", "config.json")
}

// DefaultCacheDir returns the folder of cached LLM replies.
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "rebal")
}

func keyName(provider string) string { return provider + "_api_key" }

// Load returns the saved values. A missing file is an empty configuration.
func (s Store) Load() (map[string]string, error) {
	values := make(map[string]string)
	content, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config %q: %w", s.Path, err)
	}
	if err := json.Unmarshal(content, &values); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", s.Path, err)
	}
	return values, nil
}

// Save replaces the saved values. The file is only readable by its owner.
func (s Store) Save(values map[string]string) error {
	content, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("cannot create config folder: %w", err)
	}
	if err := os.WriteFile(s.Path, content, 0o600); err != nil {
		return fmt.Errorf("cannot write config %q: %w", s.Path, err)
	}
	return nil
}

// APIKey returns the saved key for provider, or "" if none.
func (s Store) APIKey(provider string) (string, error) {
	values, err := s.Load()
	if err != nil {
		return "", err
	}
	return values[keyName(provider)], nil
}

// SetAPIKey saves the key for provider.
func (s Store) SetAPIKey(provider, key string) error {
	values, err := s.Load()
	if err != nil {
		return err
	}
	values[keyName(provider)] = key
	return s.Save(values)
}

// ClearAPIKey removes the key for provider. Clearing an absent key is a no-op.
func (s Store) ClearAPIKey(provider string) error {
	values, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := values[keyName(provider)]; !ok {
		return nil
	}
	delete(values, keyName(provider))
	return s.Save(values)
}
