package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Session is what the CLI remembers between invocations.
type Session struct {
	Token    string `yaml:"token"`
	Username string `yaml:"username"`
	APIURL   string `yaml:"api_url,omitempty"`
}

func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// DefaultSessionPath is session.yaml under the user's config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not locate config directory: %w", err)
	}
	return filepath.Join(dir, "pincher-notes", "session.yaml"), nil
}

// SaveSession writes s to path, readable only by the owner.
func SaveSession(path string, s Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("could not create session directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("could not encode session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("could not write session: %w", err)
	}
	return nil
}

// LoadSession reads the session at path. A missing file is an empty,
// logged-out session.
func LoadSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("could not read session: %w", err)
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("could not decode session %s: %w", path, err)
	}
	return s, nil
}

// ClearSession removes the session file; clearing twice is not an error.
func ClearSession(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not remove session: %w", err)
	}
	return nil
}
