// Package config persists user credentials under ~/.flameparse.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound indicates the config file has not been created yet, or
// holds no token.
var ErrConfigNotFound = errors.New("config file not found")

const (
	configDirName  = ".flameparse"
	configFileName = "config.yaml"
)

type settings struct {
	GitHub struct {
		Token string `yaml:"token"`
	} `yaml:"github"`
}

// Config reads and writes the credential store on disk.
type Config struct {
	path string
}

// New anchors the store in the user's home directory, creating the directory
// if needed.
func New() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	return NewAt(filepath.Join(home, configDirName))
}

// NewAt anchors the store in an explicit directory.
func NewAt(dir string) (*Config, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	return &Config{path: filepath.Join(dir, configFileName)}, nil
}

// Path returns the config file location.
func (c *Config) Path() string { return c.path }

// Exists reports whether a config file is already present.
func (c *Config) Exists() bool {
	_, err := os.Stat(c.path)
	return err == nil
}

// GitHubToken returns the stored token, or ErrConfigNotFound when the file
// is missing or empty.
func (c *Config) GitHubToken() (string, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrConfigNotFound
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	var s settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("parsing config: %w", err)
	}
	if s.GitHub.Token == "" {
		return "", ErrConfigNotFound
	}
	return s.GitHub.Token, nil
}

// SetGitHubToken writes the token, replacing any previous value. The file is
// user-readable only.
func (c *Config) SetGitHubToken(token string) error {
	var s settings
	s.GitHub.Token = token
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
