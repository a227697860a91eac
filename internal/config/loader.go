package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the per-project configuration file name.
const DefaultConfigFile = ".github-diversity.yaml"

// xdgConfigFile is the file name inside the XDG config directory.
const xdgConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the on-disk configuration.
type File struct {
	Endpoint    string `yaml:"endpoint,omitempty"`
	Timeout     string `yaml:"timeout,omitempty"`
	CommitCount int    `yaml:"commit_count,omitempty"`
	Output      string `yaml:"output,omitempty"`
	Resolve     *bool  `yaml:"resolve,omitempty"`
	Remote      string `yaml:"remote,omitempty"`
}

// DefaultFile returns a File carrying every default value.
func DefaultFile() File {
	c := NewConfig()
	resolve := c.Resolve
	n, _ := strconv.Atoi(c.CommitCount)
	return File{
		Endpoint:    c.Endpoint,
		Timeout:     c.Timeout.String(),
		CommitCount: n,
		Output:      c.Output,
		Resolve:     &resolve,
		Remote:      c.Remote,
	}
}

// LoadConfigFile loads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// WriteConfigFile writes f as YAML to path, creating parent directories.
func WriteConfigFile(path string, f File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0600)
}

// FindConfigFile searches for the configuration file in the following order:
// 1. configPath, when specified
// 2. .github-diversity.yaml in the current directory
// 3. config.yaml in the XDG config directory
//
// Returns an empty string when nothing is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	candidate := filepath.Join(XDGConfigDir(), xdgConfigFile)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}

// DefaultConfigPath is where `init` writes the configuration file.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigDir(), xdgConfigFile)
}
