// Package config holds the runtime configuration of the CLI.
package config

import (
	"errors"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultEndpoint is the local analysis service.
	DefaultEndpoint = "http://localhost:8000"

	// DefaultTimeout bounds a single analysis request. The backend walks the
	// commit history page by page, so large counts take a while.
	DefaultTimeout = 5 * time.Minute

	// DefaultCommitCount pre-fills the commit-count field.
	DefaultCommitCount = "100"

	// DefaultRemote is the git remote used as the "current tab".
	DefaultRemote = "origin"

	// AppName is the application name used for XDG directory paths.
	AppName = "github-diversity"
)

// Output formats.
const (
	OutputText     = "text"
	OutputMarkdown = "markdown"
	OutputJSON     = "json"
)

// OutputFormats lists the accepted values of Config.Output.
var OutputFormats = []string{OutputText, OutputMarkdown, OutputJSON}

// Validation errors.
var (
	ErrEmptyEndpoint  = errors.New("analysis endpoint must not be empty")
	ErrInvalidTimeout = errors.New("timeout must be positive")
	ErrUnknownOutput  = errors.New("output must be one of text, markdown, json")
)

// Config holds all configuration options.
// It is populated from defaults, then the config file, then CLI flags.
type Config struct {
	// Endpoint is the base URL of the analysis service.
	Endpoint string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// CommitCount is the raw commit-count field. It is validated with the
	// repository field at trigger time, not here.
	CommitCount string

	// Output selects the report format.
	Output string

	// Resolve canonicalizes the pre-filled repository through the GitHub API.
	Resolve bool

	// Remote is the git remote consulted when no URL is given.
	Remote string

	// GitHubToken authenticates repository resolution. Read from GITHUB_TOKEN.
	GitHubToken string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the explicitly requested config file, if any.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Endpoint:    DefaultEndpoint,
		Timeout:     DefaultTimeout,
		CommitCount: DefaultCommitCount,
		Output:      OutputText,
		Remote:      DefaultRemote,
	}
}

// XDGConfigDir returns the XDG config directory for the application.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Apply overlays the values set in the file onto the config.
func (c *Config) Apply(f *File) error {
	if f == nil {
		return nil
	}
	if f.Endpoint != "" {
		c.Endpoint = f.Endpoint
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return errors.Join(ErrInvalidTimeout, err)
		}
		c.Timeout = d
	}
	if f.CommitCount != 0 {
		c.CommitCount = strconv.Itoa(f.CommitCount)
	}
	if f.Output != "" {
		c.Output = f.Output
	}
	if f.Resolve != nil {
		c.Resolve = *f.Resolve
	}
	if f.Remote != "" {
		c.Remote = f.Remote
	}
	return nil
}

// Validate checks if the configuration is valid and returns the first problem found.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return ErrEmptyEndpoint
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if !slices.Contains(OutputFormats, c.Output) {
		return ErrUnknownOutput
	}
	return nil
}
