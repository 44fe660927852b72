package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/crewdeck/crewdeck/internal/errors"
)

// DefaultAPIURL is the backend base URL used when nothing is configured
const DefaultAPIURL = "http://localhost:8000/api"

// EnvAPIURL overrides the configured backend base URL
const EnvAPIURL = "CREWDECK_API_URL"

// Config holds CLI configuration persisted in the crewdeck directory
type Config struct {
	// APIURL is the base URL of the backend REST API
	APIURL string `yaml:"api_url"`

	// LogLevel is the minimum log level (debug, info, warn, error)
	LogLevel string `yaml:"log_level,omitempty"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		APIURL:   DefaultAPIURL,
		LogLevel: "warn",
	}
}

// Dir returns the crewdeck configuration directory (~/.crewdeck),
// creating it if necessary.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeDirectoryFailed, "failed to resolve home directory", err)
	}

	dir := filepath.Join(home, ".crewdeck")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", errors.Wrap(errors.ErrCodeDirectoryFailed, "failed to create config directory", err)
	}

	return dir, nil
}

// Path returns the path of the config file
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from disk, applying defaults and
// environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from an explicit path
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.NewConfigUnmarshalError(path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read config file", err)
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	// Environment wins over file
	if url := os.Getenv(EnvAPIURL); url != "" {
		cfg.APIURL = url
	}

	return cfg, nil
}

// Save writes the configuration to disk
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to an explicit path
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "failed to marshal config", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.NewFileWriteError(path, err)
	}

	return nil
}
