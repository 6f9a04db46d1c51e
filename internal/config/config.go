package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/imgpick/internal/table"
	"github.com/vvka-141/imgpick/pkg/imgpick"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig mirrors imgpick.yaml. Every field is optional; flags and
// environment variables take precedence over it.
type ProjectConfig struct {
	Table       string `yaml:"table,omitempty"`
	Source      string `yaml:"source,omitempty"`
	Destination string `yaml:"destination,omitempty"`
	Column      string `yaml:"column,omitempty"`
	Delimiter   string `yaml:"delimiter,omitempty"`
	Verify      bool   `yaml:"verify,omitempty"`
	KeepGoing   bool   `yaml:"keep_going,omitempty"`
	Report      string `yaml:"report,omitempty"`
	Timeout     string `yaml:"timeout,omitempty"`
}

const ConfigFileName = imgpick.ConfigFileName

// Load reads imgpick.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads and validates a config file. Relative paths inside it are
// resolved against the file's directory.
func LoadFile(configPath string) (*ProjectConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %v: %w", configPath, err, imgpick.ErrInputMissing)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", configPath, err)
	}
	cfg.resolvePaths(filepath.Dir(configPath))
	return &cfg, nil
}

// Validate checks the fields that have a fixed vocabulary.
func (c *ProjectConfig) Validate() error {
	var errs []error
	if _, _, err := table.ParseDelimiter(c.Delimiter); err != nil {
		errs = append(errs, fmt.Errorf("delimiter: %v: %w", err, imgpick.ErrInputMissing))
	}
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("timeout %q must be a positive duration: %w", c.Timeout, imgpick.ErrInputMissing))
		}
	}
	return errors.Join(errs...)
}

// TimeoutOr returns the configured timeout, or def when unset.
func (c *ProjectConfig) TimeoutOr(def time.Duration) time.Duration {
	if c == nil || c.Timeout == "" {
		return def
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return def
	}
	return d
}

func (c *ProjectConfig) resolvePaths(base string) {
	for _, p := range []*string{&c.Table, &c.Source, &c.Destination, &c.Report} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}
