package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/imgpick/internal/config"
	"github.com/vvka-141/imgpick/internal/table"
	"github.com/vvka-141/imgpick/pkg/imgpick"
)

// Environment variables consulted between flags and imgpick.yaml.
const (
	EnvTable     = "IMGPICK_TABLE"
	EnvSource    = "IMGPICK_SOURCE"
	EnvDest      = "IMGPICK_DEST"
	EnvColumn    = "IMGPICK_COLUMN"
	EnvDelimiter = "IMGPICK_DELIMITER"
)

// loadProjectConfig loads godotenv and project configuration.
// Without an explicit path, a missing imgpick.yaml in the working directory
// yields an empty config (not an error). An explicit path must exist.
func loadProjectConfig(explicitPath string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	if explicitPath != "" {
		cfg, err := config.LoadFile(explicitPath)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("config file %s does not exist: %w", explicitPath, imgpick.ErrInputMissing)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", explicitPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return &config.ProjectConfig{}, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return cfg, nil
}

// pickString returns the first non-blank of the flag value, the environment
// variable and the config value.
func pickString(flagValue, envKey, configValue string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	if v := os.Getenv(envKey); strings.TrimSpace(v) != "" {
		return v
	}
	return configValue
}

// pickBool prefers an explicitly set flag over the config value.
func pickBool(cmd *cobra.Command, name string, flagValue, configValue bool) bool {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return flagValue || configValue
}

// resolveDelimiter parses the delimiter with flag > env > config precedence.
// Config values were validated on load.
func resolveDelimiter(flagValue string, cfg *config.ProjectConfig) (rune, error) {
	if flagValue != "" {
		d, _, err := table.ParseDelimiter(flagValue)
		if err != nil {
			return 0, fmt.Errorf("invalid argument %q for \"--delimiter\" flag: %v", flagValue, err)
		}
		return d, nil
	}
	if v := os.Getenv(EnvDelimiter); v != "" {
		d, _, err := table.ParseDelimiter(v)
		if err != nil {
			return 0, fmt.Errorf("%s: %v: %w", EnvDelimiter, err, imgpick.ErrInputMissing)
		}
		return d, nil
	}
	d, _, _ := table.ParseDelimiter(cfg.Delimiter)
	return d, nil
}

// resolveEffectiveTimeout returns the effective timeout, preferring imgpick.yaml if flag wasn't set.
func resolveEffectiveTimeout(cmd *cobra.Command, cfg *config.ProjectConfig, flagTimeout time.Duration) (time.Duration, error) {
	timeout := flagTimeout
	if !cmd.Flags().Changed("timeout") {
		timeout = cfg.TimeoutOr(flagTimeout)
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("invalid argument %q for \"--timeout\" flag: must be positive", timeout)
	}
	return timeout, nil
}
