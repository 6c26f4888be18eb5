// Package config provides configuration structures and loading for pofmt.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/git-l10n/pofmt/repository"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the name of the config file in the repository root.
	ConfigFileName = "pofmt.yaml"
	// UserConfigFileName is the name of the config file in the home directory.
	UserConfigFileName = ".pofmt.yaml"
)

// Config holds format options read from config files. Nil fields are not
// set and leave the built-in defaults in place.
type Config struct {
	LineLength               *int               `yaml:"line_length,omitempty"`
	WideCharMultiplier       *float64           `yaml:"wide_char_multiplier,omitempty"`
	LocaleWideCharMultiplier map[string]float64 `yaml:"locale_wide_char_multiplier,omitempty"`
	SuppressMsgidRewrite     *bool              `yaml:"suppress_msgid_rewrite,omitempty"`
	Spacing                  *bool              `yaml:"spacing,omitempty"`
	Jobs                     *int               `yaml:"jobs,omitempty"`
}

// Validate checks the ranges of the options.
func (c *Config) Validate() error {
	if c.LineLength != nil && *c.LineLength < 3 {
		return fmt.Errorf("line_length must be at least 3, got %d", *c.LineLength)
	}
	if c.WideCharMultiplier != nil && *c.WideCharMultiplier <= 0 {
		return fmt.Errorf("wide_char_multiplier must be positive, got %v", *c.WideCharMultiplier)
	}
	for lang, m := range c.LocaleWideCharMultiplier {
		if m <= 0 {
			return fmt.Errorf("locale_wide_char_multiplier of %q must be positive, got %v", lang, m)
		}
	}
	if c.Jobs != nil && *c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", *c.Jobs)
	}
	return nil
}

// loadConfigFromFile loads configuration from a specific file path.
// Unknown keys are reported as errors.
func loadConfigFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(cfg.LocaleWideCharMultiplier) > 0 {
		locales := make(map[string]float64, len(cfg.LocaleWideCharMultiplier))
		for lang, m := range cfg.LocaleWideCharMultiplier {
			locales[strings.ToLower(lang)] = m
		}
		cfg.LocaleWideCharMultiplier = locales
	}
	return &cfg, nil
}

// mergeConfigs returns base with the fields set in override replaced.
// Locale multipliers are merged per language.
func mergeConfigs(base, override *Config) *Config {
	merged := *base
	if override.LineLength != nil {
		merged.LineLength = override.LineLength
	}
	if override.WideCharMultiplier != nil {
		merged.WideCharMultiplier = override.WideCharMultiplier
	}
	if override.SuppressMsgidRewrite != nil {
		merged.SuppressMsgidRewrite = override.SuppressMsgidRewrite
	}
	if override.Spacing != nil {
		merged.Spacing = override.Spacing
	}
	if override.Jobs != nil {
		merged.Jobs = override.Jobs
	}
	if len(override.LocaleWideCharMultiplier) > 0 {
		locales := make(map[string]float64)
		for lang, m := range base.LocaleWideCharMultiplier {
			locales[lang] = m
		}
		for lang, m := range override.LocaleWideCharMultiplier {
			locales[lang] = m
		}
		merged.LocaleWideCharMultiplier = locales
	}
	return &merged
}

// LoadConfig loads the configuration. If configFile is given, only that
// file is read. Otherwise ~/.pofmt.yaml is read first and
// <repo-root>/pofmt.yaml overrides it. Missing files are skipped.
func LoadConfig(configFile string) (*Config, error) {
	if configFile != "" {
		log.Debugf("loading config from %s", configFile)
		cfg, err := loadConfigFromFile(configFile)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configFile, err)
		}
		return cfg, nil
	}

	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, UserConfigFileName))
	}
	if repository.Opened() {
		paths = append(paths, filepath.Join(repository.WorkDir(), ConfigFileName))
	}

	cfg := &Config{}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		log.Debugf("loading config from %s", path)
		fileCfg, err := loadConfigFromFile(path)
		if err != nil {
			return nil, err
		}
		if err := fileCfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
		cfg = mergeConfigs(cfg, fileCfg)
	}
	return cfg, nil
}
