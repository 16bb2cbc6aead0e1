// Package config loads the settings of the clip command line.
//
// Settings come, by increasing precedence, from the defaults, a YAML file,
// and CLIP_* environment variables. A .env file can populate the
// environment before it is read.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/etnz/clip"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the YAML file.
const (
	EnvOwner    = "CLIP_OWNER"
	EnvCurrency = "CLIP_CURRENCY"
	EnvAverage  = "CLIP_AVERAGE"
	EnvAssist   = "CLIP_ASSIST"
	EnvLogLevel = "CLIP_LOG_LEVEL"
)

type Config struct {
	Owner    string `yaml:"owner"`
	Currency string `yaml:"currency"`  // ISO 4217 code, empty for currency-less prices
	Average  string `yaml:"average"`   // weighted or pairwise
	Assist   bool   `yaml:"assist"`    // suggest the closest command on a typo
	LogLevel string `yaml:"log_level"` // debug, info, warn or error
}

const (
	_averageDefault  = "weighted"
	_logLevelDefault = "info"
)

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Average:  _averageDefault,
		Assist:   true,
		LogLevel: _logLevelDefault,
	}
}

// Load reads the YAML file at path over the defaults, then applies the
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("cannot decode %q: %w", path, err)
		}
	}

	if err := c.Override(os.LookupEnv); err != nil {
		return nil, err
	}
	if c.Average == "" {
		c.Average = _averageDefault
	}
	if c.LogLevel == "" {
		c.LogLevel = _logLevelDefault
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// LoadDotEnv adds the variables of the .env file at path to the process
// environment, without overriding those already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Override replaces the settings whose CLIP_* variable is set according to
// lookup.
func (c *Config) Override(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvOwner); ok {
		c.Owner = v
	}
	if v, ok := lookup(EnvCurrency); ok {
		c.Currency = v
	}
	if v, ok := lookup(EnvAverage); ok {
		c.Average = v
	}
	if v, ok := lookup(EnvAssist); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvAssist, v, err)
		}
		c.Assist = b
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Currency != "" {
		if err := clip.ValidateCurrency(c.Currency); err != nil {
			return err
		}
	}
	if _, err := clip.ParseAverageMethod(c.Average); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level '%s': %w", c.LogLevel, err)
	}
	return nil
}

// Method returns the parsed average method. c must be valid.
func (c *Config) Method() clip.AverageMethod {
	m, _ := clip.ParseAverageMethod(c.Average)
	return m
}

// Level returns the parsed log level. c must be valid.
func (c *Config) Level() zapcore.Level {
	l, _ := zapcore.ParseLevel(c.LogLevel)
	return l
}
