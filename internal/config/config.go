package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/scicomp/merscope-transfer/internal/utils"
)

// DefaultConfigFilename is read from the working directory when --config is not given.
const DefaultConfigFilename = "config.json"

// MinimumAge is how old the MERLIN_FINISHED sentinel must be before an
// experiment is considered settled. It is a fixed policy, not a setting.
const MinimumAge = 5 * time.Minute

// ErrMissingKey is returned when a required configuration key is empty.
var ErrMissingKey = errors.New("missing required configuration key")

// Config holds the transfer configuration. The file is JSON; yaml.v3 reads it as-is.
type Config struct {
	Source     string   `yaml:"source"`      // Local acquisition root
	Target     string   `yaml:"target"`      // Central storage root
	Secondary  string   `yaml:"secondary"`   // Root holding the secondary copy of each experiment
	Sender     string   `yaml:"sender"`      // From address of the summary mail
	Receivers  []string `yaml:"receivers"`   // Recipients of the summary mail
	MailServer string   `yaml:"mail_server"` // SMTP relay, host or host:port
	MinimumAge int      `yaml:"minimum_age"` // Seconds; read but never applied
	Exclude    []string `yaml:"exclude"`     // Glob patterns of experiment names to leave alone
}

// LoadConfig reads and validates the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.Source = utils.ExpandTilde(cfg.Source)
	cfg.Target = utils.ExpandTilde(cfg.Target)
	cfg.Secondary = utils.ExpandTilde(cfg.Secondary)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every required key carries a value.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"source", c.Source},
		{"target", c.Target},
		{"secondary", c.Secondary},
		{"sender", c.Sender},
		{"mail_server", c.MailServer},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingKey, r.key)
		}
	}
	if len(c.Receivers) == 0 {
		return fmt.Errorf("%w: receivers", ErrMissingKey)
	}
	return nil
}

// IgnoredMinimumAge reports whether the file set a minimum_age other than the
// fixed MinimumAge, so the caller can warn that it has no effect.
func (c *Config) IgnoredMinimumAge() bool {
	return c.MinimumAge != 0 && time.Duration(c.MinimumAge)*time.Second != MinimumAge
}
