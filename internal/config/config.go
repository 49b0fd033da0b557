package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// Config is the trust configuration: which issuers are trusted and which
// audiences are accepted.
type Config struct {
	Issuers   []IssuerConfig `yaml:"issuers"`
	Audiences []string       `yaml:"audiences"`

	// Leeway is the tolerated clock skew for "exp" and "nbf".
	// Zero (the default) means no tolerance.
	Leeway time.Duration `yaml:"leeway"`
}

// IssuerConfig holds configuration for a trusted voucher issuer.
type IssuerConfig struct {
	// ID is the "iss" value vouchers of this issuer carry.
	ID     string         `yaml:"id"`
	Type   string         `yaml:"type"` // e.g., "ec_pem"
	Config map[string]any `yaml:"-"`    // remaining, type specific fields
}

// UnmarshalYAML captures every field besides id and type into Config.
func (i *IssuerConfig) UnmarshalYAML(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, _ := raw["id"].(string)
	typ, _ := raw["type"].(string)
	delete(raw, "id")
	delete(raw, "type")
	*i = IssuerConfig{
		ID:     id,
		Type:   typ,
		Config: raw,
	}
	return nil
}

// Load reads and parses the configuration file at the given path.
// It returns a Config struct or an error if loading/parsing/validation fails.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates a YAML trust configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	seen := make(map[string]struct{})
	for idx, i := range c.Issuers {
		if i.ID == "" {
			return fmt.Errorf("issuer at index %d has empty id", idx)
		}
		if _, dup := seen[i.ID]; dup {
			return fmt.Errorf("issuer %q is defined more than once", i.ID)
		}
		seen[i.ID] = struct{}{}
		if i.Type == "" {
			return fmt.Errorf("issuer %q has empty type", i.ID)
		}
	}
	if len(c.Issuers) == 0 {
		return fmt.Errorf("no issuers configured")
	}

	if len(c.Audiences) == 0 {
		return fmt.Errorf("no audiences configured")
	}
	for idx, aud := range c.Audiences {
		if aud == "" {
			return fmt.Errorf("audience at index %d is empty", idx)
		}
	}

	if c.Leeway < 0 {
		return fmt.Errorf("leeway must not be negative")
	}
	return nil
}
