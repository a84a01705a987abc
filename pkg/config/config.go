// Package config loads Google Ads API credentials.
// Values are read from a google-ads.yaml file and may be overridden by
// GOOGLE_ADS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned by Load when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// placeholderPrefix marks values of the sample configuration that were never filled in.
const placeholderPrefix = "INSERT_"

// Config holds the credentials of one Google Ads API client.
type Config struct {
	// API access
	DeveloperToken string `yaml:"developer_token" env:"GOOGLE_ADS_DEVELOPER_TOKEN"`

	// OAuth2 client and the long-lived refresh token it was issued
	ClientID     string `yaml:"client_id" env:"GOOGLE_ADS_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"GOOGLE_ADS_CLIENT_SECRET"`
	RefreshToken string `yaml:"refresh_token" env:"GOOGLE_ADS_REFRESH_TOKEN"`

	// Manager account the requests are made through, hyphens allowed
	LoginCustomerID string `yaml:"login_customer_id" env:"GOOGLE_ADS_LOGIN_CUSTOMER_ID"`

	// Optional overrides of the client defaults
	APIVersion string `yaml:"api_version" env:"GOOGLE_ADS_API_VERSION"`
	Endpoint   string `yaml:"endpoint" env:"GOOGLE_ADS_ENDPOINT"`
}

// Load reads the YAML file at path and applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}

// Validate checks that every credential needed to query the API is present.
func (c *Config) Validate() error {
	return checkRequired(map[string]string{
		"developer_token": c.DeveloperToken,
		"client_id":       c.ClientID,
		"client_secret":   c.ClientSecret,
		"refresh_token":   c.RefreshToken,
	}, "developer_token", "client_id", "client_secret", "refresh_token")
}

// ValidateClient checks only the OAuth2 client credentials, which is all
// that generating a refresh token needs.
func (c *Config) ValidateClient() error {
	return checkRequired(map[string]string{
		"client_id":     c.ClientID,
		"client_secret": c.ClientSecret,
	}, "client_id", "client_secret")
}

// HasLoginCustomerID reports whether a usable login_customer_id is set.
func (c *Config) HasLoginCustomerID() bool {
	return isSet(c.LoginCustomerID)
}

func checkRequired(values map[string]string, order ...string) error {
	var missing []string
	for _, key := range order {
		if !isSet(values[key]) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing or placeholder config values: %s", strings.Join(missing, ", "))
	}
	return nil
}

func isSet(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.HasPrefix(v, placeholderPrefix)
}
