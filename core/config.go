package core

import (
	"fmt"
	"net/url"
	"strings"
)

const defaultListLimit = 10

type Config struct {
	ServiceName string `koanf:"service_name" mapstructure:"service_name"`
	// BaseURL is the externally resolvable origin public credential URIs
	// are built on, typically provided through the environment.
	BaseURL   string `koanf:"base_url" mapstructure:"base_url"`
	AwardPath string `koanf:"award_path" mapstructure:"award_path"`
	ListLimit int    `koanf:"list_limit" mapstructure:"list_limit"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "awards",
		AwardPath:   "awards",
		ListLimit:   defaultListLimit,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		return fmt.Errorf("core: base_url is required")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("core: base_url is not a valid URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("core: base_url must be an absolute URL, got %q", base)
	}
	if c.ListLimit < 0 {
		return fmt.Errorf("core: list_limit must not be negative")
	}
	return nil
}

// PublicAwardURL builds the canonical credential URI, collapsing any
// trailing slash on the configured base before concatenation.
func (c Config) PublicAwardURL(docID string) string {
	base := strings.TrimSuffix(strings.TrimSpace(c.BaseURL), "/")
	path := strings.Trim(strings.TrimSpace(c.AwardPath), "/")
	if path == "" {
		path = DefaultConfig().AwardPath
	}
	return base + "/" + path + "/" + strings.TrimSpace(docID)
}

func (c Config) listLimit() int {
	if c.ListLimit <= 0 {
		return defaultListLimit
	}
	return c.ListLimit
}
