package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if err := c.Dictionary.validate(); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}

	if err := validateHTTPURL(c.Anki.URL); err != nil {
		return fmt.Errorf("anki.url: %w", err)
	}
	if strings.TrimSpace(c.Anki.ModelName) == "" {
		return fmt.Errorf("anki.model_name is required")
	}

	if strings.TrimSpace(c.Prefs.Path) == "" {
		return fmt.Errorf("prefs.path is required")
	}

	return nil
}

func (l LogConfig) validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
	return nil
}

func (d DictionaryConfig) validate() error {
	if err := validateHTTPURL(d.BaseURL); err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if d.Client == "" || d.Key == "" || d.Secret == "" {
		return fmt.Errorf("client, key and secret are required")
	}
	if d.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be > 0 (got %d)", d.MaxConcurrent)
	}
	if d.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be >= 0 (got %d)", d.RateLimit)
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be an absolute http(s) URL (got %q)", raw)
	}
	return nil
}
