package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535 (got %d)", c.Server.Port)
	}

	if c.Database.StatementTimeout < 0 {
		return fmt.Errorf("database.statement_timeout must not be negative")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if err := c.Generator.validate(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	if err := c.Notifier.validate(); err != nil {
		return fmt.Errorf("notifier: %w", err)
	}

	if c.RateLimit.GeneratePerMinute <= 0 {
		return fmt.Errorf("ratelimit.generate_per_minute must be > 0 (got %d)", c.RateLimit.GeneratePerMinute)
	}

	return nil
}

func (g *GeneratorConfig) validate() error {
	if !g.Enabled() {
		return nil
	}
	if strings.TrimSpace(g.Model) == "" {
		return fmt.Errorf("model is required when api_key is set")
	}
	if g.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", g.MaxTokens)
	}
	if g.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0 (got %d)", g.MaxRetries)
	}
	return nil
}

func (n *NotifierConfig) validate() error {
	if !n.Enabled() {
		return nil
	}
	if strings.TrimSpace(n.Stream) == "" {
		return fmt.Errorf("stream is required when redis_url is set")
	}
	if n.MaxLen < 0 {
		return fmt.Errorf("max_len must be >= 0 (got %d)", n.MaxLen)
	}
	return nil
}
