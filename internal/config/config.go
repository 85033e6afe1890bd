package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	Generator GeneratorConfig `yaml:"generator"`
	Notifier  NotifierConfig  `yaml:"notifier"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MetricsEnabled  bool          `yaml:"metrics_enabled"  env:"SERVER_METRICS_ENABLED"  env-default:"true"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// StatementTimeout bounds every statement server-side. Zero disables it.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"30s"`
}

// AuthConfig holds bearer token settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"coaching"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// GeneratorConfig holds settings of the Anthropic-backed generator.
// An empty APIKey disables generation; appending externally produced
// generation logs still works.
type GeneratorConfig struct {
	APIKey     string        `yaml:"api_key"     env:"GENERATOR_API_KEY"`
	Model      string        `yaml:"model"       env:"GENERATOR_MODEL"       env-default:"claude-sonnet-4-20250514"`
	MaxTokens  int           `yaml:"max_tokens"  env:"GENERATOR_MAX_TOKENS"  env-default:"2048"`
	Timeout    time.Duration `yaml:"timeout"     env:"GENERATOR_TIMEOUT"     env-default:"60s"`
	MaxRetries int           `yaml:"max_retries" env:"GENERATOR_MAX_RETRIES" env-default:"2"`
	BaseURL    string        `yaml:"base_url"    env:"GENERATOR_BASE_URL"`
}

// Enabled reports whether a generator API key is configured.
func (c GeneratorConfig) Enabled() bool { return c.APIKey != "" }

// NotifierConfig holds settings of the Redis stream notifier.
// An empty URL disables publishing.
type NotifierConfig struct {
	RedisURL string `yaml:"redis_url" env:"NOTIFIER_REDIS_URL"`
	Stream   string `yaml:"stream"    env:"NOTIFIER_STREAM"     env-default:"coaching_events"`
	MaxLen   int64  `yaml:"max_len"   env:"NOTIFIER_MAX_LEN"    env-default:"10000"`
}

// Enabled reports whether a Redis URL is configured.
func (c NotifierConfig) Enabled() bool { return c.RedisURL != "" }

// RateLimitConfig holds per-IP limits for expensive endpoints.
type RateLimitConfig struct {
	GeneratePerMinute int           `yaml:"generate_per_minute" env:"RATELIMIT_GENERATE_PER_MINUTE" env-default:"10"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATELIMIT_CLEANUP_INTERVAL"    env-default:"5m"`
}
