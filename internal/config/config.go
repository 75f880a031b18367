package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/spigell/hh-gateway/internal/secrets"
)

const (
	defaultPort          = 8080
	defaultJWTTTLHours   = 7 * 24
	defaultWarmerWorkers = 2
	defaultWarmerQueue   = 32
)

// Config is the full gateway configuration, unmarshalled from viper
// (yaml file + environment bindings set up in cmd).
type Config struct {
	Port           int    `mapstructure:"port"`
	FrontendOrigin string `mapstructure:"frontend-origin"`
	RedisURL       string `mapstructure:"redis-url"`
	DatabaseURL    string `mapstructure:"database-url"`

	HH     *HHConfig     `mapstructure:"hh"`
	JWT    *JWTConfig    `mapstructure:"jwt"`
	AI     *AIConfig     `mapstructure:"ai"`
	Warmer *WarmerConfig `mapstructure:"warmer"`
}

type HHConfig struct {
	ClientID         string `mapstructure:"client-id"`
	ClientSecret     string `mapstructure:"client-secret"`
	ClientSecretFile string `mapstructure:"client-secret-file"`
	RedirectURI      string `mapstructure:"redirect-uri"`
	UserAgent        string `mapstructure:"user-agent"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	SecretFile string `mapstructure:"secret-file"`
	TTLHours   int    `mapstructure:"ttl-hours"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type WarmerConfig struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queue-size"`
}

// Load unmarshals the gateway config from the provided viper instance and
// fills in defaults for everything optional.
func Load(v *viper.Viper) (*Config, error) {
	var cfg *Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg == nil {
		cfg = &Config{}
	}

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.JWT == nil {
		cfg.JWT = &JWTConfig{}
	}
	if cfg.JWT.TTLHours <= 0 {
		cfg.JWT.TTLHours = defaultJWTTTLHours
	}
	if cfg.Warmer == nil {
		cfg.Warmer = &WarmerConfig{}
	}
	if cfg.Warmer.Workers <= 0 {
		cfg.Warmer.Workers = defaultWarmerWorkers
	}
	if cfg.Warmer.QueueSize <= 0 {
		cfg.Warmer.QueueSize = defaultWarmerQueue
	}

	return cfg, nil
}

// Validate checks that everything required to start the server is present.
// Secret material is only checked for being configured, not resolved here.
func (c *Config) Validate() error {
	if c.RedisURL == "" {
		return fmt.Errorf("redis-url is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("database-url is required")
	}
	if c.HH == nil || c.HH.ClientID == "" {
		return fmt.Errorf("hh.client-id is required")
	}
	if c.HH.ClientSecret == "" && c.HH.ClientSecretFile == "" {
		return fmt.Errorf("hh.client-secret or hh.client-secret-file is required")
	}
	if c.HH.RedirectURI == "" {
		return fmt.Errorf("hh.redirect-uri is required")
	}
	if c.JWT.Secret == "" && c.JWT.SecretFile == "" {
		return fmt.Errorf("jwt.secret or jwt.secret-file is required")
	}
	if c.AI != nil && c.AI.Enabled {
		if c.AI.Gemini == nil || (c.AI.Gemini.APIKey == "" && c.AI.Gemini.APIKeyFile == "") {
			return fmt.Errorf("ai.gemini.api-key or ai.gemini.api-key-file is required when ai is enabled")
		}
	}

	return nil
}

// JWTTTL returns the configured gateway token lifetime.
func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWT.TTLHours) * time.Hour
}

// ResolveJWTSecret loads the JWT signing secret, preferring the file source.
func (c *Config) ResolveJWTSecret() (string, error) {
	return secrets.Load(secrets.Source{
		Name:  "jwt secret",
		Value: c.JWT.Secret,
		File:  c.JWT.SecretFile,
	})
}

// ResolveClientSecret loads the hh.ru OAuth client secret.
func (h *HHConfig) ResolveClientSecret() (string, error) {
	return secrets.Load(secrets.Source{
		Name:  "headhunter client secret",
		Value: h.ClientSecret,
		File:  h.ClientSecretFile,
	})
}

// ResolveAPIKey loads the Gemini API key.
func (g *GeminiConfig) ResolveAPIKey() (string, error) {
	return secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: g.APIKey,
		File:  g.APIKeyFile,
	})
}
