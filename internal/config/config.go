package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Env            string   `mapstructure:"ENV"`
	CORSOrigins    []string `mapstructure:"CORS_ORIGINS"`
	SourceURL      string   `mapstructure:"SOURCE_URL"`
	SourceLimit    int      `mapstructure:"SOURCE_LIMIT"`
	RateLimitRPS   float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int      `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SOURCE_URL", "https://dummyjson.com")
	v.SetDefault("SOURCE_LIMIT", 30)
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("SOURCE_URL")
	v.BindEnv("SOURCE_LIMIT")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.SourceURL == "" {
		return nil, fmt.Errorf("SOURCE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. The upstream source
// caps list responses at 100 records, so SOURCE_LIMIT is bounded accordingly.
func (c *Config) Validate() error {
	if c.SourceLimit <= 0 {
		return fmt.Errorf("SOURCE_LIMIT must be positive, got %d", c.SourceLimit)
	}
	if c.SourceLimit > 100 {
		return fmt.Errorf("SOURCE_LIMIT must not exceed 100, got %d", c.SourceLimit)
	}
	if !strings.HasPrefix(c.SourceURL, "http://") && !strings.HasPrefix(c.SourceURL, "https://") {
		return fmt.Errorf("SOURCE_URL must be an http(s) URL, got %q", c.SourceURL)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %g", c.RateLimitRPS)
	}
	return nil
}
