package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Admin    AdminConfig
	Terminal TerminalConfig
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port      string
	Templates string
	Static    string
	Images    string
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path             string
	VisitorRetention time.Duration `mapstructure:"visitor_retention"`
}

// AdminConfig holds the dashboard credentials.
type AdminConfig struct {
	Username string
	Password string
}

// TerminalConfig tunes the terminal demo.
type TerminalConfig struct {
	Tick       time.Duration
	Gap        time.Duration
	MaxStreams int      `mapstructure:"max_streams"`
	Seed       int64    // 0 seeds from the clock
	RewardURLs []string `mapstructure:"reward_urls"` // empty keeps the built-in pool
}

// Load reads configuration from file and env. Env var overrides use prefix PORTFOLIO_.
// PORT, ADMIN_USERNAME and ADMIN_PASSWORD are honored as well.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.templates", "templates/*")
	v.SetDefault("server.static", "./static")
	v.SetDefault("server.images", "./images")
	v.SetDefault("database.path", filepath.Join("data", "portfolio.db"))
	v.SetDefault("database.visitor_retention", 365*24*time.Hour)
	v.SetDefault("admin.username", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("terminal.tick", 50*time.Millisecond)
	v.SetDefault("terminal.gap", 500*time.Millisecond)
	v.SetDefault("terminal.max_streams", 64)
	v.SetDefault("terminal.seed", 0)
	v.SetDefault("terminal.reward_urls", []string{})

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PORTFOLIO_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "portfolio"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PORTFOLIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// names the site has always been deployed with
	_ = v.BindEnv("server.port", "PORTFOLIO_SERVER_PORT", "PORT")
	_ = v.BindEnv("admin.username", "PORTFOLIO_ADMIN_USERNAME", "ADMIN_USERNAME")
	_ = v.BindEnv("admin.password", "PORTFOLIO_ADMIN_PASSWORD", "ADMIN_PASSWORD")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the terminal demo cannot run with
func (c Config) Validate() error {
	if c.Terminal.Tick <= 0 {
		return fmt.Errorf("config: terminal.tick must be positive, got %v", c.Terminal.Tick)
	}
	if c.Terminal.Gap < 0 {
		return fmt.Errorf("config: terminal.gap must not be negative, got %v", c.Terminal.Gap)
	}
	if c.Terminal.MaxStreams < 1 {
		return fmt.Errorf("config: terminal.max_streams must be at least 1, got %d", c.Terminal.MaxStreams)
	}
	return nil
}
