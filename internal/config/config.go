// Package config loads FortiView configuration from a YAML file with
// FORTIVIEW_* environment overrides and baked-in defaults. Values that
// operators change at runtime (retention window, firewall credentials,
// dashboard login) are seeded from here into the settings store on first
// boot and read from there afterwards.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config wraps a viper instance with the accessors the rest of the
// codebase uses.
type Config struct {
	v *viper.Viper
}

// New wraps an existing viper instance. Used by tests and Sub.
func New(v *viper.Viper) *Config {
	return &Config{v: v}
}

// Load reads configuration from the given path (optional) plus
// environment variables, applying defaults for anything unset.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("db.path", "fortiview.db")
	v.SetDefault("fortigate.host", "172.31.254.1")
	v.SetDefault("fortigate.token", "")
	v.SetDefault("retention_hours", "2")
	v.SetDefault("auth.username", "admin")
	v.SetDefault("auth.password", "admin")
	v.SetDefault("auth.token_ttl", "12h")
	v.SetDefault("auth.jwt_secret", "")

	v.SetEnvPrefix("FORTIVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	return &Config{v: v}, nil
}

// GetString returns the string value for key.
func (c *Config) GetString(key string) string { return c.v.GetString(key) }

// GetInt returns the int value for key.
func (c *Config) GetInt(key string) int { return c.v.GetInt(key) }

// GetBool returns the bool value for key.
func (c *Config) GetBool(key string) bool { return c.v.GetBool(key) }

// GetDuration returns the duration value for key.
func (c *Config) GetDuration(key string) time.Duration { return c.v.GetDuration(key) }

// IsSet reports whether key has a value.
func (c *Config) IsSet(key string) bool { return c.v.IsSet(key) }

// Sub returns the subtree rooted at key, or nil if it does not exist.
func (c *Config) Sub(key string) *Config {
	sub := c.v.Sub(key)
	if sub == nil {
		return nil
	}
	return New(sub)
}
