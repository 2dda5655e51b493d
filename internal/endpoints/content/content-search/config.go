// internal/endpoints/content/content-search/config.go

package contentsearch

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled        bool          `mapstructure:"enabled"`
	Timeout        time.Duration `mapstructure:"timeout"`
	DefaultSize    int           `mapstructure:"default_size"`
	MinQueryLength int           `mapstructure:"min_query_length"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:        true,
		Timeout:        5 * time.Second,
		DefaultSize:    10,
		MinQueryLength: 2,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.DefaultSize <= 0 {
		return fmt.Errorf("default_size must be positive")
	}
	if c.MinQueryLength < 0 {
		return fmt.Errorf("min_query_length must not be negative")
	}
	return nil
}
