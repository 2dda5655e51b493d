// internal/endpoints/lead/arrival-create/config.go

package arrivalcreate

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled         bool          `mapstructure:"enabled"`
	Timeout         time.Duration `mapstructure:"timeout"`
	SiteID          string        `mapstructure:"site_id"`
	DefaultSourceID string        `mapstructure:"default_source_id"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Timeout:         30 * time.Second,
		SiteID:          "hqh_com_1",
		DefaultSourceID: "9999",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.SiteID == "" {
		return fmt.Errorf("site_id is required")
	}
	if c.DefaultSourceID == "" {
		return fmt.Errorf("default_source_id is required")
	}
	return nil
}
