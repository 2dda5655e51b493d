// internal/endpoints/lead/offers-fetch/config.go

package offersfetch

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled   bool          `mapstructure:"enabled"`
	Timeout   time.Duration `mapstructure:"timeout"`
	MaxOffers int           `mapstructure:"max_offers"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:   true,
		Timeout:   30 * time.Second,
		MaxOffers: 10,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxOffers <= 0 {
		return fmt.Errorf("max_offers must be positive")
	}
	return nil
}
