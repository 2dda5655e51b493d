// internal/endpoints/lead/lead-submit/config.go

package leadsubmit

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled         bool          `mapstructure:"enabled"`
	Timeout         time.Duration `mapstructure:"timeout"`
	DefaultSourceID int           `mapstructure:"default_source_id"`
	ProcessID       string        `mapstructure:"process_id"`
	StartFollowup   bool          `mapstructure:"start_followup"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Timeout:         30 * time.Second,
		DefaultSourceID: 9999,
		ProcessID:       "lead-followup",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.DefaultSourceID <= 0 {
		return fmt.Errorf("default_source_id must be positive")
	}
	if c.StartFollowup && c.ProcessID == "" {
		return fmt.Errorf("process_id is required when start_followup is set")
	}
	return nil
}
