// internal/workers/lead/lead-notify/config.go

package leadnotify

import (
	"fmt"
	"time"

	"healthquote-funnel/internal/common/config"
)

type Config struct {
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`

	EmailEnabled bool     `mapstructure:"email_enabled"`
	FromEmail    string   `mapstructure:"from_email"`
	Recipients   []string `mapstructure:"recipients"`

	SMSEnabled bool   `mapstructure:"sms_enabled"`
	TopicARN   string `mapstructure:"topic_arn"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Timeout: 30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.EmailEnabled {
		if c.FromEmail == "" {
			return fmt.Errorf("from_email is required when email is enabled")
		}
		if len(c.Recipients) == 0 {
			return fmt.Errorf("at least one recipient is required when email is enabled")
		}
	}
	if c.SMSEnabled && c.TopicARN == "" {
		return fmt.Errorf("topic_arn is required when sms is enabled")
	}
	return nil
}

// ConfigFromApp combines the workers entry with the notification and AWS sections. A channel is
// on only when both the notification switch and its AWS service are enabled.
func ConfigFromApp(appConfig *config.Config) *Config {
	cfg := DefaultConfig()
	if appConfig == nil {
		return cfg
	}
	wc := config.GetWorkerConfig(appConfig, workerName)
	cfg.Enabled = wc.Enabled
	if wc.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wc.Timeout)
	}

	aws := appConfig.Integrations.AWS
	cfg.EmailEnabled = appConfig.Notifications.Email.Enabled && aws.SES.Enabled
	cfg.FromEmail = aws.SES.FromEmail
	cfg.Recipients = appConfig.Notifications.Email.Recipients
	cfg.SMSEnabled = appConfig.Notifications.SMS.Enabled && aws.SNS.Enabled
	cfg.TopicARN = aws.SNS.TopicARN
	return cfg
}
