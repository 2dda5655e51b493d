// internal/common/config/loader.go

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml over it and applies
// defaults and environment fallbacks.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// A missing overlay is fine; a broken one must not fall back to the base settings.
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	if err := v.MergeInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("error reading %s config: %w", env, err)
	}

	return finish(v)
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

// Default returns a configuration with every default applied and no file or env input.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	if cfg.LeadService.SiteID == "" {
		cfg.LeadService.SiteID = "hqh_com_1"
	}
	return cfg
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			if expanded := os.ExpandEnv(strVal); expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

func envFallback(target *string, name string) {
	if *target != "" {
		return
	}
	if val := os.Getenv(name); val != "" {
		*target = val
	}
}

// overrideEmptyConfig fills values still empty after expansion from well-known env vars.
func overrideEmptyConfig(cfg *Config) {
	envFallback(&cfg.LeadService.BaseURL, "LEAD_SERVICE_URL")
	envFallback(&cfg.LeadService.SiteID, "SITE_ID")
	envFallback(&cfg.Jornaya.CampaignID, "JORNAYA_CAMPAIGN_ID")
	envFallback(&cfg.Database.Redis.Address, "REDIS_ADDRESS")
	envFallback(&cfg.Database.Postgres.User, "DB_USER")
	envFallback(&cfg.Database.Postgres.Password, "DB_PASSWORD")
	envFallback(&cfg.Tracing.JaegerEndpoint, "JAEGER_ENDPOINT")

	// Production site id when nothing else is configured.
	if cfg.LeadService.SiteID == "" {
		cfg.LeadService.SiteID = "hqh_com_1"
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "healthquote-funnel"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30000
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "https://www.healthquotehero.com"
	}
	cfg.Server.BaseURL = strings.TrimRight(cfg.Server.BaseURL, "/")
	if cfg.Server.UploadsDir == "" {
		cfg.Server.UploadsDir = "public/uploads"
	}

	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "hqh_session"
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 86400
	}
	if cfg.Session.Store == "" {
		cfg.Session.Store = "memory"
	}

	if cfg.LeadService.Mode == "" {
		cfg.LeadService.Mode = "stub"
	}
	if cfg.LeadService.DefaultSourceID == "" {
		cfg.LeadService.DefaultSourceID = "9999"
	}
	if cfg.LeadService.Timeout == 0 {
		cfg.LeadService.Timeout = 30000
	}
	if cfg.LeadService.MaxRetries == 0 {
		cfg.LeadService.MaxRetries = 1
	}

	if cfg.Content.PagesDir == "" {
		cfg.Content.PagesDir = "content/pages"
	}
	if cfg.Content.DataDir == "" {
		cfg.Content.DataDir = "content/data"
	}
	if cfg.Content.IndexPath == "" {
		cfg.Content.IndexPath = filepath.Join(cfg.Content.DataDir, "pages-index.json")
	}

	if cfg.Camunda.ProcessID == "" {
		cfg.Camunda.ProcessID = "lead-followup"
	}
	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}
	if cfg.Database.Elasticsearch.PagesIndex == "" {
		cfg.Database.Elasticsearch.PagesIndex = "content_pages"
	}

	if cfg.Integrations.AWS.Region == "" {
		cfg.Integrations.AWS.Region = "us-east-1"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	applyWorkerDefaults(cfg.Endpoints)
	applyWorkerDefaults(cfg.Workers)
}

func applyWorkerDefaults(m map[string]WorkerConfig) {
	for key, w := range m {
		if w.MaxJobsActive == 0 {
			w.MaxJobsActive = 5
		}
		if w.Timeout == 0 {
			w.Timeout = 30000
		}
		if w.MaxRetries == 0 {
			w.MaxRetries = 3
		}
		m[key] = w
	}
}

// validateConfig only checks what the selected backends need.
func validateConfig(cfg *Config) error {
	switch cfg.LeadService.Mode {
	case "stub":
	case "live":
		if cfg.LeadService.BaseURL == "" {
			return fmt.Errorf("lead_service.base_url is required in live mode")
		}
	default:
		return fmt.Errorf("lead_service.mode must be stub or live, got %q", cfg.LeadService.Mode)
	}

	switch cfg.Session.Store {
	case "memory":
	case "redis":
		if cfg.Database.Redis.Address == "" {
			return fmt.Errorf("database.redis.address is required for the redis session store")
		}
	default:
		return fmt.Errorf("session.store must be redis or memory, got %q", cfg.Session.Store)
	}

	if cfg.Camunda.Enabled && cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required when camunda is enabled")
	}

	if cfg.Database.Elasticsearch.Enabled && cfg.Database.Elasticsearch.GetURL() == "" {
		return fmt.Errorf("database.elasticsearch.addresses or url is required when search is enabled")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig retrieves lead job worker configuration with fallback to defaults
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	return lookupWorker(cfg.Workers, workerName)
}

// GetEndpointConfig retrieves API endpoint configuration with fallback to defaults
func GetEndpointConfig(cfg *Config, endpointName string) WorkerConfig {
	return lookupWorker(cfg.Endpoints, endpointName)
}

func lookupWorker(m map[string]WorkerConfig, name string) WorkerConfig {
	if w, exists := m[name]; exists {
		return w
	}
	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30000,
		MaxRetries:    3,
	}
}

// IsWorkerEnabled checks if a specific lead job worker is enabled
func IsWorkerEnabled(cfg *Config, workerName string) bool {
	if w, exists := cfg.Workers[workerName]; exists {
		return w.Enabled
	}
	return true
}
