package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: funnel-test\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "funnel-test", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "https://www.healthquotehero.com", cfg.Server.BaseURL)
	assert.Equal(t, "stub", cfg.LeadService.Mode)
	assert.Equal(t, 30000, cfg.LeadService.Timeout)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, "lead-followup", cfg.Camunda.ProcessID)
	assert.Equal(t, "content_pages", cfg.Database.Elasticsearch.PagesIndex)
	assert.Equal(t, filepath.Join("content/data", "pages-index.json"), cfg.Content.IndexPath)
}

func TestLoadFromFile_EnvExpansionAndFallback(t *testing.T) {
	t.Setenv("HQH_TEST_SITE", "hqh_test_9")
	t.Setenv("LEAD_SERVICE_URL", "https://leads.example.test")
	t.Setenv("JORNAYA_CAMPAIGN_ID", "abc-123")

	path := writeConfig(t, `
lead_service:
  site_id: ${HQH_TEST_SITE}
  mode: live
server:
  base_url: https://example.test/
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "hqh_test_9", cfg.LeadService.SiteID)
	assert.Equal(t, "https://leads.example.test", cfg.LeadService.BaseURL)
	assert.True(t, cfg.LeadService.IsLive())
	assert.Equal(t, "abc-123", cfg.Jornaya.CampaignID)
	assert.Equal(t, "https://example.test", cfg.Server.BaseURL)
}

func TestLoadFromFile_Validation(t *testing.T) {
	t.Setenv("LEAD_SERVICE_URL", "")
	t.Setenv("REDIS_ADDRESS", "")

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"live mode without url", "lead_service:\n  mode: live\n", "lead_service.base_url"},
		{"unknown mode", "lead_service:\n  mode: carrier-pigeon\n", "lead_service.mode"},
		{"redis store without address", "session:\n  store: redis\n", "database.redis.address"},
		{"camunda without broker", "camunda:\n  enabled: true\n", "camunda.broker_address"},
		{"search without url", "database:\n  elasticsearch:\n    enabled: true\n", "elasticsearch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWorkerDefaults(t *testing.T) {
	path := writeConfig(t, `
workers:
  lead-notify:
    enabled: true
endpoints:
  lead-submit:
    enabled: true
    timeout: 5000
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	notify := GetWorkerConfig(cfg, "lead-notify")
	assert.Equal(t, 5, notify.MaxJobsActive)
	assert.Equal(t, 30000, notify.Timeout)
	assert.Equal(t, 3, notify.MaxRetries)

	submit := GetEndpointConfig(cfg, "lead-submit")
	assert.Equal(t, 5000, submit.Timeout)

	missing := GetEndpointConfig(cfg, "unknown")
	assert.True(t, missing.Enabled)
	assert.True(t, IsWorkerEnabled(cfg, "lead-journal-record"))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "hqh_com_1", cfg.LeadService.SiteID)
	assert.Equal(t, "9999", cfg.LeadService.DefaultSourceID)
	assert.Equal(t, "hqh_session", cfg.Session.CookieName)
}

func writeConfigDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", name), []byte(body), 0o644))
	}
	return dir
}

func TestLoad_EnvironmentOverlay(t *testing.T) {
	base := "lead_service:\n  mode: stub\n"

	t.Run("overlay merged", func(t *testing.T) {
		t.Chdir(writeConfigDir(t, map[string]string{
			"config.yaml":            base,
			"config.production.yaml": "lead_service:\n  mode: live\n  base_url: https://leads.example.test\n",
		}))
		t.Setenv("APP_ENVIRONMENT", "production")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.LeadService.IsLive())
		assert.Equal(t, "https://leads.example.test", cfg.LeadService.BaseURL)
	})

	t.Run("missing overlay keeps base", func(t *testing.T) {
		t.Chdir(writeConfigDir(t, map[string]string{"config.yaml": base}))
		t.Setenv("APP_ENVIRONMENT", "staging")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "stub", cfg.LeadService.Mode)
	})

	t.Run("malformed overlay fails", func(t *testing.T) {
		t.Chdir(writeConfigDir(t, map[string]string{
			"config.yaml":            base,
			"config.production.yaml": "lead_service:\n  mode: [live\n",
		}))
		t.Setenv("APP_ENVIRONMENT", "production")

		cfg, err := Load()
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "production config")
	})
}
