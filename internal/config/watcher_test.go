package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCfg(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watcher.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWatcherConfigDefaults(t *testing.T) {
	cfg, err := LoadWatcherConfig(writeCfg(t, `
api:
  url: "https://api.example.com/positions"
watch:
  model_prefixes: [deepseek, qwen]
`))
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3, cfg.API.RetryAttempts)
	assert.Equal(t, 10*time.Second, cfg.API.RetryWait)
	assert.Equal(t, 30*time.Second, cfg.Watch.PollInterval)
	assert.Equal(t, 2*time.Minute, cfg.Watch.ErrorRetryInterval)
	assert.Equal(t, File, cfg.Store.Backend)
	assert.Equal(t, "seen_positions.json", cfg.Store.Path)
	assert.Equal(t, Log, cfg.Notify.Kind)
	assert.Empty(t, cfg.Server.Port)
}

func TestLoadWatcherConfigExplicit(t *testing.T) {
	cfg, err := LoadWatcherConfig(writeCfg(t, `
api:
  url: "https://api.example.com/positions"
  timeout: 5s
  retry_attempts: 2
  retry_wait: 1s
watch:
  model_prefixes: [deepseek]
  poll_interval: 1m
  error_retry_interval: 5m
store:
  backend: file
  path: /var/lib/watcher/seen.json
server:
  port: "8080"
`))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2, cfg.API.RetryAttempts)
	assert.Equal(t, time.Minute, cfg.Watch.PollInterval)
	assert.Equal(t, 5*time.Minute, cfg.Watch.ErrorRetryInterval)
	assert.Equal(t, "/var/lib/watcher/seen.json", cfg.Store.Path)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadWatcherConfigMissingURL(t *testing.T) {
	_, err := LoadWatcherConfig(writeCfg(t, `
watch:
  model_prefixes: [deepseek]
`))
	assert.Error(t, err)
}

func TestLoadWatcherConfigEmptyPrefixes(t *testing.T) {
	_, err := LoadWatcherConfig(writeCfg(t, `
api:
  url: "https://api.example.com/positions"
`))
	assert.Error(t, err)
}

func TestLoadWatcherConfigUnknownBackend(t *testing.T) {
	_, err := LoadWatcherConfig(writeCfg(t, `
api:
  url: "https://api.example.com/positions"
watch:
  model_prefixes: [deepseek]
store:
  backend: redis
`))
	assert.Error(t, err)
}

func TestNotifyConfigDiscordNeedsWebhook(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "")

	cfg := NotifyConfig{Kind: Discord}
	assert.Error(t, cfg.Setup())

	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/1/x")
	cfg = NotifyConfig{Kind: Discord}
	require.NoError(t, cfg.Setup())
	assert.Equal(t, "https://discord.com/api/webhooks/1/x", cfg.WebhookURL)
}
