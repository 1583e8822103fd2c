package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GASTROCORE_CONFIG", "")
	t.Setenv("GASTROCORE_URL", "https://api.example.test")
	t.Setenv("GASTROCORE_POLL_SECONDS", "")
	t.Setenv("GASTROCORE_TIMEOUT_SECONDS", "")
	t.Setenv("GASTROCORE_LOG_LEVEL", "")
	t.Setenv("GASTROCORE_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.test", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.PollEvery())
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadRequiresBaseURL(t *testing.T) {
	t.Setenv("GASTROCORE_CONFIG", "")
	t.Setenv("GASTROCORE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GASTROCORE_URL")
}

func TestLoadServerToleratesMissingBaseURL(t *testing.T) {
	t.Setenv("GASTROCORE_CONFIG", "")
	t.Setenv("GASTROCORE_URL", "")
	t.Setenv("GASTROCORE_ADDR", ":9090")

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Empty(t, cfg.BaseURL)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	yaml := `base_url: https://yaml.example.test
token: yaml-token
poll_seconds: 5
slack:
  bot_token: xoxb-test
  info_channel: "#kitchen"
backup:
  bucket: gastro-backups
  prefix: nightly
`
	path := filepath.Join(t.TempDir(), "gastrocore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("GASTROCORE_CONFIG", path)
	t.Setenv("GASTROCORE_URL", "")
	t.Setenv("GASTROCORE_TOKEN", "")
	t.Setenv("GASTROCORE_POLL_SECONDS", "")
	t.Setenv("SLACK_BOT_TOKEN", "")
	t.Setenv("SLACK_INFO_CHANNEL", "")
	t.Setenv("BACKUP_BUCKET", "")
	t.Setenv("BACKUP_PREFIX", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://yaml.example.test", cfg.BaseURL)
	assert.Equal(t, "yaml-token", cfg.Token)
	assert.Equal(t, 5*time.Second, cfg.PollEvery())
	assert.Equal(t, "xoxb-test", cfg.Slack.BotToken)
	assert.Equal(t, "#kitchen", cfg.Slack.InfoChannel)
	assert.Equal(t, "gastro-backups", cfg.Backup.Bucket)
	assert.Equal(t, "nightly", cfg.Backup.Prefix)
}

func TestEnvOverridesYAML(t *testing.T) {
	yaml := "base_url: https://yaml.example.test\ntoken: yaml-token\n"
	path := filepath.Join(t.TempDir(), "gastrocore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("GASTROCORE_CONFIG", path)
	t.Setenv("GASTROCORE_URL", "https://env.example.test")
	t.Setenv("GASTROCORE_TOKEN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.test", cfg.BaseURL)
	assert.Equal(t, "yaml-token", cfg.Token)
}

func TestEmailRecipientsSplit(t *testing.T) {
	t.Setenv("GASTROCORE_CONFIG", "")
	t.Setenv("GASTROCORE_URL", "https://api.example.test")
	t.Setenv("EMAIL_RECIPIENTS", "ops@example.test, chef@example.test ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"ops@example.test", "chef@example.test"}, cfg.Email.Recipients)
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLevel(in), "level %q", in)
	}
}
