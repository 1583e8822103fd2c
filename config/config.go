// Package config assembles runtime configuration for the timeclock client,
// the dev server and the import tooling. Values resolve in order: built-in
// defaults, an optional YAML file named by GASTROCORE_CONFIG, a .env file,
// then plain environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token"`
	SigningSecret  string `yaml:"signing_secret"`
	PollSeconds    int    `yaml:"poll_seconds"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	LogLevel       string `yaml:"log_level"`

	Slack  SlackConfig  `yaml:"slack"`
	Email  EmailConfig  `yaml:"email"`
	Backup BackupConfig `yaml:"backup"`
	Server ServerConfig `yaml:"server"`
}

type SlackConfig struct {
	BotToken     string `yaml:"bot_token"`
	InfoChannel  string `yaml:"info_channel"`
	ErrorChannel string `yaml:"error_channel"`
}

type EmailConfig struct {
	Sender     string   `yaml:"sender"`
	Recipients []string `yaml:"recipients"`
}

type BackupConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	DSN  string `yaml:"dsn"`
}

func (c Config) PollEvery() time.Duration {
	return time.Duration(c.PollSeconds) * time.Second
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		PollSeconds:    30,
		TimeoutSeconds: 10,
		LogLevel:       "info",
		Server: ServerConfig{
			Addr: ":8080",
		},
	}

	if path := os.Getenv("GASTROCORE_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.BaseURL = getEnv("GASTROCORE_URL", cfg.BaseURL)
	cfg.Token = getEnv("GASTROCORE_TOKEN", cfg.Token)
	cfg.SigningSecret = getEnv("GASTROCORE_SIGNING_SECRET", cfg.SigningSecret)
	cfg.PollSeconds = getEnvInt("GASTROCORE_POLL_SECONDS", cfg.PollSeconds)
	cfg.TimeoutSeconds = getEnvInt("GASTROCORE_TIMEOUT_SECONDS", cfg.TimeoutSeconds)
	cfg.LogLevel = getEnv("GASTROCORE_LOG_LEVEL", cfg.LogLevel)

	cfg.Slack.BotToken = getEnv("SLACK_BOT_TOKEN", cfg.Slack.BotToken)
	cfg.Slack.InfoChannel = getEnv("SLACK_INFO_CHANNEL", cfg.Slack.InfoChannel)
	cfg.Slack.ErrorChannel = getEnv("SLACK_ERROR_CHANNEL", cfg.Slack.ErrorChannel)

	cfg.Email.Sender = getEnv("EMAIL_SENDER", cfg.Email.Sender)
	if v := os.Getenv("EMAIL_RECIPIENTS"); v != "" {
		cfg.Email.Recipients = splitList(v)
	}

	cfg.Backup.Bucket = getEnv("BACKUP_BUCKET", cfg.Backup.Bucket)
	cfg.Backup.Prefix = getEnv("BACKUP_PREFIX", cfg.Backup.Prefix)

	cfg.Server.Addr = getEnv("GASTROCORE_ADDR", cfg.Server.Addr)
	cfg.Server.DSN = getEnv("DSN", cfg.Server.DSN)

	missing := []string{}
	if cfg.BaseURL == "" {
		missing = append(missing, "GASTROCORE_URL")
	}
	if len(missing) > 0 {
		return cfg, errors.New("missing env: " + strings.Join(missing, ", "))
	}

	return cfg, nil
}

// LoadServer is Load without the client-side requirements. The dev server
// serves the API itself and needs no base URL.
func LoadServer() (Config, error) {
	cfg, err := Load()
	if err != nil && strings.Contains(err.Error(), "GASTROCORE_URL") {
		return cfg, nil
	}
	return cfg, err
}

func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
