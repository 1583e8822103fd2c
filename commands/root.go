// Package commands wires the gastroclock CLI: timeclock actions, absence
// and reservation lookups, POS import submission and the backup workflow,
// all through the typed GastroCore client.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/carlsburger/gastrocore/config"
	v1 "github.com/carlsburger/gastrocore/gastrocore/v1"
	"github.com/carlsburger/gastrocore/notify"
	"github.com/carlsburger/gastrocore/timeclock"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "gastroclock",
	Short: "Staff timeclock and venue ops for the GastroCore backend",
	Long: `gastroclock is the terminal companion to the Carlsburg Cockpit: clock in
and out, manage breaks, check shifts and absences, push POS exports and run
backups directly against the GastroCore API.`,
	SilenceUsage: true,
}

// SetVersion sets the build information printed by the version command.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newClient loads configuration and builds the API client once per command.
func newClient() (*v1.Client, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	return v1.NewClient(cfg.BaseURL, v1.StaticToken(cfg.Token)), cfg, nil
}

// newLogger builds the CLI logger at the configured level.
func newLogger(cfg config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	}))
}

// newReporter routes action outcomes to the log and, when a bot token is
// configured, to the venue's Slack channels.
func newReporter(cfg config.Config, log *slog.Logger) timeclock.Reporter {
	base := notify.LogReporter{Log: log}
	if cfg.Slack.BotToken == "" {
		return base
	}
	return notify.Multi{base, notify.SlackReporter{Slack: notify.ConnectSlack(cfg.Slack), Log: log}}
}

func fail(err error) {
	fmt.Printf("Error: %v\n", err)
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(inCmd)
	rootCmd.AddCommand(outCmd)
	rootCmd.AddCommand(breakCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(absenceCmd)
	rootCmd.AddCommand(reservationsCmd)
	rootCmd.AddCommand(documentsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(importsCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(versionCmd)
}
