package notify

import (
	"log/slog"

	"github.com/carlsburger/gastrocore/timeclock"
)

var (
	_ timeclock.Reporter = LogReporter{}
	_ timeclock.Reporter = SlackReporter{}
	_ timeclock.Reporter = Multi{}
)

// LogReporter writes action outcomes to the structured log. Headless
// commands use it as their only reporter.
type LogReporter struct {
	Log *slog.Logger
}

func (r LogReporter) logger() *slog.Logger {
	if r.Log == nil {
		return slog.Default()
	}
	return r.Log
}

func (r LogReporter) Info(msg string)  { r.logger().Info(msg) }
func (r LogReporter) Error(msg string) { r.logger().Error(msg) }

// SlackReporter mirrors outcomes into the venue's Slack channels. Posting
// is best-effort; a failed post only makes the log.
type SlackReporter struct {
	Slack *Slack
	Log   *slog.Logger
}

func (r SlackReporter) logger() *slog.Logger {
	if r.Log == nil {
		return slog.Default()
	}
	return r.Log
}

func (r SlackReporter) Info(msg string) {
	if err := r.Slack.Info(msg); err != nil {
		r.logger().Warn("slack info post failed", "error", err)
	}
}

func (r SlackReporter) Error(msg string) {
	if err := r.Slack.Error(msg); err != nil {
		r.logger().Warn("slack error post failed", "error", err)
	}
}

// Multi fans each outcome out to every reporter in order.
type Multi []timeclock.Reporter

func (m Multi) Info(msg string) {
	for _, r := range m {
		r.Info(msg)
	}
}

func (m Multi) Error(msg string) {
	for _, r := range m {
		r.Error(msg)
	}
}
