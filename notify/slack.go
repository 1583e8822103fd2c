// Package notify carries shift events to the people who are not looking at
// the terminal: Slack channels for the managers, email for the weekly
// summaries, slog for everything else.
package notify

import (
	"fmt"

	"github.com/slack-go/slack"

	"github.com/carlsburger/gastrocore/config"
)

type Slack struct {
	client  *slack.Client
	options SlackOption
}

type SlackOption struct {
	InfoChannelID  string
	ErrorChannelID string
}

func ConnectSlack(cfg config.SlackConfig) *Slack {
	return NewSlack(cfg.BotToken, SlackOption{
		InfoChannelID:  cfg.InfoChannel,
		ErrorChannelID: cfg.ErrorChannel,
	})
}

func NewSlack(token string, options SlackOption) *Slack {
	client := slack.New(token)
	return &Slack{client: client, options: options}
}

func (s *Slack) postMessage(channelID, message string) error {
	_, _, err := s.client.PostMessage(
		channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

func (this *Slack) Info(message string) error {
	return this.postMessage(this.options.InfoChannelID, message)
}

func (this *Slack) Error(message string) error {
	return this.postMessage(this.options.ErrorChannelID, message)
}
