package config

import (
	"context"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Secrets holds values that live in SSM rather than in the environment.
// Lambdas and cron jobs read them from the "gastrocore" parameter.
type Secrets struct {
	Token         string `yaml:"token"`
	SigningSecret string `yaml:"signing_secret"`
	SlackBotToken string `yaml:"slack_bot_token"`
}

var (
	once    sync.Once
	secrets Secrets
	loadErr error
)

func LoadSecrets(ctx context.Context) (Secrets, error) {
	once.Do(func() {
		paramName := "gastrocore"

		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(paramName),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}

		var parsed Secrets
		if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}

		secrets = parsed
	})

	return secrets, loadErr
}

// ApplySecrets fills config fields that the environment left empty.
func (c *Config) ApplySecrets(s Secrets) {
	if c.Token == "" {
		c.Token = s.Token
	}
	if c.SigningSecret == "" {
		c.SigningSecret = s.SigningSecret
	}
	if c.Slack.BotToken == "" {
		c.Slack.BotToken = s.SlackBotToken
	}
}
