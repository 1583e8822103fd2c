// Lambda entry point for POS export ingestion: the POS vendor drops export
// files into an S3 bucket, the bucket notification invokes this handler,
// and every file is parsed and submitted to the import endpoint. Set
// LOCAL_FILE to run the same pipeline against a file on disk instead.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path/filepath"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/carlsburger/gastrocore/config"
	v1 "github.com/carlsburger/gastrocore/gastrocore/v1"
	"github.com/carlsburger/gastrocore/notify"
	"github.com/carlsburger/gastrocore/posimport"
	"github.com/carlsburger/gastrocore/timeclock"
)

// fetchObject streams one S3 object into outStream.
func fetchObject(ctx context.Context, bucket, key string, outStream io.Writer) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to get object %s from bucket %s: %w", key, bucket, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(outStream, resp.Body); err != nil {
		return fmt.Errorf("failed to copy object %s from bucket %s: %w", key, bucket, err)
	}
	return nil
}

// newSubmitter builds the import pipeline from SSM secrets and environment,
// plus the SES mailer for failure digests when a sender and recipients are
// configured.
func newSubmitter(ctx context.Context) (*posimport.Submitter, *notify.Email, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	secrets, err := config.LoadSecrets(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading secrets: %w", err)
	}

	client := v1.NewClient(cfg.BaseURL, v1.StaticToken(secrets.Token))

	var reporter timeclock.Reporter = notify.LogReporter{}
	if secrets.SlackBotToken != "" {
		slack := notify.NewSlack(secrets.SlackBotToken, notify.SlackOption{
			InfoChannelID:  cfg.Slack.InfoChannel,
			ErrorChannelID: cfg.Slack.ErrorChannel,
		})
		reporter = notify.SlackReporter{Slack: slack}
	}

	var mailer *notify.Email
	if cfg.Email.Sender != "" && len(cfg.Email.Recipients) > 0 {
		mailer, err = notify.ConnectEmail(ctx, cfg.Email)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting ses: %w", err)
		}
	}

	return &posimport.Submitter{
		Service:  client.Imports,
		Reporter: reporter,
	}, mailer, nil
}

// processFile parses one export and submits the lines.
func processFile(ctx context.Context, submitter *posimport.Submitter, name string, data []byte) error {
	fmt.Printf("Parsing %s\n", name)
	records, err := posimport.ParseWorkbook(bytes.NewReader(data), name)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	fmt.Printf("Parsed %d records\n", len(records))

	batches, err := submitter.Submit(ctx, filepath.Base(name), records)
	if err != nil {
		return fmt.Errorf("failed to submit %s: %w", name, err)
	}
	for _, b := range batches {
		fmt.Printf("  batch %s: %d records, %d duplicates, status %s\n",
			b.ID, b.RecordCount, b.DuplicateCount, b.Status)
	}
	return nil
}

// HandleRequest processes every object in the S3 event. Failures are
// collected per file and mailed to operations as one digest at the end,
// so a single bad export does not stop the rest of the batch.
func HandleRequest(ctx context.Context, event events.S3Event) error {
	submitter, mailer, err := newSubmitter(ctx)
	if err != nil {
		return err
	}

	var failures []notify.ImportFailure
	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		// object keys arrive url-encoded in S3 notifications
		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			key = record.S3.Object.Key
		}
		fmt.Printf("Fetching s3://%s/%s\n", bucket, key)

		var stream bytes.Buffer
		if err := fetchObject(ctx, bucket, key, &stream); err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			failures = append(failures, notify.ImportFailure{Source: key, Reason: err.Error()})
			continue
		}
		if err := processFile(ctx, submitter, key, stream.Bytes()); err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			failures = append(failures, notify.ImportFailure{Source: key, Reason: err.Error()})
		}
	}
	if len(failures) > 0 {
		if mailer != nil {
			if err := mailer.Send(ctx, notify.ImportFailureDigest(failures)); err != nil {
				fmt.Printf("[ERROR] failed to send failure digest: %v\n", err)
			}
		}
		return fmt.Errorf("%d of %d exports failed, see log", len(failures), len(event.Records))
	}
	fmt.Printf("Completed\n")
	return nil
}

func main() {
	if path := os.Getenv("LOCAL_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("failed to read file: %v", err)
		}
		submitter, _, err := newSubmitter(context.Background())
		if err != nil {
			log.Fatalf("failed to build submitter: %v", err)
		}
		if err := processFile(context.Background(), submitter, path, data); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}
	lambda.Start(HandleRequest)
}
