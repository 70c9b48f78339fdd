package sqs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driven"
	"github.com/custodia-labs/stackprobe/internal/logger"
	"github.com/custodia-labs/stackprobe/internal/ndjson"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

const (
	// WaitTimeSeconds is the long-poll duration per receive.
	WaitTimeSeconds = 20

	// MaxMessages is the batch size per receive.
	MaxMessages = 10

	// emptyPollInterval paces receives after an empty poll.
	emptyPollInterval = time.Second
)

// ErrQueueURLRequired indicates no queue URL was given.
var ErrQueueURLRequired = errors.New("sqs: queue url is required")

// API is the subset of the SQS client used by Source.
type API interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Source streams pages from a queue.
type Source struct {
	client        API
	queueURL      string
	maxEmptyPolls int
	waitSeconds   int32
	limiter       *rate.Limiter
}

// New creates a queue source. maxEmptyPolls consecutive empty receives end
// the stream; zero polls until the context is cancelled.
func New(client API, queueURL string, maxEmptyPolls int) *Source {
	return &Source{
		client:        client,
		queueURL:      queueURL,
		maxEmptyPolls: maxEmptyPolls,
		waitSeconds:   WaitTimeSeconds,
		limiter:       rate.NewLimiter(rate.Every(emptyPollInterval), 1),
	}
}

// NewFromSettings loads AWS configuration from the environment and creates a source.
func NewFromSettings(ctx context.Context, settings domain.QueueSettings) (*Source, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if settings.Region != "" {
		opts = append(opts, awsconfig.WithRegion(settings.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sqs: loading AWS config: %w", err)
	}
	return New(sqs.NewFromConfig(cfg), settings.URL, settings.MaxEmptyPolls), nil
}

// Name returns the queue URL.
func (s *Source) Name() string {
	return "queue " + s.queueURL
}

// Validate checks the queue URL is set.
func (s *Source) Validate(_ context.Context) error {
	if strings.TrimSpace(s.queueURL) == "" {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, ErrQueueURLRequired)
	}
	return nil
}

// Stream receives messages until the queue stays empty or ctx is cancelled.
func (s *Source) Stream(ctx context.Context) (<-chan domain.Page, <-chan error) {
	pages := make(chan domain.Page)
	errs := make(chan error, 1)

	go func() {
		defer close(pages)
		defer close(errs)

		emit := func(p domain.Page) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case pages <- p:
				return nil
			}
		}

		if err := s.poll(ctx, emit); err != nil {
			errs <- err
		}
	}()

	return pages, errs
}

// Close releases resources.
func (s *Source) Close() error {
	return nil
}

func (s *Source) poll(ctx context.Context, emit func(domain.Page) error) error {
	empty := 0
	for {
		if empty > 0 {
			if err := s.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		out, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(s.queueURL),
			MaxNumberOfMessages: MaxMessages,
			WaitTimeSeconds:     s.waitSeconds,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("sqs: receiving messages: %w", err)
		}

		if len(out.Messages) == 0 {
			empty++
			logger.Debug("Empty poll %d on %s", empty, s.queueURL)
			if s.maxEmptyPolls > 0 && empty >= s.maxEmptyPolls {
				return nil
			}
			continue
		}
		empty = 0

		for _, msg := range out.Messages {
			body := aws.ToString(msg.Body)
			if err := ndjson.Decode(ctx, strings.NewReader(body), emit); err != nil {
				return err
			}
			s.delete(ctx, aws.ToString(msg.ReceiptHandle))
		}
	}
}

// delete removes a handled message. Failures are logged; the message will
// be redelivered after its visibility timeout.
func (s *Source) delete(ctx context.Context, handle string) {
	if handle == "" {
		return
	}
	_, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(s.queueURL),
		ReceiptHandle: aws.String(handle),
	})
	if err != nil {
		logger.Warn("Failed to delete message from %s: %v", s.queueURL, err)
	}
}
