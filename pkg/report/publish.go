package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dd0wney/cluso-graphreport/pkg/config"
	"github.com/dd0wney/cluso-graphreport/pkg/logging"
	"github.com/dd0wney/cluso-graphreport/pkg/metrics"
)

// ErrPublishDisabled is returned when no bucket is configured
var ErrPublishDisabled = errors.New("publishing is not configured")

// ObjectPutter is the part of the S3 client the publisher needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads report artefacts under <prefix>/<run id>/ in a bucket
type Publisher struct {
	client  ObjectPutter
	bucket  string
	prefix  string
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewPublisher wraps an existing client
func NewPublisher(client ObjectPutter, cfg config.Publish, logger logging.Logger, reg *metrics.Registry) (*Publisher, error) {
	if !cfg.Enabled() {
		return nil, ErrPublishDisabled
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	return &Publisher{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  strings.Trim(cfg.Prefix, "/"),
		logger:  logger.With(logging.Component("publisher"), logging.String("bucket", cfg.Bucket)),
		metrics: reg,
	}, nil
}

// NewS3Publisher builds an S3 client. Credentials come from the environment
// pair named in config when both are set, otherwise from the default AWS
// chain.
func NewS3Publisher(ctx context.Context, cfg config.Publish, logger logging.Logger, reg *metrics.Registry) (*Publisher, error) {
	if !cfg.Enabled() {
		return nil, ErrPublishDisabled
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsLoadOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewPublisher(s3.NewFromConfig(awsCfg, s3Options(cfg)), cfg, logger, reg)
}

func awsLoadOptions(cfg config.Publish) []func(*awsconfig.LoadOptions) error {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if id, secret, ok := cfg.StaticCredentials(); ok {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(id, secret, "")))
	}
	return opts
}

func s3Options(cfg config.Publish) func(*s3.Options) {
	return func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}
}

// Key returns the object key a file is stored under
func (p *Publisher) Key(runID, file string) string {
	return path.Join(p.prefix, runID, filepath.Base(file))
}

// Publish uploads each file and returns the keys written. It stops at the
// first failure.
func (p *Publisher) Publish(ctx context.Context, runID string, files ...string) ([]string, error) {
	keys := make([]string, 0, len(files))
	for _, file := range files {
		key := p.Key(runID, file)
		if err := p.put(ctx, key, file); err != nil {
			p.metrics.RecordPublish(err)
			p.logger.Error("upload failed", logging.Path(file), logging.String("key", key), logging.Error(err))
			return keys, fmt.Errorf("publish %s: %w", file, err)
		}
		p.metrics.RecordPublish(nil)
		p.logger.Info("uploaded", logging.Path(file), logging.String("key", key))
		keys = append(keys, key)
	}
	return keys, nil
}

func (p *Publisher) put(ctx context.Context, key, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(contentType(file)),
	})
	return err
}

func contentType(file string) string {
	switch {
	case strings.HasSuffix(file, ".html"):
		return "text/html; charset=utf-8"
	case strings.HasSuffix(file, ".json"):
		return "application/json"
	case strings.HasSuffix(file, ".prom"), strings.HasSuffix(file, ".txt"):
		return "text/plain; version=0.0.4"
	default:
		return "application/octet-stream"
	}
}
