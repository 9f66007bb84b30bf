package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OpenNSW/tonban/internal/config"
	"github.com/OpenNSW/tonban/internal/dataset/drivers"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewSourceFromConfig creates the configured dataset source.
// It returns nil when the dataset is provisioned out of band.
func NewSourceFromConfig(ctx context.Context, cfg config.DatasetConfig) (SourceDriver, error) {
	switch cfg.Source {
	case "", "none":
		return nil, nil
	case "local":
		slog.Info("Initializing local dataset source", "path", cfg.LocalSource)
		return drivers.NewLocalFSDriver(cfg.LocalSource), nil
	case "s3":
		slog.Info("Initializing S3 dataset source", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket, "key", cfg.S3Key)

		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.S3Region),
		}

		if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
			creds := credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")
			opts = append(opts, awsconfig.WithCredentialsProvider(creds))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.S3Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			}
			o.UsePathStyle = true
		})

		return drivers.NewS3Driver(client, cfg.S3Bucket, cfg.S3Key), nil
	default:
		return nil, fmt.Errorf("unsupported dataset source: %s", cfg.Source)
	}
}
