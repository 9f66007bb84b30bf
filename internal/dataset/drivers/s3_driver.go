package drivers

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the subset of the S3 client the driver needs
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Driver reads the dataset from an object in S3-compatible storage
type S3Driver struct {
	Client ObjectGetter
	Bucket string
	Key    string
}

func NewS3Driver(client ObjectGetter, bucket, key string) *S3Driver {
	return &S3Driver{
		Client: client,
		Bucket: bucket,
		Key:    key,
	}
}

func (d *S3Driver) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := d.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.Bucket),
		Key:    aws.String(d.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get from S3: %w", err)
	}
	return resp.Body, nil
}

func (d *S3Driver) Location() string {
	return fmt.Sprintf("s3://%s/%s", d.Bucket, d.Key)
}
