package filesystem

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3FileSystem struct {
	client ObjectPutter
	bucket string
}

func NewS3FileSystem(ctx context.Context, bucket string) (*S3FileSystem, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &S3FileSystem{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

func NewS3FileSystemWithClient(client ObjectPutter, bucket string) *S3FileSystem {
	return &S3FileSystem{client: client, bucket: bucket}
}

func (fs *S3FileSystem) WriteFile(ctx context.Context, key string, contentType string, body io.Reader) error {
	_, err := fs.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(fs.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s to bucket %s: %w", key, fs.bucket, err)
	}
	return nil
}
