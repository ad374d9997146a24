package blob

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
)

// S3Config configures an S3Store. Credentials come from the default AWS
// chain (environment, shared config, instance role).
type S3Config struct {
	Bucket string
	// Region defaults to us-east-1.
	Region string
	// Endpoint overrides the service endpoint, e.g. for MinIO.
	Endpoint  string
	PathStyle bool
}

// S3Store writes objects to one bucket.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store loads the AWS configuration and returns a store for
// cfg.Bucket.
func NewS3Store(ctx context.Context, cfg S3Config, optFns ...func(*s3.Options)) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackendUnavailable, err, "load aws config")
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		for _, fn := range optFns {
			fn(o)
		}
	})
	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

// Bucket returns the bucket the store writes to.
func (s *S3Store) Bucket() string { return s.bucket }

func (s *S3Store) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	in := &s3.PutObjectInput{Bucket: &s.bucket, Key: &key, Body: r}
	if contentType != "" {
		in.ContentType = &contentType
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return errors.Wrap(errors.ErrCodeBackendUnavailable, err, "put s3://%s/%s", s.bucket, key)
	}
	return nil
}

func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "s3://%s/%s not found", s.bucket, key)
		}
		return nil, errors.Wrap(errors.ErrCodeBackendUnavailable, err, "get s3://%s/%s", s.bucket, key)
	}
	return out.Body, nil
}
