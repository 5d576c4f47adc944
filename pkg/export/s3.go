package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the part of the S3 client the sink needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// BucketHeader is the part of the S3 client a reachability probe needs
type BucketHeader interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// CheckBucket verifies that bucket exists and the credentials can reach it
func CheckBucket(ctx context.Context, client BucketHeader, bucket string) error {
	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		return fmt.Errorf("bucket %s unreachable: %w", bucket, err)
	}
	return nil
}

// S3Options configures the S3 client
type S3Options struct {
	Region   string
	Endpoint string
	// Static credentials; when empty the default AWS credential chain applies
	AccessKey string
	SecretKey string
}

// NewS3Client builds a client. A custom endpoint switches to path-style
// addressing for S3-compatible stores.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	loaders := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.Endpoint != "" {
		loaders = append(loaders, awsconfig.WithBaseEndpoint(opts.Endpoint))
	}
	if opts.AccessKey != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = opts.Endpoint != ""
	}), nil
}

// S3Sink buffers each artifact in memory and uploads it on Close
type S3Sink struct {
	client ObjectPutter
	bucket string
	prefix string
}

// NewS3Sink uploads to bucket under prefix
func NewS3Sink(client ObjectPutter, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Name implements Sink
func (s *S3Sink) Name() string { return "s3" }

// Key returns the object key for an artifact name
func (s *S3Sink) Key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Create implements Sink
func (s *S3Sink) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	return &s3Object{ctx: ctx, sink: s, key: s.Key(name)}, nil
}

type s3Object struct {
	bytes.Buffer
	ctx  context.Context
	sink *S3Sink
	key  string
}

func (o *s3Object) Close() error {
	_, err := o.sink.client.PutObject(o.ctx, &s3.PutObjectInput{
		Bucket:      aws.String(o.sink.bucket),
		Key:         aws.String(o.key),
		Body:        bytes.NewReader(o.Bytes()),
		ContentType: aws.String(contentType(o.key)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3: %w", o.key, err)
	}
	return nil
}

// Abort drops the buffered object without uploading it
func (o *s3Object) Abort() error {
	o.Reset()
	return nil
}

func contentType(key string) string {
	switch {
	case strings.HasSuffix(key, SnappyExt):
		return "application/x-snappy-framed"
	case strings.HasSuffix(key, ".json"):
		return "application/json"
	default:
		return "text/tab-separated-values"
	}
}
