package s3

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/tendant/signed-assets/pkg/signedassets"
)

// Config options for the S3 signature issuer
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)
}

// Signer issues presigned GET URLs against a single bucket. Credentials
// are explicit: resolving them from an ambient chain (environment,
// instance role) is the caller's concern, and the caller passes the
// resolved tuple in.
type Signer struct {
	presignClient *s3.PresignClient
	config        Config
}

// New creates an S3-backed signedassets.URLSigner
func New(config Config) (signedassets.URLSigner, error) {
	if config.Bucket == "" || config.Region == "" {
		return nil, fmt.Errorf("%w: bucket and region are required", signedassets.ErrConfigMissing)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(config.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			config.AccessKeyID,
			config.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Custom endpoint for S3-compatible services (MinIO, etc.)
	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)

	return &Signer{
		presignClient: s3.NewPresignClient(client),
		config:        config,
	}, nil
}

// SignObjectURL returns a presigned GET URL for objectKey. Empty key
// material fails with ErrCredentialsMissing for this URL only; any SDK
// failure is folded into a SignError wrapping ErrSigningFailed. An error
// never propagates past this method as anything but a return value.
func (s *Signer) SignObjectURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	if s.config.AccessKeyID == "" || s.config.SecretAccessKey == "" {
		return "", &signedassets.SignError{Key: objectKey, Op: "presign", Err: signedassets.ErrCredentialsMissing}
	}
	if s.config.Bucket == "" || s.config.Region == "" {
		return "", &signedassets.SignError{Key: objectKey, Op: "presign", Err: signedassets.ErrConfigMissing}
	}

	// Storage object keys are relative, not absolute paths.
	key := strings.TrimLeft(objectKey, "/")
	if ttl <= 0 {
		ttl = signedassets.DefaultTTL
	}

	result, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			err = fmt.Errorf("%w: %s: %s", signedassets.ErrSigningFailed, apiErr.ErrorCode(), apiErr.ErrorMessage())
		} else {
			err = fmt.Errorf("%w: %v", signedassets.ErrSigningFailed, err)
		}
		return "", &signedassets.SignError{Key: key, Op: "presign", Err: err}
	}

	return result.URL, nil
}
