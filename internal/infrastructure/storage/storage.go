package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/saradorri/tournamenthub/internal/config"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// objectPutter is the part of the S3 API the store needs
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads to an S3 compatible bucket
type S3Store struct {
	client        objectPutter
	bucket        string
	publicBaseURL string
	logger        *logger.Logger
}

// New returns an S3 store, or a disabled store when storage is off
func New(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (domain.ImageStore, error) {
	if !cfg.Enabled {
		return Disabled{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	base := cfg.PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("%s/%s", strings.TrimRight(cfg.Endpoint, "/"), cfg.Bucket)
	}
	return newS3Store(client, cfg.Bucket, base, log), nil
}

func newS3Store(client objectPutter, bucket, publicBaseURL string, log *logger.Logger) *S3Store {
	return &S3Store{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        log,
	}
}

// Enabled reports that uploads are accepted
func (s *S3Store) Enabled() bool { return true }

// Upload stores body under folder with a slugged, collision-free key
func (s *S3Store) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	key := ObjectKey(folder, filename, uuid.NewString()[:8])

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("Image upload failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	url := fmt.Sprintf("%s/%s", s.publicBaseURL, key)
	s.logger.Info("Image uploaded", zap.String("key", key), zap.String("url", url))
	return url, nil
}

// ObjectKey builds "<folder>/<slug>-<suffix><ext>"
func ObjectKey(folder, filename, suffix string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := slug.Make(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))
	if name == "" {
		name = "image"
	}
	return fmt.Sprintf("%s/%s-%s%s", slug.Make(folder), name, suffix, ext)
}

// Disabled rejects every upload
type Disabled struct{}

// Enabled reports that uploads are off
func (Disabled) Enabled() bool { return false }

// Upload always fails
func (Disabled) Upload(context.Context, string, string, string, io.Reader) (string, error) {
	return "", domain.NewAppError(domain.ErrCodeStorageDisabled, "Image uploads are not configured.", http.StatusServiceUnavailable, nil)
}
