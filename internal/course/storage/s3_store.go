package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/AnthoniusHendriyanto/course-service/config"
	"github.com/AnthoniusHendriyanto/course-service/internal/course/domain"
	autherror "github.com/AnthoniusHendriyanto/course-service/internal/errors"
	"github.com/AnthoniusHendriyanto/course-service/pkg/constant"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const keyPrefix = "courses"

// putObjectAPI is the slice of *s3.Client the store uses.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ImageStore keeps course images in an S3 compatible bucket. Objects are
// addressed by a random key which doubles as the image's public id.
type S3ImageStore struct {
	client  putObjectAPI
	bucket  string
	baseURL string
}

// NewS3ImageStore builds the store from config. A custom endpoint (MinIO,
// Hetzner and the like) switches to path-style addressing.
func NewS3ImageStore(cfg config.S3Config) *S3ImageStore {
	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: aws.AnonymousCredentials{},
	}
	if cfg.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &S3ImageStore{
		client:  s3.New(opts),
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg),
	}
}

func publicBaseURL(cfg config.S3Config) string {
	switch {
	case cfg.PublicURL != "":
		return strings.TrimRight(cfg.PublicURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

func (s *S3ImageStore) Upload(ctx context.Context, upload domain.ImageUpload) (*domain.Image, error) {
	key := path.Join(keyPrefix, uuid.NewString()+constant.AllowedImageTypes[upload.ContentType])

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        upload.Body,
		ContentType: aws.String(upload.ContentType),
	}
	if upload.Size > 0 {
		input.ContentLength = aws.Int64(upload.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("%w: put object %q: %w", autherror.ErrUpstream, key, err)
	}

	return &domain.Image{
		PublicID: key,
		URL:      s.baseURL + "/" + key,
	}, nil
}
