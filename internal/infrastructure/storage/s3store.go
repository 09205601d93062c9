// Package storage holds card images in S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"captr/internal/shared/config"
	"captr/internal/shared/logger"
)

// S3ImageStore writes card images to a public-read bucket and returns their
// public URLs.
type S3ImageStore struct {
	client        s3iface.S3API
	bucket        string
	publicBaseURL string
	logger        logger.Interface
}

// NewS3ImageStore creates a new S3-backed image store
func NewS3ImageStore(cfg *config.StorageConfig, logger logger.Interface) (*S3ImageStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3ImageStore{
		client:        s3.New(sess),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(baseURL, "/"),
		logger:        logger,
	}, nil
}

// Put writes the object and returns its public URL.
func (s *S3ImageStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Errorw("failed to put object", "bucket", s.bucket, "key", key, "error", err)
		return "", fmt.Errorf("failed to put object: %w", err)
	}

	return s.publicBaseURL + "/" + key, nil
}
