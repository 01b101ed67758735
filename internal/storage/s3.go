package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
)

// S3Store stores blobs in an S3-compatible bucket and addresses them by
// public URL.
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	region   string
	endpoint string
}

func NewS3Store(ctx context.Context, region, bucket, endpoint string) (*S3Store, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	uploader := manager.NewUploader(client)
	return &S3Store{client: client, uploader: uploader, bucket: bucket, region: region, endpoint: endpoint}, nil
}

func (s *S3Store) Upload(ctx context.Context, f File, folder string) (string, error) {
	if err := ValidateFile(f, folder); err != nil {
		return "", err
	}

	key := folder + "/" + uuid.NewString() + f.Ext()
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(f.Data),
		ContentType: aws.String(f.ContentType),
	})
	if err != nil {
		return "", err
	}
	return s.publicURL(key), nil
}

func (s *S3Store) Delete(ctx context.Context, fileURL string) (bool, error) {
	key, ok := s.keyFromURL(fileURL)
	if !ok {
		return false, nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// SignURL exchanges one of our public URLs for a presigned GET. Foreign
// URLs are rejected so the endpoint cannot be used to sign arbitrary keys.
func (s *S3Store) SignURL(ctx context.Context, fileURL string, ttl time.Duration) (string, error) {
	key, ok := s.keyFromURL(fileURL)
	if !ok {
		return "", apperrors.InvalidArgument("url does not belong to this store")
	}
	return s.presignGet(ctx, key, ttl)
}

func (s *S3Store) presignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	presigner := s3.NewPresignClient(s.client)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = ttl
	})
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *S3Store) publicURL(key string) string {
	escaped := url.PathEscape(key)
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.endpoint, "/"), s.bucket, escaped)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
}

// keyFromURL recovers the object key from one of our public URLs. URLs that
// do not belong to this bucket are rejected so callers can never delete
// foreign objects.
func (s *S3Store) keyFromURL(fileURL string) (string, bool) {
	var prefix string
	if s.endpoint != "" {
		prefix = fmt.Sprintf("%s/%s/", strings.TrimSuffix(s.endpoint, "/"), s.bucket)
	} else {
		prefix = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	}
	if !strings.HasPrefix(fileURL, prefix) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimPrefix(fileURL, prefix))
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}
