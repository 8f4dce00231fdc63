package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	aws2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Storage persists uploaded images and returns the public URL to reference
// them by in API responses.
type Storage interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// LocalStorage writes uploads under a directory served statically at
// /uploads. This is the default backend.
type LocalStorage struct {
	Dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		dir = "public/uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{Dir: dir}, nil
}

func (l *LocalStorage) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	path := filepath.Join(l.Dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return "/uploads/" + key, nil
}

// S3Storage uploads to a bucket and returns the virtual-host style URL.
type S3Storage struct {
	Client *s3.Client
	Bucket string
	Region string
	Prefix string
}

func NewS3Storage(ctx context.Context, bucket, region, prefix string) (*S3Storage, error) {
	if region == "" {
		region = "us-east-2"
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return &S3Storage{Client: client, Bucket: bucket, Region: region, Prefix: prefix}, nil
}

func (s *S3Storage) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	fullKey := key
	if s.Prefix != "" {
		fullKey = s.Prefix + "/" + key
	}
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws2.String(s.Bucket),
		Key:           aws2.String(fullKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws2.Int64(int64(len(data))),
		ContentType:   aws2.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.Bucket, s.Region, fullKey), nil
}

// FromEnv picks the backend: S3 when S3_BUCKET is set, local disk otherwise.
func FromEnv(ctx context.Context) (Storage, error) {
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		return NewS3Storage(ctx, bucket, os.Getenv("AWS_REGION"), "uploads")
	}
	return NewLocalStorage(os.Getenv("UPLOAD_DIR"))
}
