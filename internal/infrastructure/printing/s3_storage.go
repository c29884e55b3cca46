package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// S3StorageConfig configures PDF storage on any S3-compatible backend
// (AWS S3, MinIO, RustFS).
type S3StorageConfig struct {
	Endpoint          string
	Region            string
	Bucket            string
	AccessKey         string
	SecretKey         string
	UseSSL            bool
	UsePathStyle      bool
	PresignExpiration time.Duration
	Logger            *zap.Logger
}

// S3PDFStorage keeps rendered quote PDFs in an S3 bucket under
// {owner_id}/{year}/{month}/{job_id}.pdf. Download links are presigned.
type S3PDFStorage struct {
	client            *s3.Client
	presignClient     *s3.PresignClient
	bucket            string
	presignExpiration time.Duration
	logger            *zap.Logger
}

// NewS3PDFStorage creates an S3-backed PDF storage
func NewS3PDFStorage(cfg *S3StorageConfig) (*S3PDFStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage credentials are required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "http://localhost:9000"
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid storage endpoint: %w", err)
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		o.BaseEndpoint = aws.String(endpoint)
	})

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	expiration := cfg.PresignExpiration
	if expiration == 0 {
		expiration = 15 * time.Minute
	}

	return &S3PDFStorage{
		client:            client,
		presignClient:     s3.NewPresignClient(client),
		bucket:            cfg.Bucket,
		presignExpiration: expiration,
		logger:            logger,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist. Called once at
// startup.
func (s *S3PDFStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Store uploads the PDF and returns its object key and a presigned URL
func (s *S3PDFStorage) Store(ctx context.Context, req *StoreRequest) (*StoreResult, error) {
	if req == nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "store request is nil", nil)
	}
	if req.OwnerID == uuid.Nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "owner ID is required", nil)
	}
	if req.JobID == uuid.Nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "job ID is required", nil)
	}
	if len(req.PDFData) == 0 {
		return nil, NewRenderError(ErrCodeStorageFailed, "PDF data is empty", nil)
	}

	now := time.Now()
	key := path.Join(
		req.OwnerID.String(),
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		req.JobID.String()+".pdf",
	)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(req.PDFData),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to upload PDF", err)
	}

	s.logger.Info("PDF uploaded",
		zap.String("key", key),
		zap.Int("size", len(req.PDFData)))

	return &StoreResult{
		Path: key,
		URL:  s.GetURL(key),
		Size: int64(len(req.PDFData)),
	}, nil
}

// Get streams a stored PDF by its object key
func (s *S3PDFStorage) Get(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, NewRenderError(ErrCodeStorageFailed, "PDF not found", err)
		}
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to fetch PDF", err)
	}
	return out.Body, nil
}

// Delete removes a stored PDF; S3 treats missing keys as success
func (s *S3PDFStorage) Delete(ctx context.Context, objectKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return NewRenderError(ErrCodeStorageFailed, "failed to delete PDF", err)
	}
	return nil
}

// CleanupOlderThan removes objects last modified before the cutoff
func (s *S3PDFStorage) CleanupOlderThan(ctx context.Context, age time.Duration) (int, error) {
	cutoff := time.Now().Add(-age)
	deleted := 0

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return deleted, NewRenderError(ErrCodeStorageFailed, "failed to list PDFs", err)
		}
		for _, obj := range out.Contents {
			if obj.LastModified == nil || !obj.LastModified.Before(cutoff) {
				continue
			}
			if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    obj.Key,
			}); err == nil {
				deleted++
			}
		}
	}

	s.logger.Info("PDF cleanup completed",
		zap.Int("deleted", deleted),
		zap.Duration("age", age))
	return deleted, nil
}

// GetURL returns a presigned download link for the object. Presigning
// is local, no network round trip is involved.
func (s *S3PDFStorage) GetURL(objectKey string) string {
	presigned, err := s.presignClient.PresignGetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(s.presignExpiration))
	if err != nil {
		s.logger.Warn("failed to presign PDF URL", zap.String("key", objectKey), zap.Error(err))
		return objectKey
	}
	return presigned.URL
}

var _ PDFStorage = (*S3PDFStorage)(nil)
