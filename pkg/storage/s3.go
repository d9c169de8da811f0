package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FolderPhotos is the S3 prefix for seminar photos.
const FolderPhotos = "photos"

// DefaultMaxPhotoSize applies when S3Config.MaxPhotoBytes is not set.
const DefaultMaxPhotoSize = 5 * 1024 * 1024

var (
	// ErrPhotoType is returned for files that are not a supported image.
	ErrPhotoType = errors.New("unsupported photo type")
	// ErrPhotoTooLarge is returned for files over the configured limit.
	ErrPhotoTooLarge = errors.New("photo is too large")
)

// photoExtensions maps allowed extensions to their MIME type.
var photoExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// S3Config holds S3 client configuration.
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PhotosBucket    string
	MaxPhotoBytes   int64
}

// S3 uploads seminar photos to a public bucket.
type S3 struct {
	uploader *manager.Uploader
	cfg      S3Config
	logger   *zap.Logger
}

// NewS3 creates an S3 photo uploader. Static credentials are used when both
// keys are set, the default AWS credential chain otherwise.
func NewS3(ctx context.Context, cfg S3Config, logger *zap.Logger) (*S3, error) {
	if cfg.PhotosBucket == "" {
		return nil, errors.New("photos bucket is not configured")
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	} else {
		logger.Warn("s3 using default credential chain")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if cfg.MaxPhotoBytes <= 0 {
		cfg.MaxPhotoBytes = DefaultMaxPhotoSize
	}
	logger.Info("s3 photo uploads enabled", zap.String("bucket", cfg.PhotosBucket), zap.String("region", cfg.Region))
	return &S3{
		uploader: manager.NewUploader(s3.NewFromConfig(awsCfg)),
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// ValidatePhotoType reports whether the content type or the file extension is
// an allowed image type.
func ValidatePhotoType(contentType, filename string) bool {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	for _, allowed := range photoExtensions {
		if ct == allowed {
			return true
		}
	}
	_, ok := photoExtensions[strings.ToLower(path.Ext(filename))]
	return ok
}

// ContentTypeForFilename returns the MIME type for a photo file name.
func ContentTypeForFilename(filename string) string {
	if ct, ok := photoExtensions[strings.ToLower(path.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// PhotoKey returns a fresh object key: photos/{uuid}{ext}.
func PhotoKey(filename string) string {
	return path.Join(FolderPhotos, uuid.NewString()+strings.ToLower(path.Ext(filename)))
}

// PublicObjectURL returns the unsigned URL of an object in the photos bucket.
func (s *S3) PublicObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.PhotosBucket, s.cfg.Region, key)
}

// UploadPhoto checks and streams one photo to the bucket with a public-read ACL
// and returns its URL.
func (s *S3) UploadPhoto(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	if !ValidatePhotoType(contentType, filename) {
		return "", ErrPhotoType
	}
	if size > s.cfg.MaxPhotoBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrPhotoTooLarge, size, s.cfg.MaxPhotoBytes)
	}
	if !strings.HasPrefix(contentType, "image/") {
		contentType = ContentTypeForFilename(filename)
	}

	key := PhotoKey(filename)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.PhotosBucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload photo %s: %w", key, err)
	}
	url := s.PublicObjectURL(key)
	s.logger.Info("photo uploaded", zap.String("key", key), zap.Int64("size", size))
	return url, nil
}
