package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"abchotels/config"
	apperrors "abchotels/errors"
	"abchotels/services/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Upload folders
const (
	FolderImages  = "images"
	FolderResumes = "resumes"
)

// MediaStore keeps uploaded files and returns their public URL
type MediaStore interface {
	Upload(ctx context.Context, folder, filename string, reader io.Reader, contentType string) (string, error)
	// Delete removes a file previously returned by Upload
	Delete(ctx context.Context, fileURL string) error
}

// NewMediaStore picks the backend named by MEDIA_BACKEND
func NewMediaStore(cfg *config.Config, log logger.Logger) (MediaStore, error) {
	switch cfg.MediaBackend {
	case "cloudinary":
		return NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case "s3":
		return NewS3Store(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL, log)
	case "", "none":
		return NoopStore{}, nil
	default:
		return nil, fmt.Errorf("unknown MEDIA_BACKEND %q", cfg.MediaBackend)
	}
}

// objectKey names an upload uniquely while keeping its extension
func objectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(folder, uuid.NewString()+ext)
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, folder, filename string, reader io.Reader, _ string) (string, error) {
	key := objectKey(folder, filename)
	resp, err := s.cld.Upload.Upload(ctx, reader, uploader.UploadParams{
		Folder:       folder,
		PublicID:     strings.TrimSuffix(path.Base(key), path.Ext(key)),
		ResourceType: "auto",
	})
	if err != nil {
		return "", uploadFailed(err)
	}
	if resp.Error.Message != "" {
		return "", uploadFailed(errors.New(resp.Error.Message))
	}
	return resp.SecureURL, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, fileURL string) error {
	resourceType, publicID, ok := cloudinaryAsset(fileURL)
	if !ok {
		return fmt.Errorf("cloudinary: not an asset url: %s", fileURL)
	}
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("cloudinary: destroy %s: %w", publicID, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary: destroy %s: %s", publicID, resp.Error.Message)
	}
	return nil
}

// cloudinaryAsset splits a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1712/resumes/abc.pdf
// into its resource type and public id. Raw assets keep their extension.
func cloudinaryAsset(fileURL string) (resourceType, publicID string, ok bool) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 1; i < len(parts)-1; i++ {
		if parts[i] != "upload" {
			continue
		}
		resourceType = parts[i-1]
		rest := parts[i+1:]
		if isVersion(rest[0]) {
			rest = rest[1:]
		}
		if len(rest) == 0 {
			return "", "", false
		}
		publicID = strings.Join(rest, "/")
		if resourceType != "raw" {
			publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
		}
		return resourceType, publicID, publicID != ""
	}
	return "", "", false
}

func isVersion(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// S3Store writes to an S3-compatible bucket through minio
type S3Store struct {
	bucket         string
	publicBaseURL  string
	client         *minio.Client
	log            logger.Logger
	bucketInitOnce sync.Once
	bucketInitErr  error
}

func NewS3Store(endpoint string, useSSL bool, accessKey, secretKey, bucket, publicBaseURL string, log logger.Logger) (*S3Store, error) {
	cleanEndpoint := strings.TrimSpace(endpoint)
	if cleanEndpoint == "" {
		return nil, errors.New("s3: endpoint is required")
	}
	if bucket = strings.TrimSpace(bucket); bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}

	client, err := minio.New(hostOf(cleanEndpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(accessKey), strings.TrimSpace(secretKey), ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("s3: create client: %w", err)
	}

	base := strings.TrimSpace(publicBaseURL)
	if base == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		base = scheme + "://" + hostOf(cleanEndpoint)
	}

	return &S3Store{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
		client:        client,
		log:           log,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, folder, filename string, reader io.Reader, contentType string) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", uploadFailed(err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := objectKey(folder, filename)
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", uploadFailed(fmt.Errorf("s3: put object: %w", err))
	}

	publicURL := s.publicBaseURL + "/" + s.bucket + "/" + key
	s.log.Debug("s3 upload completed: %s", publicURL)
	return publicURL, nil
}

func (s *S3Store) Delete(ctx context.Context, fileURL string) error {
	prefix := s.publicBaseURL + "/" + s.bucket + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return fmt.Errorf("s3: %s is not in bucket %s", fileURL, s.bucket)
	}
	key := strings.TrimPrefix(fileURL, prefix)
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("s3: remove object: %w", err)
	}
	return nil
}

func (s *S3Store) ensureBucket(ctx context.Context) error {
	s.bucketInitOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.bucketInitErr = fmt.Errorf("s3: check bucket: %w", err)
			return
		}
		if exists {
			return
		}
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			s.bucketInitErr = fmt.Errorf("s3: create bucket: %w", err)
			return
		}
		policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, s.bucket)
		if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
			s.bucketInitErr = fmt.Errorf("s3: set bucket policy: %w", err)
		}
	})
	return s.bucketInitErr
}

// hostOf strips a scheme and path from endpoint, as minio wants host[:port]
func hostOf(endpoint string) string {
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		return u.Host
	}
	return strings.TrimRight(endpoint, "/")
}

// NoopStore rejects uploads when no backend is configured
type NoopStore struct{}

func (NoopStore) Upload(context.Context, string, string, io.Reader, string) (string, error) {
	return "", apperrors.NewAppError(apperrors.ErrCodeUploadFailed, "File uploads are not configured", nil)
}

func (NoopStore) Delete(context.Context, string) error { return nil }

func uploadFailed(err error) error {
	return apperrors.NewAppError(apperrors.ErrCodeUploadFailed, "Upload failed", err)
}
