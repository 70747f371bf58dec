package archive

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config holds the object storage connection settings.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Prefix    string
	UseSSL    bool
}

// objectPutter is the subset of the minio client S3 uses.
type objectPutter interface {
	FPutObject(ctx context.Context, bucket, object, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// S3 uploads documents to an S3-compatible bucket under <prefix>/<employee>/<vendor>/<file>.
type S3 struct {
	api    objectPutter
	bucket string
	prefix string
}

// NewS3 creates an archiver backed by minio-go.
func NewS3(cfg S3Config) (*S3, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &S3{
		api:    client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// Archive implements Archiver and returns an s3://bucket/key URL.
func (s *S3) Archive(ctx context.Context, src, employee, vendor string) (string, error) {
	key, err := ObjectKey(s.prefix, src, employee, vendor)
	if err != nil {
		return "", err
	}

	opts := minio.PutObjectOptions{}
	if mt, err := mimetype.DetectFile(src); err == nil {
		opts.ContentType = mt.String()
	}

	if _, err := s.api.FPutObject(ctx, s.bucket, key, src, opts); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", filepath.Base(src), err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// ObjectKey returns the bucket key for a document. Keys always use forward slashes.
func ObjectKey(prefix, src, employee, vendor string) (string, error) {
	if err := validateSegment("employee", employee); err != nil {
		return "", err
	}
	if err := validateSegment("vendor", vendor); err != nil {
		return "", err
	}

	key := path.Join(employee, vendor, filepath.Base(src))
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		key = prefix + "/" + key
	}
	return key, nil
}
