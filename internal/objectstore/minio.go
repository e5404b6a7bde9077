package objectstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type minioUploader struct {
	client *minio.Client
	bucket string
	prefix string
}

func newMinio(s Settings) (*minioUploader, error) {
	if s.Endpoint == "" {
		return nil, fmt.Errorf("MINIO provider needs an endpoint")
	}
	client, err := minio.New(s.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s.AccessKeyID, s.SecretAccessKey, ""),
		Secure: s.UseSSL,
		Region: s.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}
	return &minioUploader{client: client, bucket: s.Bucket, prefix: s.Prefix}, nil
}

func (u *minioUploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := u.client.PutObject(ctx, u.bucket, objectName(u.prefix, key), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (u *minioUploader) Close() error { return nil }
