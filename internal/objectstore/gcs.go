package objectstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type gcsUploader struct {
	client *storage.Client
	bucket string
	prefix string
}

func newGCS(ctx context.Context, s Settings) (*gcsUploader, error) {
	options := []option.ClientOption{}
	if s.Endpoint != "" {
		options = append(options, option.WithEndpoint(s.Endpoint))
	}
	if s.CredentialsFile != "" {
		options = append(options, option.WithCredentialsFile(s.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}
	return &gcsUploader{client: client, bucket: s.Bucket, prefix: s.Prefix}, nil
}

func (u *gcsUploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	w := u.client.Bucket(u.bucket).Object(objectName(u.prefix, key)).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		err = fmt.Errorf("copying blob to GCS: %w", err)
		if closeErr := w.Close(); closeErr != nil {
			return fmt.Errorf("closing writer: %q, while: %w", closeErr, err)
		}
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing writer: %w", err)
	}
	return nil
}

func (u *gcsUploader) Close() error {
	return u.client.Close()
}
