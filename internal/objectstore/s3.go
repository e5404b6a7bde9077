package objectstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type s3Uploader struct {
	manager *s3manager.Uploader
	bucket  string
	prefix  string
}

func newS3(s Settings) (*s3Uploader, error) {
	cfg := &aws.Config{}
	if s.Region != "" {
		cfg.Region = aws.String(s.Region)
	}
	if s.Endpoint != "" {
		cfg.Endpoint = aws.String(s.Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	if s.AccessKeyID != "" {
		cfg.Credentials = credentials.NewStaticCredentials(s.AccessKeyID, s.SecretAccessKey, "")
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating S3 session: %w", err)
	}
	return &s3Uploader{manager: s3manager.NewUploader(sess), bucket: s.Bucket, prefix: s.Prefix}, nil
}

func (u *s3Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := u.manager.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(objectName(u.prefix, key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}

func (u *s3Uploader) Close() error { return nil }
