// Package objectstore uploads file blobs to a bucket.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

const (
	GCS   = "GCS"
	S3    = "S3"
	MINIO = "MINIO"
)

// Settings selects and configures a provider.
type Settings struct {
	Provider        string `mapstructure:"provider"`
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	CredentialsFile string `mapstructure:"credentials_file"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// Uploader stores one object per call.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Close() error
}

// New builds the uploader for s.Provider.
func New(ctx context.Context, s Settings) (Uploader, error) {
	if s.Bucket == "" {
		return nil, errors.New("no storage bucket configured to uploader")
	}
	switch strings.ToUpper(s.Provider) {
	case GCS:
		return newGCS(ctx, s)
	case S3:
		return newS3(s)
	case MINIO:
		return newMinio(s)
	default:
		return nil, fmt.Errorf("unknown object store provider %q", s.Provider)
	}
}

// ObjectKey is where the blob of row id owned by tenant is stored.
func ObjectKey(tenant, id string) string {
	return tenant + "/" + id
}

func objectName(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return path.Join(prefix, key)
}
