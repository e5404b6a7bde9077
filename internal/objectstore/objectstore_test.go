package objectstore_test

import (
	"context"
	"errors"
	"testing"

	"logi-migrate/internal/objectstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := objectstore.New(ctx, objectstore.Settings{Provider: objectstore.S3})
	require.Error(t, err)

	_, err = objectstore.New(ctx, objectstore.Settings{Provider: "AZURE", Bucket: "b"})
	require.ErrorContains(t, err, "unknown object store provider")

	_, err = objectstore.New(ctx, objectstore.Settings{Provider: objectstore.MINIO, Bucket: "b"})
	require.Error(t, err)
}

func TestNew_Providers(t *testing.T) {
	ctx := context.Background()

	s3, err := objectstore.New(ctx, objectstore.Settings{
		Provider: "s3", Bucket: "rust-logi-files", Region: "ap-northeast-1",
		AccessKeyID: "id", SecretAccessKey: "secret",
	})
	require.NoError(t, err)
	require.NoError(t, s3.Close())

	mn, err := objectstore.New(ctx, objectstore.Settings{
		Provider: objectstore.MINIO, Bucket: "rust-logi-files", Endpoint: "localhost:9000",
		AccessKeyID: "minioadmin", SecretAccessKey: "minioadmin",
	})
	require.NoError(t, err)
	require.NoError(t, mn.Close())
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "00000000-0000-0000-0000-000000000001/f1", objectstore.ObjectKey("00000000-0000-0000-0000-000000000001", "f1"))
}

func TestMemory(t *testing.T) {
	m := objectstore.NewMemory()
	m.Fail = func(key string) error {
		if key == "bad" {
			return errors.New("denied")
		}
		return nil
	}

	data := []byte("%PDF")
	require.NoError(t, m.Upload(context.Background(), "org/f1", data, "application/pdf"))
	require.Error(t, m.Upload(context.Background(), "bad", data, "text/plain"))
	data[0] = 'X'

	require.Len(t, m.Objects, 1)
	assert.Equal(t, "%PDF", string(m.Objects["org/f1"].Data))
	assert.Equal(t, "application/pdf", m.Objects["org/f1"].ContentType)
}
