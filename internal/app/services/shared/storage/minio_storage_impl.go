package storage

import (
	"bytes"
	"context"
	"io"
	"medirdv-service/internal/app/contracts"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/exceptions"
	"sync"

	"github.com/minio/minio-go/v7"
)

// objectStore is the subset of *minio.Client the storage needs.
type objectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioStorage struct {
	client objectStore

	mu      sync.Mutex
	ensured map[string]bool
}

func NewMinioStorage(minioClient *minio.Client) contracts.Storage {
	return newMinioStorage(minioClient)
}

func newMinioStorage(client objectStore) *minioStorage {
	return &minioStorage{
		client:  client,
		ensured: make(map[string]bool),
	}
}

// EnsureBucket creates bucketName when missing. Known buckets are remembered
// so later uploads skip the round trip.
func (m *minioStorage) EnsureBucket(ctx context.Context, bucketName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ensured[bucketName] {
		return nil
	}

	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, bucketName)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return exceptions.ErrMinioCreateObject(err, bucketName)
		}
	}

	m.ensured[bucketName] = true
	return nil
}

func (m *minioStorage) UploadJSON(ctx context.Context, bucketName, objectName string, data []byte) (string, error) {
	if err := m.EnsureBucket(ctx, bucketName); err != nil {
		return "", err
	}

	_, err := m.client.PutObject(
		ctx,
		bucketName,
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: constvars.MIMEApplicationJSON,
		},
	)
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, bucketName)
	}

	return objectName, nil
}
