package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectStore) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	args := m.Called(ctx, bucketName, opts)
	return args.Error(0)
}

func (m *MockObjectStore) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func TestMinioStorage_UploadJSON(t *testing.T) {
	ctx := context.Background()
	data := []byte(`{"physicians":[]}`)

	t.Run("Creates Missing Bucket Once", func(t *testing.T) {
		store := new(MockObjectStore)
		store.On("BucketExists", ctx, "snapshots").Return(false, nil).Once()
		store.On("MakeBucket", ctx, "snapshots", minio.MakeBucketOptions{}).Return(nil).Once()
		store.On("PutObject", ctx, "snapshots", mock.AnythingOfType("string"), mock.Anything, int64(len(data)),
			minio.PutObjectOptions{ContentType: "application/json"}).Return(minio.UploadInfo{}, nil).Twice()

		storage := newMinioStorage(store)
		name, err := storage.UploadJSON(ctx, "snapshots", "availability/snapshot-a.json", data)
		require.NoError(t, err)
		assert.Equal(t, "availability/snapshot-a.json", name)

		_, err = storage.UploadJSON(ctx, "snapshots", "availability/snapshot-b.json", data)
		require.NoError(t, err)

		store.AssertExpectations(t)
	})

	t.Run("Put Failure", func(t *testing.T) {
		store := new(MockObjectStore)
		store.On("BucketExists", ctx, "snapshots").Return(true, nil)
		store.On("PutObject", ctx, "snapshots", "x.json", mock.Anything, int64(len(data)), mock.Anything).
			Return(minio.UploadInfo{}, errors.New("access denied"))

		_, err := newMinioStorage(store).UploadJSON(ctx, "snapshots", "x.json", data)
		assert.Error(t, err)
		store.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Bucket Check Failure", func(t *testing.T) {
		store := new(MockObjectStore)
		store.On("BucketExists", ctx, "snapshots").Return(false, errors.New("unreachable"))

		_, err := newMinioStorage(store).UploadJSON(ctx, "snapshots", "x.json", data)
		assert.Error(t, err)
		store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
