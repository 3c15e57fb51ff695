package contracts

import "context"

type Storage interface {
	EnsureBucket(ctx context.Context, bucketName string) error
	UploadJSON(ctx context.Context, bucketName, objectName string, data []byte) (string, error)
}
