package contracts

import (
	"context"
	"io"
	"time"
)

// Storage holds consultation attachments. Objects are never served
// directly; clients receive a presigned link that expires.
type Storage interface {
	UploadFile(ctx context.Context, file io.Reader, size int64, contentType, bucketName, objectName string) (string, error)
	GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error)
}
