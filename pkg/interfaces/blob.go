package interfaces

import (
	"context"
	"errors"
	"io"
)

// ErrBlobNotFound reports a missing object when looking it up by key.
var ErrBlobNotFound = errors.New("blob: object not found")

// BlobStore provides read access to an external object store such as S3 or a
// compatible bucket service. Implementations return ErrBlobNotFound when the
// key does not exist so callers can map the condition to a 404.
type BlobStore interface {
	// Get fetches the object stored under key. The caller owns the returned
	// body and must close it.
	Get(ctx context.Context, key string) (*BlobObject, error)
}

// BlobObject carries the streamed body and the metadata the store reported
// for a fetched object. ContentType may be empty when the store recorded no
// media type for the upload.
type BlobObject struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}
