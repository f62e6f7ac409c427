package model

import (
	"context"
	"io"
)

// FileStorage uploads user-supplied files to an external object store and
// resolves their public URLs.
type FileStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
