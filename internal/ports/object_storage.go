package ports

import (
	"context"
	"io"
)

// ObjectStore persists uploaded files (item photos) and returns the public
// URL they will be served from.
type ObjectStore interface {
	Upload(ctx context.Context, path string, r io.Reader) (publicURL string, err error)
}
