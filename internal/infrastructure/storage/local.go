package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"tigawane/internal/errs"
	"tigawane/internal/ports"
)

// Store keeps uploads on local disk under a root directory and returns URLs
// below a configured base path. The HTTP server mounts the root as a static
// file tree at that base path.
type Store struct {
	root    string
	baseURL string
}

var _ ports.ObjectStore = (*Store)(nil)

func NewStore(root, baseURL string) *Store {
	return &Store{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *Store) Upload(ctx context.Context, objectPath string, r io.Reader) (string, error) {
	if ctx == nil {
		return "", errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", errs.Wrap(err, "check context")
	}

	cleaned, err := cleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}

	target := filepath.Join(s.root, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", errs.Wrapf(err, "create upload directory for %q", cleaned)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", errs.Wrapf(err, "create upload file %q", cleaned)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", errs.Wrapf(err, "write upload %q", cleaned)
	}
	if err := f.Close(); err != nil {
		return "", errs.Wrapf(err, "flush upload %q", cleaned)
	}

	return s.baseURL + "/" + cleaned, nil
}

func cleanObjectPath(objectPath string) (string, error) {
	cleaned := path.Clean(strings.TrimPrefix(objectPath, "/"))
	if cleaned == "." || cleaned == "" {
		return "", errors.New("object path is required")
	}
	if strings.HasPrefix(cleaned, "..") {
		return "", errors.New("object path escapes the storage root")
	}
	return cleaned, nil
}
