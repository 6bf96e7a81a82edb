// Package images stores the uploaded image assets that posts reference
// by path. Assets live outside the document store; removal is best-effort.
package images

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"feedboard/logger"
)

// ErrUnsupportedType marks uploads whose MIME type is not an accepted
// image type. Callers drop such uploads silently, mirroring a rejected
// multipart part that was never attached.
var ErrUnsupportedType = errors.New("unsupported image type")

type Manager struct {
	dir string
}

func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Manager{dir: dir}, nil
}

func acceptedType(contentType string) bool {
	switch contentType {
	case "image/png", "image/jpg", "image/jpeg":
		return true
	}
	return false
}

// Store persists an uploaded file under a name derived from the current
// timestamp and the original filename, and returns the asset path a post
// records as its imageUrl.
func (m *Manager) Store(fh *multipart.FileHeader) (string, error) {
	if !acceptedType(fh.Header.Get("Content-Type")) {
		return "", ErrUnsupportedType
	}

	name := time.Now().UTC().Format("2006-01-02T15-04-05.000000000") + "-" + filepath.Base(fh.Filename)
	dst := filepath.Join(m.dir, name)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	return filepath.ToSlash(dst), nil
}

// Remove unlinks a stored asset. Failure is logged and never surfaced;
// callers invoke Remove detached so it cannot block or fail the request
// it belongs to.
func (m *Manager) Remove(assetPath string) {
	if err := os.Remove(filepath.FromSlash(assetPath)); err != nil {
		logger.Log.Warnw("failed to remove image asset", "path", assetPath, "error", err)
	}
}
