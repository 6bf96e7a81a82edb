package images

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["image"][0]
}

func TestStoreAcceptedTypes(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	for _, contentType := range []string{"image/png", "image/jpg", "image/jpeg"} {
		path, err := m.Store(fileHeader(t, "photo.png", contentType, []byte("binary")))
		require.NoError(t, err, contentType)

		assert.True(t, strings.HasSuffix(path, "-photo.png"), "path %q keeps original filename", path)
		data, err := os.ReadFile(filepath.FromSlash(path))
		require.NoError(t, err)
		assert.Equal(t, []byte("binary"), data)
	}
}

func TestStoreRejectsNonImageTypes(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)

	_, err = m.Store(fileHeader(t, "evil.exe", "application/octet-stream", []byte("nope")))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected upload must not leave a file behind")
}

func TestRemoveDeletesAsset(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	path, err := m.Store(fileHeader(t, "gone.jpg", "image/jpeg", []byte("x")))
	require.NoError(t, err)

	m.Remove(path)
	_, err = os.Stat(filepath.FromSlash(path))
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveMissingAssetIsBestEffort(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	// Must not panic or propagate anything.
	m.Remove(filepath.Join(t.TempDir(), "never-existed.png"))
}

func TestNewManagerCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")

	_, err := NewManager(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
