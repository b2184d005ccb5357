package fs_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wishyoulucky/storefront/pkg/storefront"
	fsstorage "github.com/wishyoulucky/storefront/pkg/storefront/storage/fs"
)

func newTestBackend(t *testing.T, urlPrefix string) (storefront.BlobStore, string) {
	t.Helper()
	baseDir := t.TempDir()
	backend, err := fsstorage.New(fsstorage.Config{
		BaseDir:   baseDir,
		URLPrefix: urlPrefix,
	})
	require.NoError(t, err)
	return backend, baseDir
}

func TestFSBackendNew(t *testing.T) {
	t.Run("requires base directory", func(t *testing.T) {
		_, err := fsstorage.New(fsstorage.Config{})
		assert.Error(t, err)
	})

	t.Run("creates base directory", func(t *testing.T) {
		baseDir := filepath.Join(t.TempDir(), "nested", "storage")
		_, err := fsstorage.New(fsstorage.Config{BaseDir: baseDir})
		require.NoError(t, err)

		info, err := os.Stat(baseDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestFSBackend(t *testing.T) {
	ctx := context.Background()
	backend, baseDir := newTestBackend(t, "https://assets.example.com")
	key := "category-banners/test.png"

	t.Run("Upload", func(t *testing.T) {
		err := backend.Upload(ctx, strings.NewReader("payload"), storefront.UploadParams{
			ObjectKey: key,
			Overwrite: true,
		})
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(baseDir, "category-banners", "test.png"))
		assert.NoError(t, err)
	})

	t.Run("Download", func(t *testing.T) {
		reader, err := backend.Download(ctx, key)
		require.NoError(t, err)
		defer reader.Close()

		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("PublicURL", func(t *testing.T) {
		url, err := backend.PublicURL(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "https://assets.example.com/"+key, url)
	})

	t.Run("GetObjectMeta", func(t *testing.T) {
		meta, err := backend.GetObjectMeta(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, key, meta.Key)
		assert.Equal(t, int64(len("payload")), meta.Size)
		assert.NotEmpty(t, meta.ContentType)
	})

	t.Run("OverwriteReplaces", func(t *testing.T) {
		err := backend.Upload(ctx, strings.NewReader("replaced"), storefront.UploadParams{
			ObjectKey: key,
			Overwrite: true,
		})
		require.NoError(t, err)

		reader, err := backend.Download(ctx, key)
		require.NoError(t, err)
		defer reader.Close()
		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "replaced", string(data))
	})

	t.Run("NoOverwriteRejectsExisting", func(t *testing.T) {
		err := backend.Upload(ctx, strings.NewReader("again"), storefront.UploadParams{
			ObjectKey: key,
		})
		assert.Error(t, err)
	})

	t.Run("Delete", func(t *testing.T) {
		err := backend.Delete(ctx, key)
		require.NoError(t, err)

		_, err = backend.Download(ctx, key)
		assert.ErrorIs(t, err, storefront.ErrObjectNotFound)

		// Parent directory was cleaned up once empty.
		_, err = os.Stat(filepath.Join(baseDir, "category-banners"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		err := backend.Delete(ctx, "missing/key.png")
		assert.ErrorIs(t, err, storefront.ErrObjectNotFound)
	})
}

func TestFSBackendPublicURLRequiresPrefix(t *testing.T) {
	backend, _ := newTestBackend(t, "")

	_, err := backend.PublicURL(context.Background(), "a/b.png")
	assert.Error(t, err)
}
