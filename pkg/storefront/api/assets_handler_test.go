package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wishyoulucky/storefront/pkg/storefront"
	"github.com/wishyoulucky/storefront/pkg/storefront/api"
	"github.com/wishyoulucky/storefront/pkg/storefront/objectkey"
	memorystorage "github.com/wishyoulucky/storefront/pkg/storefront/storage/memory"
)

func newAssetsServer(t *testing.T) *httptest.Server {
	t.Helper()

	keys := &objectkey.Generator{
		Folder:  "category-banners",
		NewName: func() string { return "generated" },
	}
	publisher, err := storefront.NewPublisher(
		storefront.WithBlobStore("memory", memorystorage.New()),
		storefront.WithKeyGenerator(keys),
	)
	require.NoError(t, err)

	server := httptest.NewServer(api.NewAssetsHandler(publisher).Routes())
	t.Cleanup(server.Close)
	return server
}

func multipartBody(t *testing.T, field, fileName, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadAsset(t *testing.T) {
	t.Run("publishes file and returns key and url", func(t *testing.T) {
		server := newAssetsServer(t)
		body, contentType := multipartBody(t, "file", "banner.png", "image-bytes", nil)

		resp, err := http.Post(server.URL+"/", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var result api.UploadAssetResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, "category-banners/generated.png", result.Key)
		assert.NotEmpty(t, result.URL)
		assert.True(t, strings.HasSuffix(result.URL, result.Key))
		assert.Equal(t, "memory", result.Backend)
	})

	t.Run("folder and file_name override defaults", func(t *testing.T) {
		server := newAssetsServer(t)
		body, contentType := multipartBody(t, "file", "banner.webp", "image-bytes", map[string]string{
			"folder":    "product-images",
			"file_name": "hero",
		})

		resp, err := http.Post(server.URL+"/", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var result api.UploadAssetResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, "product-images/hero.webp", result.Key)
	})

	t.Run("missing file part is rejected", func(t *testing.T) {
		server := newAssetsServer(t)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("folder", "banners"))
		require.NoError(t, writer.Close())

		resp, err := http.Post(server.URL+"/", writer.FormDataContentType(), body)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		server := newAssetsServer(t)
		body, contentType := multipartBody(t, "file", "a.png", "data", map[string]string{
			"backend": "missing",
		})

		resp, err := http.Post(server.URL+"/", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("non-multipart body is rejected", func(t *testing.T) {
		server := newAssetsServer(t)

		resp, err := http.Post(server.URL+"/", "application/json", strings.NewReader("{}"))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUploadAssetsBatch(t *testing.T) {
	t.Run("publishes every file", func(t *testing.T) {
		server := newAssetsServer(t)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		for _, name := range []string{"a.png", "b.webp"} {
			part, err := writer.CreateFormFile("files", name)
			require.NoError(t, err)
			_, err = part.Write([]byte("data"))
			require.NoError(t, err)
		}
		require.NoError(t, writer.WriteField("folder", "banners"))
		require.NoError(t, writer.Close())

		resp, err := http.Post(server.URL+"/batch", writer.FormDataContentType(), body)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var results []api.BatchItemResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
		require.Len(t, results, 2)
		assert.Equal(t, "a.png", results[0].FileName)
		assert.True(t, strings.HasPrefix(results[0].Key, "banners/"))
		assert.Empty(t, results[0].Error)
		assert.True(t, strings.HasSuffix(results[1].Key, ".webp"))
	})

	t.Run("empty batch is rejected", func(t *testing.T) {
		server := newAssetsServer(t)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("folder", "banners"))
		require.NoError(t, writer.Close())

		resp, err := http.Post(server.URL+"/batch", writer.FormDataContentType(), body)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
