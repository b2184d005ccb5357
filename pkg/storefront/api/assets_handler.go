package api

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/wishyoulucky/storefront/pkg/storefront"
)

// maxUploadBytes caps multipart form memory; larger parts spill to disk.
const maxUploadBytes = 32 << 20

// AssetsHandler handles HTTP requests for publishing binary assets
type AssetsHandler struct {
	publisher *storefront.Publisher
}

// NewAssetsHandler creates a new assets handler
func NewAssetsHandler(publisher *storefront.Publisher) *AssetsHandler {
	return &AssetsHandler{publisher: publisher}
}

// Routes returns the routes for assets
func (h *AssetsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.UploadAsset)
	r.Post("/batch", h.UploadAssets)

	return r
}

// UploadAssetResponse is the response body for a published asset
type UploadAssetResponse struct {
	Key     string `json:"key"`
	URL     string `json:"url"`
	Backend string `json:"backend"`
}

// BatchItemResponse is the per-file entry of a batch upload response
type BatchItemResponse struct {
	FileName string `json:"file_name"`
	Key      string `json:"key,omitempty"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// UploadAsset publishes one multipart file and returns its key and public URL.
// Form fields: "file" (required), "folder" and "file_name" (optional).
func (h *AssetsHandler) UploadAsset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Missing file part", "error", err)
		http.Error(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer part.Close()

	result, err := h.publisher.Upload(r.Context(), fileFromPart(part, header), storefront.UploadOptions{
		Folder:   r.FormValue("folder"),
		FileName: r.FormValue("file_name"),
		Backend:  r.FormValue("backend"),
	})
	if err != nil {
		writeUploadError(w, err)
		return
	}

	slog.Info("Asset published", "key", result.Key, "backend", result.Backend)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, UploadAssetResponse{
		Key:     result.Key,
		URL:     result.URL,
		Backend: result.Backend,
	})
}

// UploadAssets publishes every "files" part into one folder, continuing past
// per-file failures. Responds 207 when any file failed.
func (h *AssetsHandler) UploadAssets(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File["files"]
	}
	if len(headers) == 0 {
		http.Error(w, "No files provided", http.StatusBadRequest)
		return
	}

	files := make([]storefront.File, 0, len(headers))
	parts := make([]multipart.File, 0, len(headers))
	for _, header := range headers {
		part, err := header.Open()
		if err != nil {
			slog.Error("Failed to open file part", "file_name", header.Filename, "error", err)
			http.Error(w, "Invalid file part", http.StatusBadRequest)
			for _, p := range parts {
				p.Close()
			}
			return
		}
		parts = append(parts, part)
		files = append(files, fileFromPart(part, header))
	}
	defer func() {
		for _, p := range parts {
			p.Close()
		}
	}()

	results := h.publisher.UploadAll(r.Context(), files, storefront.UploadOptions{
		Folder:  r.FormValue("folder"),
		Backend: r.FormValue("backend"),
	})

	resp := make([]BatchItemResponse, 0, len(results))
	failed := 0
	for _, res := range results {
		item := BatchItemResponse{FileName: res.FileName}
		if res.Err != nil {
			failed++
			item.Error = res.Err.Error()
		} else {
			item.Key = res.Result.Key
			item.URL = res.Result.URL
		}
		resp = append(resp, item)
	}

	status := http.StatusCreated
	if failed > 0 {
		status = http.StatusMultiStatus
		slog.Warn("Batch upload partially failed", "total", len(results), "failed", failed)
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}

func fileFromPart(part multipart.File, header *multipart.FileHeader) storefront.File {
	return storefront.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      part,
	}
}

func writeUploadError(w http.ResponseWriter, err error) {
	var uploadErr *storefront.UploadError
	var storageErr *storefront.StorageError
	switch {
	case errors.Is(err, storefront.ErrInvalidInput):
		slog.Error("Rejected upload", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storefront.ErrStorageBackendNotFound):
		slog.Error("Unknown storage backend", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &uploadErr), errors.As(err, &storageErr):
		slog.Error("Storage backend failure", "error", err)
		http.Error(w, "Upload failed", http.StatusBadGateway)
	default:
		slog.Error("Failed to publish asset", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
