// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	recognition "github.com/okian/tribute/internal/adapters/recognition"
	service "github.com/okian/tribute/internal/app"
	"github.com/okian/tribute/internal/domain/model"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to disk.
const multipartMemory = 32 << 20

// RecognizeDependencies defines the interface for batch processing.
type RecognizeDependencies interface {
	ProcessBatch(ctx context.Context, category model.Category, images []model.Image) (model.BatchSummary, error)
}

// RecognizeHandler handles screenshot upload requests.
type RecognizeHandler struct {
	deps           RecognizeDependencies
	maxImageBytes  int64
	maxBatchImages int
}

// NewRecognizeHandler creates a new recognize handler.
func NewRecognizeHandler(deps RecognizeDependencies, maxImageBytes int64, maxBatchImages int) *RecognizeHandler {
	return &RecognizeHandler{
		deps:           deps,
		maxImageBytes:  maxImageBytes,
		maxBatchImages: maxBatchImages,
	}
}

// HandleRecognize handles POST /recognize/{category} requests. The body
// is multipart form data; every screenshot rides under the "images" field.
func (h *RecognizeHandler) HandleRecognize(w http.ResponseWriter, r *http.Request) {
	const op = "api.recognize"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	category := model.Category(strings.TrimPrefix(r.URL.Path, "/recognize/"))
	if !category.Valid() {
		writeError(w, http.StatusBadRequest, "unknown_category", NewKind(op, ErrBadRequest))
		return
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "bad_multipart", WrapKind(op, ErrBadRequest, err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no_images", NewKind(op, ErrBadRequest))
		return
	}
	if len(files) > h.maxBatchImages {
		writeError(w, http.StatusBadRequest, "too_many_images", NewKind(op, ErrBadRequest))
		return
	}

	images := make([]model.Image, 0, len(files))
	for _, fh := range files {
		if fh.Size > h.maxImageBytes {
			writeError(w, http.StatusRequestEntityTooLarge, "image_too_large", NewKind(op, ErrPayloadTooLarge))
			return
		}
		part, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_upload", WrapKind(op, ErrBadRequest, err))
			return
		}
		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_upload", WrapKind(op, ErrBadRequest, err))
			return
		}

		mime := fh.Header.Get("Content-Type")
		if mime == "" {
			mime = http.DetectContentType(data)
		}
		if !strings.HasPrefix(mime, "image/") {
			writeError(w, http.StatusBadRequest, "unsupported_media", NewKind(op, ErrBadRequest))
			return
		}

		images = append(images, model.Image{
			ID:   uuid.NewString(),
			Name: fh.Filename,
			MIME: mime,
			Data: data,
		})
	}

	summary, err := h.deps.ProcessBatch(r.Context(), category, images)
	switch {
	case errors.Is(err, recognition.ErrMissingCredential):
		writeError(w, http.StatusServiceUnavailable, "missing_credential", WrapKind(op, ErrUnavailable, err))
		return
	case errors.Is(err, service.ErrBatchTooLarge):
		writeError(w, http.StatusBadRequest, "too_many_images", WrapKind(op, ErrBadRequest, err))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
