package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/ecommerce-admin/backend/internal/api/middleware"
	"github.com/ecommerce-admin/backend/internal/errors"
	"github.com/ecommerce-admin/backend/internal/utils"
	"github.com/ecommerce-admin/backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// maxUploadSize caps product images at 10 MiB.
const maxUploadSize = 10 << 20

// ObjectStore is the slice of pkg/objectstore.Client the upload endpoints use.
type ObjectStore interface {
	Upload(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

type UploadHandler struct {
	store     ObjectStore
	validator *validator.Validate
}

func NewUploadHandler(store ObjectStore) *UploadHandler {
	return &UploadHandler{store: store, validator: validator.New()}
}

type deleteFileRequest struct {
	FileURL string `json:"fileUrl" validate:"required,url"`
}

type uploadFileResponse struct {
	ImageURL string `json:"imageUrl"`
}

func (h *UploadHandler) UploadFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			response.Error(w, errors.BadRequestError("Invalid multipart form").WithError(err))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			response.Error(w, errors.BadRequestError("Missing file field").WithError(err))
			return
		}
		defer file.Close()

		imageURL, err := h.store.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
		if err != nil {
			logger.Error("File upload failed", slog.String("error", err.Error()))
			response.Error(w, errors.ThirdPartyError("Failed to upload file").WithError(err))
			return
		}

		logger.Info("File uploaded", slog.String("imageUrl", imageURL))
		response.Success(w, http.StatusCreated, uploadFileResponse{ImageURL: imageURL})
	}
}

func (h *UploadHandler) DeleteFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req deleteFileRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		if err := h.store.Delete(r.Context(), req.FileURL); err != nil {
			logger.Error("File deletion failed", slog.String("error", err.Error()))
			response.Error(w, errors.ThirdPartyError("Failed to delete file").WithError(err))
			return
		}

		logger.Info("File deleted", slog.String("fileUrl", req.FileURL))
		response.NoContent(w)
	}
}
