package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/dto"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/photos"
	"github.com/gofiber/fiber/v2"
)

const (
	msgNoFile       = "No file uploaded. Please select an image file."
	msgNoFiles      = "No files uploaded. Please select image files."
	msgInvalidType  = "Invalid file type. Only JPG, JPEG, PNG, and WebP files are allowed."
	msgTooLarge     = "File too large. Maximum size is 5MB."
	msgUploadFailed = "Internal server error during file upload"
)

var msgTooManyFiles = fmt.Sprintf("Too many files. Maximum is %d files.", photos.MaxFiles)

type UploadHandler struct {
	store photos.Store
	now   func() time.Time
}

func NewUploadHandler(store photos.Store) *UploadHandler {
	return &UploadHandler{store: store, now: time.Now}
}

func uploadError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.UploadErrorResponse{Success: false, Error: message})
}

// rejection returns the client message for a validation error.
func rejection(err error) string {
	switch {
	case errors.Is(err, photos.ErrInvalidType):
		return msgInvalidType
	case errors.Is(err, photos.ErrTooLarge):
		return msgTooLarge
	case errors.Is(err, photos.ErrTooManyFiles):
		return msgTooManyFiles
	}
	return err.Error()
}

// Upload stores the single file in field "photo".
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	const endpoint = "single"

	fh, err := c.FormFile("photo")
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(endpoint, metrics.ResultRejected).Inc()
		return uploadError(c, fiber.StatusBadRequest, msgNoFile)
	}
	if err := photos.Validate(fh.Header.Get(fiber.HeaderContentType), fh.Size); err != nil {
		metrics.UploadsTotal.WithLabelValues(endpoint, metrics.ResultRejected).Inc()
		return uploadError(c, fiber.StatusBadRequest, rejection(err))
	}

	img, err := h.save(c, fh, h.now())
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(endpoint, metrics.ResultError).Inc()
		slog.Error("photo upload failed", "action", "upload", "request_id", c.Locals("requestid"), "error", err)
		return uploadError(c, fiber.StatusInternalServerError, msgUploadFailed)
	}

	metrics.UploadsTotal.WithLabelValues(endpoint, metrics.ResultOK).Inc()
	return c.JSON(dto.UploadResponse{
		Success:       true,
		UploadedImage: *img,
		Message:       "Image uploaded successfully",
	})
}

// UploadMultiple stores up to MaxFiles files from field "photos". Every
// file is validated before any is written.
func (h *UploadHandler) UploadMultiple(c *fiber.Ctx) error {
	const endpoint = "multiple"

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		files = form.File["photos"]
	}
	if len(files) == 0 {
		metrics.UploadsTotal.WithLabelValues(endpoint, metrics.ResultRejected).Inc()
		return uploadError(c, fiber.StatusBadRequest, msgNoFiles)
	}
	if len(files) > photos.MaxFiles {
		metrics.UploadsTotal.WithLabelValues(endpoint, metrics.ResultRejected).Inc()
		return uploadError(c, fiber.StatusBadRequest, rejection(photos.ErrTooManyFiles))
	}
	for _, fh := range files {
		if err := photos.Validate(fh.Header.Get(fiber.HeaderContentType), fh.Size); err != nil {
			metrics.UploadsTotal.WithLabelValues(endpoint, metrics.ResultRejected).Inc()
			return uploadError(c, fiber.StatusBadRequest, rejection(err))
		}
	}

	now := h.now()
	uploadedAt := now.UTC().Format(time.RFC3339Nano)
	images := make([]dto.UploadedImage, 0, len(files))
	for i, fh := range files {
		// Same-named files in one batch get distinct millisecond stamps.
		img, err := h.save(c, fh, now.Add(time.Duration(i)*time.Millisecond))
		if err != nil {
			metrics.UploadsTotal.WithLabelValues(endpoint, metrics.ResultError).Inc()
			slog.Error("photo upload failed",
				"action", "upload-multiple",
				"request_id", c.Locals("requestid"),
				"stored", len(images),
				"error", err,
			)
			return uploadError(c, fiber.StatusInternalServerError, msgUploadFailed)
		}
		img.UploadedAt = uploadedAt
		images = append(images, *img)
	}

	metrics.UploadsTotal.WithLabelValues(endpoint, metrics.ResultOK).Inc()
	return c.JSON(dto.MultiUploadResponse{
		Success: true,
		Images:  images,
		Count:   len(images),
		Message: fmt.Sprintf("%d image(s) uploaded successfully", len(images)),
	})
}

func (h *UploadHandler) save(c *fiber.Ctx, fh *multipart.FileHeader, at time.Time) (*dto.UploadedImage, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	contentType := fh.Header.Get(fiber.HeaderContentType)
	name := photos.StoredName(at, fh.Filename)
	if err := h.store.Save(c.UserContext(), name, contentType, fh.Size, src); err != nil {
		return nil, err
	}

	metrics.UploadedFiles.Inc()
	metrics.UploadedBytes.Add(float64(fh.Size))
	return &dto.UploadedImage{
		Filename:     name,
		OriginalName: fh.Filename,
		Size:         fh.Size,
		Mimetype:     contentType,
		URL:          h.store.URL(name),
	}, nil
}
