package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// ErrRemoteAccountNotFound is returned by DeleteAccount when the upload
// service reports no such auth account.
var ErrRemoteAccountNotFound = errors.New("auth account not found")

// UploadRejectedError is a 4xx answer from the upload service, such as a
// wrong file type or an oversized file.
type UploadRejectedError struct {
	Status  int
	Message string
}

func (e *UploadRejectedError) Error() string {
	return fmt.Sprintf("upload rejected (%d): %s", e.Status, e.Message)
}

// uploadEnvelope covers both the success and failure bodies.
type uploadEnvelope struct {
	Success bool `json:"success"`
	dto.UploadedImage
	Images []dto.UploadedImage `json:"images"`
	Error  string              `json:"error"`
}

// UploadClient talks to the upload service over HTTP. It implements
// ImageUploader and AccountRemover.
type UploadClient struct {
	baseURL string
	timeout time.Duration
}

func NewUploadClient(baseURL string, timeout time.Duration) *UploadClient {
	return &UploadClient{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

func (c *UploadClient) UploadPhoto(file dto.ImageFile) (*dto.UploadedImage, error) {
	env, err := c.postImages("/api/court-cases/upload", "photo", []dto.ImageFile{file})
	if err != nil {
		return nil, err
	}
	img := env.UploadedImage
	return &img, nil
}

func (c *UploadClient) UploadPhotos(files []dto.ImageFile) ([]dto.UploadedImage, error) {
	env, err := c.postImages("/api/court-cases/upload-multiple", "photos", files)
	if err != nil {
		return nil, err
	}
	return env.Images, nil
}

// DeleteAccount asks the upload service to remove the auth account.
func (c *UploadClient) DeleteAccount(uid string) error {
	a := fiber.Delete(c.baseURL + "/api/users/" + url.PathEscape(uid))
	a.Timeout(c.timeout)

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("delete account request: %w", errors.Join(errs...))
	}

	var resp dto.AccountDeleteResponse
	decodeErr := json.Unmarshal(body, &resp)
	switch {
	case code == fiber.StatusNotFound:
		return ErrRemoteAccountNotFound
	case code < 300 && decodeErr != nil:
		return fmt.Errorf("delete account: decode response: %w", decodeErr)
	case code >= 300 || !resp.Success:
		msg := resp.Error
		if msg == "" {
			msg = string(body)
		}
		return fmt.Errorf("delete account: status %d: %s", code, msg)
	}
	return nil
}

func (c *UploadClient) postImages(path, field string, files []dto.ImageFile) (*uploadEnvelope, error) {
	body, contentType, err := multipartBody(field, files)
	if err != nil {
		return nil, err
	}

	a := fiber.Post(c.baseURL + path)
	a.Timeout(c.timeout)
	a.ContentType(contentType)
	a.Body(body)

	code, respBody, errs := a.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("upload request: %w", errors.Join(errs...))
	}

	var env uploadEnvelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("upload response (status %d): %w", code, err)
	}
	if code >= 400 && code < 500 {
		return nil, &UploadRejectedError{Status: code, Message: env.Error}
	}
	if code >= 300 || !env.Success {
		return nil, fmt.Errorf("upload failed with status %d: %s", code, env.Error)
	}
	return &env, nil
}

// multipartBody builds the form by hand so each part carries the file's
// declared media type; the upload service validates on it.
func multipartBody(field string, files []dto.ImageFile) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.Name))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("build multipart body: %w", err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", fmt.Errorf("build multipart body: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("build multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
