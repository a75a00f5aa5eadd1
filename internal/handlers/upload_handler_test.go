package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/dto"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/identity"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/photos"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type part struct {
	field, name, contentType string
	size                     int
}

func multipartRequest(t *testing.T, path string, parts ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.field, p.name))
		h.Set("Content-Type", p.contentType)
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(bytes.Repeat([]byte{'x'}, p.size))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func newUploadApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := photos.NewLocalStore(dir, "http://photos.test")
	require.NoError(t, err)

	h := NewUploadHandler(store)
	app := fiber.New(fiber.Config{BodyLimit: 64 * 1024 * 1024})
	app.Post("/api/court-cases/upload", h.Upload)
	app.Post("/api/court-cases/upload-multiple", h.UploadMultiple)
	return app, dir
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestUploadSingle(t *testing.T) {
	app, dir := newUploadApp(t)

	resp, err := app.Test(multipartRequest(t, "/api/court-cases/upload",
		part{"photo", "temple front.png", "image/png", 1024}), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode[dto.UploadResponse](t, resp)
	assert.True(t, body.Success)
	assert.Equal(t, "temple front.png", body.OriginalName)
	assert.EqualValues(t, 1024, body.Size)
	assert.Equal(t, "image/png", body.Mimetype)
	assert.Equal(t, "http://photos.test/photos/"+body.Filename, body.URL)
	assert.Regexp(t, `^\d+-temple_front\.png$`, body.Filename)

	data, err := os.ReadFile(filepath.Join(dir, body.Filename))
	require.NoError(t, err)
	assert.Len(t, data, 1024)
}

func TestUploadRejections(t *testing.T) {
	tests := []struct {
		name  string
		parts []part
		want  string
	}{
		{"wrong type", []part{{"photo", "doc.pdf", "application/pdf", 10}}, msgInvalidType},
		{"too large", []part{{"photo", "big.jpg", "image/jpeg", photos.MaxFileSize + 1}}, msgTooLarge},
		{"missing", []part{{"other", "a.png", "image/png", 10}}, msgNoFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, dir := newUploadApp(t)
			resp, err := app.Test(multipartRequest(t, "/api/court-cases/upload", tt.parts...), -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			body := decode[dto.UploadErrorResponse](t, resp)
			assert.False(t, body.Success)
			assert.Equal(t, tt.want, body.Error)
			assert.Empty(t, storedFiles(t, dir))
		})
	}
}

func TestUploadMultiple(t *testing.T) {
	app, dir := newUploadApp(t)

	resp, err := app.Test(multipartRequest(t, "/api/court-cases/upload-multiple",
		part{"photos", "a.png", "image/png", 10},
		part{"photos", "a.png", "image/png", 20},
		part{"photos", "c.webp", "image/webp", 30},
	), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode[dto.MultiUploadResponse](t, resp)
	assert.True(t, body.Success)
	assert.Equal(t, 3, body.Count)
	require.Len(t, body.Images, 3)
	assert.NotEqual(t, body.Images[0].Filename, body.Images[1].Filename)
	for _, img := range body.Images {
		assert.NotEmpty(t, img.UploadedAt)
	}
	assert.Equal(t, "3 image(s) uploaded successfully", body.Message)
	assert.Len(t, storedFiles(t, dir), 3)
}

func TestUploadMultipleValidatesBeforeWriting(t *testing.T) {
	app, dir := newUploadApp(t)

	resp, err := app.Test(multipartRequest(t, "/api/court-cases/upload-multiple",
		part{"photos", "ok.png", "image/png", 10},
		part{"photos", "bad.gif", "image/gif", 10},
	), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, msgInvalidType, decode[dto.UploadErrorResponse](t, resp).Error)
	assert.Empty(t, storedFiles(t, dir))
}

func TestUploadMultipleLimits(t *testing.T) {
	app, _ := newUploadApp(t)

	resp, err := app.Test(multipartRequest(t, "/api/court-cases/upload-multiple"), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, msgNoFiles, decode[dto.UploadErrorResponse](t, resp).Error)

	parts := make([]part, photos.MaxFiles+1)
	for i := range parts {
		parts[i] = part{"photos", fmt.Sprintf("%d.png", i), "image/png", 10}
	}
	resp, err = app.Test(multipartRequest(t, "/api/court-cases/upload-multiple", parts...), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.True(t, strings.HasPrefix(decode[dto.UploadErrorResponse](t, resp).Error, "Too many files"))
}

type fakeAccounts struct{ err error }

func (f fakeAccounts) DeleteAccount(uid string) error { return f.err }

func TestAccountDelete(t *testing.T) {
	tests := []struct {
		name     string
		accounts AccountRemover
		status   int
	}{
		{"deleted", fakeAccounts{}, fiber.StatusOK},
		{"unknown uid", fakeAccounts{err: identity.ErrAccountNotFound}, fiber.StatusNotFound},
		{"provider failure", fakeAccounts{err: errors.New("db down")}, fiber.StatusInternalServerError},
		{"not configured", nil, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Delete("/api/users/:uid", NewAccountHandler(tt.accounts).Delete)

			resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/users/u-1", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body := decode[dto.AccountDeleteResponse](t, resp)
			assert.Equal(t, tt.status == fiber.StatusOK, body.Success)
		})
	}
}
