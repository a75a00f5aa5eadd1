// Package photos validates, names and stores uploaded case images.
package photos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// MaxFileSize is the per-file upload limit (5 MiB).
const MaxFileSize = 5 * 1024 * 1024

// MaxFiles is the most files accepted by one multi upload.
const MaxFiles = 10

var AllowedTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

var (
	ErrInvalidType  = errors.New("invalid file type")
	ErrTooLarge     = errors.New("file too large")
	ErrTooManyFiles = errors.New("too many files")
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Store persists photos and reports where they can be fetched from.
type Store interface {
	Save(ctx context.Context, name, contentType string, size int64, body io.Reader) error
	URL(name string) string
}

// Validate checks a file's declared media type and size.
func Validate(contentType string, size int64) error {
	if !isAllowedType(contentType) {
		return ErrInvalidType
	}
	if size > MaxFileSize {
		return ErrTooLarge
	}
	return nil
}

func isAllowedType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	for _, t := range AllowedTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// StoredName builds "<unix millis>-<sanitized base><ext>". Two uploads of
// the same name in the same millisecond collide.
func StoredName(now time.Time, original string) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	stem = strings.Trim(unsafeChars.ReplaceAllString(stem, "_"), "_.")
	if stem == "" {
		stem = "photo"
	}
	ext = unsafeChars.ReplaceAllString(ext, "")

	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), stem, ext)
}
