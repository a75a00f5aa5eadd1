package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGHandlerStoresErrors(t *testing.T) {
	db := dbtest.Open(t)
	h := NewPGHandler(db, "uploader")
	logger := slog.New(h).With("request_id", "req-1")

	logger.Info("not stored")
	logger.Error("photo upload failed",
		"uid", "u-42",
		"action", "upload",
		"error", errors.New("disk full"),
		"latency_ms", 12.4,
		"path", "/api/court-cases/upload",
	)
	h.Stop()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)

	got := logs[0]
	assert.Equal(t, "ERROR", got.Level)
	assert.Equal(t, "photo upload failed", got.Message)
	assert.Equal(t, "uploader", got.Service)
	assert.Equal(t, "req-1", got.RequestID)
	require.NotNil(t, got.UID)
	assert.Equal(t, "u-42", *got.UID)
	assert.Equal(t, "upload", got.Action)
	assert.Equal(t, "disk full", got.Error)
	assert.Equal(t, 12, got.LatencyMs)
	assert.JSONEq(t, `{"path":"/api/court-cases/upload"}`, string(got.Extra))
}

func TestMultiHandlerFansOut(t *testing.T) {
	db := dbtest.Open(t)
	pg := NewPGHandler(db, "server")
	logger := slog.New(NewMultiHandler(slog.NewTextHandler(discard{}, nil), pg))

	logger.Warn("below threshold")
	logger.Error("stored")
	pg.Stop()

	var n int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestPurgeOlderThan(t *testing.T) {
	db := dbtest.Open(t)
	now := time.Now()
	for _, age := range []time.Duration{40 * 24 * time.Hour, 31 * 24 * time.Hour, time.Hour} {
		require.NoError(t, db.Create(&models.SystemLog{
			ID: uuid.New(), Timestamp: now.Add(-age), Level: "ERROR", Message: "x",
		}).Error)
	}

	deleted, err := PurgeOlderThan(db, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestMultiHandlerKeepsDeliveringAfterFailure(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(failingHandler{slog.NewTextHandler(discard{}, nil)}, slog.NewTextHandler(&buf, nil))

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "still written", 0))
	assert.EqualError(t, err, "sink down")
	assert.Contains(t, buf.String(), "still written")
}
