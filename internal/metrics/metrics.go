// Package metrics holds the uploader's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upload results.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

var (
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "court_cases",
		Name:      "uploads_total",
		Help:      "Upload requests by endpoint and result.",
	}, []string{"endpoint", "result"})

	UploadedFiles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "court_cases",
		Name:      "uploaded_files_total",
		Help:      "Photos written to storage.",
	})

	UploadedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "court_cases",
		Name:      "upload_bytes_total",
		Help:      "Bytes of photos written to storage.",
	})

	AccountDeletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "court_cases",
		Name:      "account_deletions_total",
		Help:      "Auth account deletions by result.",
	}, []string{"result"})
)
