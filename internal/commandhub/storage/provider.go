package storage

import (
	"context"
	"time"

	"github.com/autopeer-io/commandhub/internal/commandhub/core"
)

// Provider is the batch report archive.
type Provider interface {
	core.ReportStore

	// ReportURL returns a temporary download link for the report of an execution.
	ReportURL(ctx context.Context, executionID string, expiry time.Duration) (string, error)

	// CheckBucket makes sure the bucket exists, creating it if needed.
	CheckBucket(ctx context.Context) error
}
