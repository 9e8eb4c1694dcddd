package core

import (
	"context"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
)

// Notifier shows toast notifications to the operator.
// Implementations must not block the caller for long and never fail the action.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

// ReportStore archives the per-item results of batch executions.
type ReportStore interface {
	// SaveReport persists the report and returns the key it is stored under.
	SaveReport(ctx context.Context, report *model.BatchReport) (string, error)
}
