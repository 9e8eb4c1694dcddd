package core

import (
	"context"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
)

// Backend is the admin REST API the effects act on.
// It is implemented by the HTTP client in the backend package.
type Backend interface {
	// PerformAction sends payload as JSON to endpoint and decodes the response envelope.
	// A transport failure, a non-2xx status or success=false is returned as an error.
	PerformAction(ctx context.Context, method, endpoint string, payload any) (*model.Result, error)
}
