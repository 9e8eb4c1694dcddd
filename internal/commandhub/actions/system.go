package actions

import (
	"context"
	"net/http"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/registry"
)

func (h *handlers) systemDefinitions() []registry.Definition {
	return []registry.Definition{
		{
			Action: model.CommandAction{
				ID:             SystemHealthCheck,
				Title:          "System Health Check",
				Description:    "Run diagnostics across platform services",
				Category:       model.CategorySystem,
				Keywords:       []string{"health", "check", "diagnostics", "system"},
				Impact:         model.ImpactLow,
				SuccessMessage: "System health check completed! Check the system health dashboard for details.",
				FailureMessage: "Failed to run system health check. Please try again.",
			},
			Handler: h.systemHealthCheck,
		},
		{
			Action: model.CommandAction{
				ID:             ClearCache,
				Title:          "Clear Cache",
				Description:    "Flush cached data on all services",
				Category:       model.CategorySystem,
				Keywords:       []string{"cache", "clear", "temp", "data"},
				Impact:         model.ImpactMedium,
				SuccessMessage: "System cache cleared successfully!",
				FailureMessage: "Failed to clear cache. Please try again.",
			},
			Handler: h.post("/api/system/cache/clear"),
		},
		{
			Action: model.CommandAction{
				ID:             BackupSystem,
				Title:          "Backup System",
				Description:    "Start a full backup of platform data",
				Category:       model.CategorySystem,
				Keywords:       []string{"backup", "system", "data", "save"},
				Impact:         model.ImpactHigh,
				SuccessMessage: "System backup initiated! You will be notified when complete.",
				FailureMessage: "Failed to create backup. Please try again.",
			},
			Handler: h.post("/api/system/backup"),
		},
	}
}

func (h *handlers) systemHealthCheck(ctx context.Context, _ model.FormData) (*model.Outcome, error) {
	var health entity
	if err := h.call(ctx, http.MethodGet, "/api/system/health", nil, &health); err != nil {
		return nil, err
	}
	return &model.Outcome{Data: health}, nil
}

// post returns a handler that POSTs an empty body to endpoint and returns the response data.
func (h *handlers) post(endpoint string) registry.Handler {
	return func(ctx context.Context, _ model.FormData) (*model.Outcome, error) {
		var out entity
		if err := h.call(ctx, http.MethodPost, endpoint, nil, &out); err != nil {
			return nil, err
		}
		return &model.Outcome{Data: out}, nil
	}
}
