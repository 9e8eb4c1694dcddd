package actions

import (
	"context"
	"net/http"
	"strings"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/registry"
)

func (h *handlers) analyticsDefinitions() []registry.Definition {
	return []registry.Definition{
		{
			Action: model.CommandAction{
				ID:          GenerateReport,
				Title:       "Generate Report",
				Description: "Build an analytics, financial, user or fleet report",
				Category:    model.CategoryAnalytics,
				Keywords:    []string{"report", "generate", "analytics", "data"},
				Impact:      model.ImpactLow,
				Fields: []model.Field{
					{Name: "type", Label: "Report Type", Type: model.FieldSelect, Required: true, Options: []model.Option{
						{Value: "analytics", Label: "Analytics"},
						{Value: "financial", Label: "Financial"},
						{Value: "users", Label: "Users"},
						{Value: "fleet", Label: "Fleet"},
					}},
					{Name: "format", Label: "Format", Type: model.FieldSelect, Required: true, Options: []model.Option{
						{Value: "pdf", Label: "PDF"},
						{Value: "csv", Label: "CSV"},
						{Value: "excel", Label: "Excel"},
					}},
				},
				SuccessMessage: "Report generated successfully!",
				FailureMessage: "Failed to generate report",
			},
			Handler: h.generateReport,
		},
		{
			Action: model.CommandAction{
				ID:          ExportData,
				Title:       "Export Data",
				Description: "Download platform data in CSV, Excel or JSON",
				Category:    model.CategoryAnalytics,
				Keywords:    []string{"export", "data", "csv", "excel"},
				Impact:      model.ImpactLow,
				Fields: []model.Field{
					{Name: "dataType", Label: "Data Type", Type: model.FieldSelect, Required: true, Options: []model.Option{
						{Value: "users", Label: "Users"},
						{Value: "vehicles", Label: "Vehicles"},
						{Value: "payments", Label: "Payments"},
						{Value: "analytics", Label: "Analytics"},
					}},
					{Name: "format", Label: "Export Format", Type: model.FieldSelect, Required: true, Options: []model.Option{
						{Value: "csv", Label: "CSV"},
						{Value: "excel", Label: "Excel"},
						{Value: "json", Label: "JSON"},
					}},
				},
				SuccessMessage: "Data exported successfully!",
				FailureMessage: "Failed to export data",
			},
			Handler: h.exportData,
		},
	}
}

func (h *handlers) generateReport(ctx context.Context, data model.FormData) (*model.Outcome, error) {
	kind := strings.TrimSpace(data.Get("type"))
	payload := map[string]string{
		"type":   kind,
		"format": strings.TrimSpace(data.Get("format")),
	}
	var report entity
	if err := h.call(ctx, http.MethodPost, "/api/reports/"+pathID(kind), payload, &report); err != nil {
		return nil, err
	}
	return &model.Outcome{Data: report}, nil
}

func (h *handlers) exportData(ctx context.Context, data model.FormData) (*model.Outcome, error) {
	payload := map[string]string{
		"dataType": strings.TrimSpace(data.Get("dataType")),
		"format":   strings.TrimSpace(data.Get("format")),
	}
	var export entity
	if err := h.call(ctx, http.MethodPost, "/api/exports", payload, &export); err != nil {
		return nil, err
	}
	return &model.Outcome{Data: export}, nil
}
