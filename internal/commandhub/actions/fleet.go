package actions

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/executor"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/registry"
)

const vehicleStatusMaintenance = "maintenance"

func (h *handlers) fleetDefinitions() []registry.Definition {
	return []registry.Definition{
		{
			Action: model.CommandAction{
				ID:                   PauseVehicle,
				Title:                "Pause Vehicle",
				Description:          "Take a single vehicle out of service",
				Category:             model.CategoryFleet,
				Keywords:             []string{"vehicle", "pause", "stop", "fleet"},
				Impact:               model.ImpactHigh,
				RequiresConfirmation: true,
				Fields: []model.Field{
					{Name: "vehicleId", Label: "Vehicle ID", Type: model.FieldText, Placeholder: "vehicle-123", Required: true},
				},
				SuccessMessage: "Vehicle paused successfully!",
				FailureMessage: "Failed to pause vehicle",
			},
			Handler: h.pauseVehicle,
		},
		{
			Action: model.CommandAction{
				ID:                   EmergencyStop,
				Title:                "Emergency Stop All Vehicles",
				Description:          "Immediately put every vehicle in the fleet into maintenance. This action cannot be undone.",
				Category:             model.CategoryFleet,
				Keywords:             []string{"emergency", "stop", "all", "fleet", "halt"},
				Impact:               model.ImpactCritical,
				RequiresConfirmation: true,
				FailureMessage:       "Failed to activate emergency stop",
			},
			Handler: h.emergencyStop,
		},
		{
			Action: model.CommandAction{
				ID:          ScheduleMaintenance,
				Title:       "Schedule Maintenance",
				Description: "Book a maintenance slot for a vehicle",
				Category:    model.CategoryFleet,
				Keywords:    []string{"maintenance", "schedule", "service", "repair"},
				Impact:      model.ImpactMedium,
				Fields: []model.Field{
					{Name: "vehicleId", Label: "Vehicle ID", Type: model.FieldText, Placeholder: "vehicle-123", Required: true},
					{Name: "type", Label: "Maintenance Type", Type: model.FieldSelect, Required: true, Options: []model.Option{
						{Value: "routine", Label: "Routine"},
						{Value: "emergency", Label: "Emergency"},
						{Value: "inspection", Label: "Inspection"},
					}},
					{Name: "description", Label: "Description", Type: model.FieldTextarea, Placeholder: "Additional maintenance details"},
				},
				SuccessMessage: "Maintenance scheduled successfully!",
				FailureMessage: "Failed to schedule maintenance",
			},
			Handler: h.scheduleMaintenance,
		},
	}
}

func (h *handlers) pauseVehicle(ctx context.Context, data model.FormData) (*model.Outcome, error) {
	id := pathID(data.Get("vehicleId"))
	vehicle, err := h.get(ctx, "/api/fleet/vehicles/"+id, "Vehicle not found!")
	if err != nil {
		return nil, err
	}
	var updated entity
	if err := h.call(ctx, http.MethodPut, "/api/fleet/vehicles/"+id, vehicle.with("status", vehicleStatusMaintenance), &updated); err != nil {
		return nil, err
	}
	return &model.Outcome{Data: updated}, nil
}

// emergencyStop puts every vehicle with an id into maintenance, one at a time.
// Vehicles that fail are reported per item; the others stay stopped.
func (h *handlers) emergencyStop(ctx context.Context, _ model.FormData) (*model.Outcome, error) {
	var vehicles []entity
	if err := h.call(ctx, http.MethodGet, "/api/fleet/vehicles", nil, &vehicles); err != nil {
		return nil, err
	}

	byID := make(map[string]entity, len(vehicles))
	ids := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		id := v.id()
		if id == "" {
			continue
		}
		byID[id] = v
		ids = append(ids, id)
	}

	out := executor.FanOut(ctx, ids, func(ctx context.Context, id string) error {
		return h.call(ctx, http.MethodPut, "/api/fleet/vehicles/"+pathID(id), byID[id].with("status", vehicleStatusMaintenance), nil)
	})
	out.Message = fmt.Sprintf("Emergency stop activated for %d vehicles!", model.CountSucceeded(out.Items))
	return out, nil
}

func (h *handlers) scheduleMaintenance(ctx context.Context, data model.FormData) (*model.Outcome, error) {
	kind := strings.TrimSpace(data.Get("type"))
	payload := map[string]string{
		"vehicleId":   strings.TrimSpace(data.Get("vehicleId")),
		"type":        kind,
		"description": orDefault(data.Get("description"), fmt.Sprintf("Scheduled %s maintenance", kind)),
		"status":      "scheduled",
	}
	var record entity
	if err := h.call(ctx, http.MethodPost, "/api/fleet/maintenance", payload, &record); err != nil {
		return nil, err
	}
	return &model.Outcome{Data: record}, nil
}
