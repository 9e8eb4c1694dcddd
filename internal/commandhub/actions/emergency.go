package actions

import (
	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/registry"
)

func (h *handlers) emergencyDefinitions() []registry.Definition {
	return []registry.Definition{
		{
			Action: model.CommandAction{
				ID:                   IncidentResponse,
				Title:                "Activate Incident Response Protocol",
				Description:          "Notify all emergency contacts and start crisis management procedures",
				Category:             model.CategoryEmergency,
				Keywords:             []string{"incident", "emergency", "response", "protocol"},
				Impact:               model.ImpactCritical,
				RequiresConfirmation: true,
				SuccessMessage:       "Incident response protocol activated!",
				FailureMessage:       "Failed to activate incident response protocol",
			},
			Handler: h.post("/api/emergency/incident-response"),
		},
		{
			Action: model.CommandAction{
				ID:                   WarRoomMode,
				Title:                "Enter War Room Mode",
				Description:          "Open the crisis management dashboard and emergency protocols",
				Category:             model.CategoryEmergency,
				Keywords:             []string{"war", "room", "crisis", "management"},
				Impact:               model.ImpactCritical,
				RequiresConfirmation: true,
				SuccessMessage:       "War Room Mode activated!",
				FailureMessage:       "Failed to enter War Room Mode",
			},
			Handler: h.post("/api/emergency/war-room"),
		},
	}
}
