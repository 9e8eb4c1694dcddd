package actions

import (
	"github.com/autopeer-io/commandhub/internal/commandhub/core"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/registry"
)

// Action ids of the built-in catalog.
const (
	CreateUser          = "create-user"
	SuspendUser         = "suspend-user"
	BulkUserImport      = "bulk-user-import"
	PauseVehicle        = "pause-vehicle"
	EmergencyStop       = "emergency-stop"
	ScheduleMaintenance = "schedule-maintenance"
	TriggerPayout       = "trigger-payout"
	FreezeTransactions  = "freeze-transactions"
	GenerateInvoice     = "generate-invoice"
	SystemHealthCheck   = "system-health-check"
	ClearCache          = "clear-cache"
	BackupSystem        = "backup-system"
	GenerateReport      = "generate-report"
	ExportData          = "export-data"
	IncidentResponse    = "incident-response"
	WarRoomMode         = "war-room-mode"
)

// handlers binds the effects to one backend.
type handlers struct {
	backend core.Backend
}

// Definitions returns the command bar catalog in display order.
func Definitions(backend core.Backend) []registry.Definition {
	h := &handlers{backend: backend}

	var defs []registry.Definition
	defs = append(defs, h.userDefinitions()...)
	defs = append(defs, h.fleetDefinitions()...)
	defs = append(defs, h.financeDefinitions()...)
	defs = append(defs, h.systemDefinitions()...)
	defs = append(defs, h.analyticsDefinitions()...)
	defs = append(defs, h.emergencyDefinitions()...)
	return defs
}

// NewRegistry builds a registry holding the full catalog.
func NewRegistry(backend core.Backend) (*registry.Registry, error) {
	return registry.New(Definitions(backend)...)
}
