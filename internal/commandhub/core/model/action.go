package model

// Category groups actions in the command bar.
type Category string

const (
	CategoryUsers     Category = "users"
	CategoryFleet     Category = "fleet"
	CategoryFinance   Category = "finance"
	CategorySystem    Category = "system"
	CategoryAnalytics Category = "analytics"
	CategoryEmergency Category = "emergency"
)

// Impact is the operator-facing severity of an action.
// It only styles the modal; RequiresConfirmation is the gate.
type Impact string

const (
	ImpactLow      Impact = "low"
	ImpactMedium   Impact = "medium"
	ImpactHigh     Impact = "high"
	ImpactCritical Impact = "critical"
)

// Variant is the visual style of a modal.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantWarning     Variant = "warning"
	VariantDestructive Variant = "destructive"
)

// Variant maps impact to modal style: critical is destructive, high is a warning.
func (i Impact) Variant() Variant {
	switch i {
	case ImpactCritical:
		return VariantDestructive
	case ImpactHigh:
		return VariantWarning
	default:
		return VariantDefault
	}
}

// CommandAction describes one operation the command bar can trigger.
// The effect is not part of the value; it is registered alongside it.
type CommandAction struct {
	// ID is the unique key, e.g. "emergency-stop".
	ID string `json:"id"`

	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`

	// Keywords are extra search terms.
	Keywords []string `json:"keywords,omitempty"`

	Impact Impact `json:"impact"`

	// RequiresConfirmation gates execution behind an explicit confirm.
	RequiresConfirmation bool `json:"requiresConfirmation"`

	// Shortcut is display only, e.g. "Ctrl+U".
	Shortcut string `json:"shortcut,omitempty"`

	// Fields is the form schema. Non-empty means the effect needs input.
	Fields []Field `json:"fields,omitempty"`

	// SuccessMessage and FailureMessage override the outcome text in notifications.
	SuccessMessage string `json:"-"`
	FailureMessage string `json:"-"`
}

// HasForm reports whether the action collects input before running.
func (a CommandAction) HasForm() bool {
	return len(a.Fields) > 0
}

// Clone returns a deep copy, so callers cannot mutate registry state.
func (a CommandAction) Clone() CommandAction {
	out := a
	if a.Keywords != nil {
		out.Keywords = append([]string(nil), a.Keywords...)
	}
	if a.Fields != nil {
		out.Fields = make([]Field, len(a.Fields))
		for i, f := range a.Fields {
			out.Fields[i] = f.Clone()
		}
	}
	return out
}
