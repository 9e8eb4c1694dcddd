package model

// ModalMode is the kind of modal currently shown.
type ModalMode string

const (
	ModalNone    ModalMode = "none"
	// ModalInput is part of the dashboard contract; the engine opens every
	// field schema, single field included, as ModalForm.
	ModalInput   ModalMode = "input"
	ModalConfirm ModalMode = "confirm"
	ModalForm    ModalMode = "form"
)

// ModalState is a snapshot of the open modal. The submit callback is never part of it.
type ModalState struct {
	Mode        ModalMode `json:"mode"`
	ActionID    string    `json:"actionId,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Impact      Impact    `json:"impact,omitempty"`
	Variant     Variant   `json:"variant,omitempty"`
	Fields      []Field   `json:"fields,omitempty"`
}

// Open reports whether a modal is shown.
func (m ModalState) Open() bool {
	return m.Mode != "" && m.Mode != ModalNone
}
