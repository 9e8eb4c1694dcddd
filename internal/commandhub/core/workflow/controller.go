package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/looplab/fsm"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/registry"
	"github.com/autopeer-io/commandhub/internal/pkg/metrics"
	fsmutil "github.com/autopeer-io/commandhub/internal/pkg/util/fsm"
)

const (
	StateIdle                 = "idle"
	StateAwaitingConfirmation = "awaiting_confirmation"
	StateAwaitingFormInput    = "awaiting_form_input"
)

const (
	// EventRequestConfirmation opens a confirmation modal.
	EventRequestConfirmation = "request_confirmation"
	// EventRequestForm opens a form modal.
	EventRequestForm = "request_form"
	// EventConfirm accepts a confirmation modal.
	EventConfirm = "confirm"
	// EventSubmit accepts a form modal. Guarded by field validation.
	EventSubmit = "submit"
	// EventCancel discards the open modal.
	EventCancel = "cancel"
	// EventReplace discards the open modal so another can be opened.
	EventReplace = "replace"
)

var (
	ErrNoModalRequired = errors.New("action runs without a modal")
	ErrModalOpen       = errors.New("another modal is already open")
	ErrNoModal         = errors.New("no modal is open")
	ErrWrongModal      = errors.New("open modal does not accept this operation")
)

// ConflictPolicy decides what Open does while a modal is already open.
type ConflictPolicy string

const (
	// ConflictReplace silently discards the open modal.
	ConflictReplace ConflictPolicy = "replace"
	// ConflictReject refuses the new modal with ErrModalOpen.
	ConflictReject ConflictPolicy = "reject"
)

// ParseConflictPolicy converts a flag value.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch p := ConflictPolicy(s); p {
	case ConflictReplace, ConflictReject:
		return p, nil
	case "":
		return ConflictReplace, nil
	default:
		return "", fmt.Errorf("unknown conflict policy %q", s)
	}
}

// Submission is the action bound by an accepted confirm or submit.
// The caller runs it through the executor.
type Submission struct {
	Action  model.CommandAction
	Handler registry.Handler
	Data    model.FormData
}

type pending struct {
	action  model.CommandAction
	handler registry.Handler
}

// Option configures a Controller.
type Option func(*Controller)

// WithConflictPolicy sets the policy applied when Open finds a modal already open.
func WithConflictPolicy(p ConflictPolicy) Option {
	return func(c *Controller) {
		c.policy = p
	}
}

// Controller owns the single modal of one operator session.
type Controller struct {
	mu      sync.Mutex
	fsm     *fsm.FSM
	policy  ConflictPolicy
	pending *pending
}

// New returns a controller in the idle state.
func New(opts ...Option) *Controller {
	c := &Controller{policy: ConflictReplace}
	for _, o := range opts {
		o(c)
	}

	modalStates := []string{StateAwaitingConfirmation, StateAwaitingFormInput}
	events := fsm.Events{
		{Name: EventRequestConfirmation, Src: []string{StateIdle}, Dst: StateAwaitingConfirmation},
		{Name: EventRequestForm, Src: []string{StateIdle}, Dst: StateAwaitingFormInput},
		{Name: EventConfirm, Src: []string{StateAwaitingConfirmation}, Dst: StateIdle},
		{Name: EventSubmit, Src: []string{StateAwaitingFormInput}, Dst: StateIdle},
		{Name: EventCancel, Src: modalStates, Dst: StateIdle},
		{Name: EventReplace, Src: modalStates, Dst: StateIdle},
	}

	callbacks := fsm.Callbacks{
		// Guards
		"before_" + EventSubmit: fsmutil.WrapEvent(c.guardSubmit),

		// Side-effects
		"enter_" + StateAwaitingConfirmation: fsmutil.WrapEvent(c.bindPending),
		"enter_" + StateAwaitingFormInput:    fsmutil.WrapEvent(c.bindPending),
		"enter_" + StateIdle:                 fsmutil.WrapEvent(c.clearPending),
		"enter_state":                        c.recordTransition,
	}

	c.fsm = fsm.NewFSM(StateIdle, events, callbacks)
	return c
}

// Open shows the modal action needs. Actions with a field schema get a form,
// confirmation-gated actions without one get a confirmation. Any other action
// returns ErrNoModalRequired and should be executed directly.
func (c *Controller) Open(ctx context.Context, action model.CommandAction, handler registry.Handler) (model.ModalState, error) {
	event := ""
	switch {
	case action.HasForm():
		event = EventRequestForm
	case action.RequiresConfirmation:
		event = EventRequestConfirmation
	default:
		return model.ModalState{Mode: model.ModalNone}, ErrNoModalRequired
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fsm.Current() != StateIdle {
		if c.policy == ConflictReject {
			return c.modalLocked(), ErrModalOpen
		}
		if err := c.fsm.Event(ctx, EventReplace); err != nil {
			return c.modalLocked(), fmt.Errorf("discard open modal: %w", err)
		}
	}

	p := &pending{action: action.Clone(), handler: handler}
	if err := c.fsm.Event(ctx, event, p); err != nil {
		return c.modalLocked(), fmt.Errorf("open modal for %s: %w", action.ID, err)
	}
	return c.modalLocked(), nil
}

// Confirm accepts the open confirmation modal and returns the bound action.
// The controller is idle afterwards whatever the effect later does.
func (c *Controller) Confirm(ctx context.Context) (*Submission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect(StateAwaitingConfirmation); err != nil {
		return nil, err
	}
	p := c.pending
	if err := c.fsm.Event(ctx, EventConfirm); err != nil {
		return nil, err
	}
	return &Submission{Action: p.action, Handler: p.handler}, nil
}

// Submit validates data against the open form. On failure it returns a
// *ValidationError and the form stays open. On success the controller idles
// and the bound action is returned with the submitted data.
func (c *Controller) Submit(ctx context.Context, data model.FormData) (*Submission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect(StateAwaitingFormInput); err != nil {
		return nil, err
	}
	if data == nil {
		data = model.FormData{}
	}
	p := c.pending
	if err := c.fsm.Event(ctx, EventSubmit, data); err != nil {
		var canceled fsm.CanceledError
		if errors.As(err, &canceled) && canceled.Err != nil {
			return nil, canceled.Err
		}
		return nil, err
	}
	return &Submission{Action: p.action, Handler: p.handler, Data: data}, nil
}

// Cancel discards the open modal without running anything.
// It reports whether a modal was open.
func (c *Controller) Cancel(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fsm.Current() == StateIdle {
		return false
	}
	return c.fsm.Event(ctx, EventCancel) == nil
}

// Modal returns a snapshot of the open modal, or mode none when idle.
func (c *Controller) Modal() model.ModalState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modalLocked()
}

// State returns the current state name.
func (c *Controller) State() string {
	return c.fsm.Current()
}

func (c *Controller) expect(state string) error {
	switch cur := c.fsm.Current(); {
	case cur == state:
		return nil
	case cur == StateIdle:
		return ErrNoModal
	default:
		return fmt.Errorf("%w: modal is %s", ErrWrongModal, cur)
	}
}

func (c *Controller) modalLocked() model.ModalState {
	if c.pending == nil {
		return model.ModalState{Mode: model.ModalNone}
	}
	a := c.pending.action
	m := model.ModalState{
		ActionID:    a.ID,
		Title:       a.Title,
		Description: a.Description,
		Impact:      a.Impact,
		Variant:     a.Impact.Variant(),
	}
	if a.HasForm() {
		m.Mode = model.ModalForm
		m.Fields = a.Clone().Fields
	} else {
		m.Mode = model.ModalConfirm
	}
	return m
}

// guardSubmit cancels the submit transition when the data does not satisfy the schema.
func (c *Controller) guardSubmit(_ context.Context, e *fsm.Event) error {
	var data model.FormData
	if len(e.Args) > 0 {
		data, _ = e.Args[0].(model.FormData)
	}
	if err := Validate(c.pending.action.ID, c.pending.action.Fields, data); err != nil {
		e.Cancel(err)
	}
	return nil
}

func (c *Controller) bindPending(_ context.Context, e *fsm.Event) error {
	if len(e.Args) == 0 {
		return fmt.Errorf("event %s: missing action", e.Event)
	}
	p, ok := e.Args[0].(*pending)
	if !ok {
		return fmt.Errorf("event %s: missing action", e.Event)
	}
	c.pending = p
	return nil
}

func (c *Controller) clearPending(_ context.Context, _ *fsm.Event) error {
	c.pending = nil
	return nil
}

func (c *Controller) recordTransition(_ context.Context, e *fsm.Event) {
	metrics.ModalTransitionsTotal.WithLabelValues(e.Event).Inc()
}
