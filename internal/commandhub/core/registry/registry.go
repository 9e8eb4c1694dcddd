package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
)

var (
	ErrEmptyID     = errors.New("action id is empty")
	ErrDuplicateID = errors.New("duplicate action id")
	ErrNilHandler  = errors.New("action handler is nil")
)

// Handler performs an action's effect. It is the only side-effecting contract of an action.
type Handler func(ctx context.Context, data model.FormData) (*model.Outcome, error)

// Definition pairs an action with its effect.
type Definition struct {
	Action  model.CommandAction
	Handler Handler
}

// Registry is the fixed set of actions known to the command bar.
// It is built once at startup and read-only afterwards, so it is safe for concurrent use.
type Registry struct {
	actions  []model.CommandAction
	handlers map[string]Handler
}

// New builds a registry from defs in the given order.
func New(defs ...Definition) (*Registry, error) {
	r := &Registry{
		actions:  make([]model.CommandAction, 0, len(defs)),
		handlers: make(map[string]Handler, len(defs)),
	}
	for i, d := range defs {
		id := d.Action.ID
		switch {
		case id == "":
			return nil, fmt.Errorf("definition %d: %w", i, ErrEmptyID)
		case d.Handler == nil:
			return nil, fmt.Errorf("action %q: %w", id, ErrNilHandler)
		}
		if _, ok := r.handlers[id]; ok {
			return nil, fmt.Errorf("action %q: %w", id, ErrDuplicateID)
		}
		r.actions = append(r.actions, d.Action.Clone())
		r.handlers[id] = d.Handler
	}
	return r, nil
}

// ListActions returns copies of all actions in registration order.
func (r *Registry) ListActions() []model.CommandAction {
	out := make([]model.CommandAction, len(r.actions))
	for i, a := range r.actions {
		out[i] = a.Clone()
	}
	return out
}

// Lookup returns the action and handler registered under id.
func (r *Registry) Lookup(id string) (model.CommandAction, Handler, bool) {
	h, ok := r.handlers[id]
	if !ok {
		return model.CommandAction{}, nil, false
	}
	for _, a := range r.actions {
		if a.ID == id {
			return a.Clone(), h, true
		}
	}
	return model.CommandAction{}, nil, false
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	return len(r.actions)
}
