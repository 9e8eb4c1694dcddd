package fsm

import (
	"context"

	"github.com/looplab/fsm"
)

// WrapEvent adapts an error-returning callback to fsm.Callback.
// A returned error is stored on the event and surfaces from FSM.Event.
// Guards that want to block the transition call e.Cancel themselves.
func WrapEvent(fn func(ctx context.Context, event *fsm.Event) error) fsm.Callback {
	return func(ctx context.Context, event *fsm.Event) {
		if err := fn(ctx, event); err != nil && event.Err == nil {
			event.Err = err
		}
	}
}
