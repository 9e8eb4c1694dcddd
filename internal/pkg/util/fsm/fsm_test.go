package fsm

import (
	"context"
	"errors"
	"testing"

	"github.com/looplab/fsm"
)

func TestWrapEventStoresError(t *testing.T) {
	boom := errors.New("boom")
	e := &fsm.Event{}
	WrapEvent(func(context.Context, *fsm.Event) error { return boom })(context.Background(), e)
	if !errors.Is(e.Err, boom) {
		t.Errorf("event.Err = %v, want %v", e.Err, boom)
	}

	e = &fsm.Event{}
	WrapEvent(func(context.Context, *fsm.Event) error { return nil })(context.Background(), e)
	if e.Err != nil {
		t.Errorf("event.Err = %v, want nil", e.Err)
	}
}
