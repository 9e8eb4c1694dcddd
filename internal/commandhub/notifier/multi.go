package notifier

import (
	"context"

	"github.com/autopeer-io/commandhub/internal/commandhub/core"
)

// Multi fans every notification out to all of its notifiers, in order.
type Multi []core.Notifier

var _ core.Notifier = Multi(nil)

// NewMulti drops nil entries.
func NewMulti(notifiers ...core.Notifier) Multi {
	out := make(Multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (m Multi) Success(ctx context.Context, message string) {
	for _, n := range m {
		n.Success(ctx, message)
	}
}

func (m Multi) Error(ctx context.Context, message string) {
	for _, n := range m {
		n.Error(ctx, message)
	}
}
