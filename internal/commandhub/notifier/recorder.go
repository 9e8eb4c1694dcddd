package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/autopeer-io/commandhub/internal/commandhub/core"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
)

// Recorder collects the notifications raised while serving one request,
// so the API can return them with the response.
type Recorder struct {
	mu    sync.Mutex
	items []model.Notification
}

// Notifications returns what was recorded so far.
func (r *Recorder) Notifications() []model.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Notification(nil), r.items...)
}

func (r *Recorder) add(ctx context.Context, level model.Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, model.Notification{
		Level:     level,
		Message:   message,
		SessionID: core.SessionIDFromContext(ctx),
		Timestamp: time.Now().UTC(),
	})
}

type recorderKey struct{}

// WithRecorder attaches r to ctx. Notifications sent through Context land in r.
func WithRecorder(ctx context.Context, r *Recorder) context.Context {
	return context.WithValue(ctx, recorderKey{}, r)
}

func recorderFrom(ctx context.Context) *Recorder {
	r, _ := ctx.Value(recorderKey{}).(*Recorder)
	return r
}

// Context routes notifications to the Recorder stored in the context, if any.
type Context struct{}

var _ core.Notifier = Context{}

func (Context) Success(ctx context.Context, message string) {
	if r := recorderFrom(ctx); r != nil {
		r.add(ctx, model.LevelSuccess, message)
	}
}

func (Context) Error(ctx context.Context, message string) {
	if r := recorderFrom(ctx); r != nil {
		r.add(ctx, model.LevelError, message)
	}
}
