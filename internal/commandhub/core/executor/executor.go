package executor

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/autopeer-io/commandhub/internal/commandhub/core"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/registry"
	"github.com/autopeer-io/commandhub/internal/pkg/metrics"
	"github.com/autopeer-io/commandhub/pkg/log"
)

// archiveTimeout bounds a report upload. It runs detached from the request
// so a batch cut short by the request deadline is still archived.
const archiveTimeout = 10 * time.Second

// Option configures an Executor.
type Option func(*Executor)

// WithReportStore archives batch results to s.
func WithReportStore(s core.ReportStore) Option {
	return func(e *Executor) {
		e.reports = s
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		e.now = now
	}
}

// Executor runs action effects and routes their outcome to the notifier.
type Executor struct {
	notifier core.Notifier
	logger   log.Logger
	reports  core.ReportStore
	now      func() time.Time
}

// New creates an Executor. A nil logger discards log output.
func New(notifier core.Notifier, logger log.Logger, opts ...Option) *Executor {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	e := &Executor{
		notifier: notifier,
		logger:   logger.WithName("executor"),
		now:      time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Execute runs handler for action with data. It never returns an error and
// never panics: failures, panics included, become a failed result, a log
// entry and an error notification.
func (e *Executor) Execute(ctx context.Context, action model.CommandAction, handler registry.Handler, data model.FormData) *model.ExecutionResult {
	res := &model.ExecutionResult{
		ID:        uuid.NewString(),
		ActionID:  action.ID,
		StartedAt: e.now(),
	}
	logger := log.FromContextOr(ctx, e.logger).WithValues("action", action.ID, "execution", res.ID)

	out, err := e.run(ctx, logger, handler, data)
	res.FinishedAt = e.now()

	if out != nil {
		res.Data = out.Data
		res.Items = out.Items
		res.SuccessCount = model.CountSucceeded(out.Items)
		res.FailureCount = len(out.Items) - res.SuccessCount
	}

	if err != nil {
		res.Status = model.ExecutionFailed
		res.Error = err.Error()
		res.Message = failureMessage(action, err)
		logger.Error(err, "Action failed", "duration", res.Duration())
		e.notify(ctx, model.LevelError, res.Message)
	} else {
		res.Status = model.ExecutionSucceeded
		res.Message = successMessage(action, out)
		logger.Info("Action executed", "duration", res.Duration(),
			"succeeded", res.SuccessCount, "failed", res.FailureCount)
		e.notify(ctx, model.LevelSuccess, res.Message)
	}

	e.record(action, res)

	if len(res.Items) > 0 && e.reports != nil {
		report := &model.BatchReport{SessionID: core.SessionIDFromContext(ctx), Result: res}
		archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
		key, err := e.reports.SaveReport(archiveCtx, report)
		cancel()
		if err != nil {
			logger.Error(err, "Failed to archive batch report")
		} else {
			res.ReportKey = key
		}
	}

	return res
}

// run calls handler. A panic becomes a short error; the stack only goes to the log.
func (e *Executor) run(ctx context.Context, logger log.Logger, handler registry.Handler, data model.FormData) (out *model.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("panic in action handler: %v", r)
			logger.Error(err, "Action handler panicked", "stack", string(debug.Stack()))
		}
	}()
	if handler == nil {
		return nil, fmt.Errorf("no handler bound")
	}
	return handler(ctx, data)
}

func (e *Executor) notify(ctx context.Context, level model.Level, msg string) {
	if e.notifier == nil {
		return
	}
	switch level {
	case model.LevelSuccess:
		e.notifier.Success(ctx, msg)
	default:
		e.notifier.Error(ctx, msg)
	}
}

func (e *Executor) record(action model.CommandAction, res *model.ExecutionResult) {
	metrics.ActionExecutionsTotal.WithLabelValues(action.ID, string(action.Category), string(res.Status)).Inc()
	metrics.ActionDuration.WithLabelValues(action.ID).Observe(res.Duration().Seconds())
	if res.SuccessCount > 0 {
		metrics.BatchItemsTotal.WithLabelValues(action.ID, "succeeded").Add(float64(res.SuccessCount))
	}
	if res.FailureCount > 0 {
		metrics.BatchItemsTotal.WithLabelValues(action.ID, "failed").Add(float64(res.FailureCount))
	}
}

func successMessage(action model.CommandAction, out *model.Outcome) string {
	if out != nil && out.Message != "" {
		return out.Message
	}
	if action.SuccessMessage != "" {
		return action.SuccessMessage
	}
	return action.Title + " completed successfully!"
}

func failureMessage(action model.CommandAction, err error) string {
	if msg, ok := publicMessage(err); ok {
		return msg
	}
	if action.FailureMessage != "" {
		return action.FailureMessage
	}
	return "Failed to run " + action.Title
}
