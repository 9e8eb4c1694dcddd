package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/autopeer-io/commandhub/internal/commandhub/core"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/pkg/log"
)

type recordingNotifier struct {
	mu       sync.Mutex
	success  []string
	failures []string
}

func (n *recordingNotifier) Success(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.success = append(n.success, msg)
}

func (n *recordingNotifier) Error(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

type fakeReportStore struct {
	reports []*model.BatchReport
	err     error
	ctxErrs []error
}

func (s *fakeReportStore) SaveReport(ctx context.Context, r *model.BatchReport) (string, error) {
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	if s.err != nil {
		return "", s.err
	}
	s.reports = append(s.reports, r)
	return fmt.Sprintf("reports/%s.json", r.Result.ID), nil
}

func newTestExecutor(opts ...Option) (*Executor, *recordingNotifier, *observer.ObservedLogs) {
	zc, logs := observer.New(zapcore.DebugLevel)
	n := &recordingNotifier{}
	return New(n, log.NewFromZap(zap.New(zc)), opts...), n, logs
}

var action = model.CommandAction{
	ID:             "clear-cache",
	Title:          "Clear Cache",
	Category:       model.CategorySystem,
	SuccessMessage: "Cache cleared successfully!",
	FailureMessage: "Failed to clear cache",
}

func TestExecuteSuccess(t *testing.T) {
	e, n, _ := newTestExecutor()
	res := e.Execute(context.Background(), action, func(context.Context, model.FormData) (*model.Outcome, error) {
		return &model.Outcome{Data: "ok"}, nil
	}, nil)

	assert.True(t, res.Succeeded())
	assert.Equal(t, "Cache cleared successfully!", res.Message)
	assert.Equal(t, "ok", res.Data)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, []string{"Cache cleared successfully!"}, n.success)
	assert.Empty(t, n.failures)
}

func TestExecuteOutcomeMessageWins(t *testing.T) {
	e, n, _ := newTestExecutor()
	res := e.Execute(context.Background(), action, func(context.Context, model.FormData) (*model.Outcome, error) {
		return &model.Outcome{Message: "Removed 42 entries"}, nil
	}, nil)
	assert.Equal(t, "Removed 42 entries", res.Message)
	assert.Equal(t, []string{"Removed 42 entries"}, n.success)
}

func TestExecuteFailureIsLoggedAndNotified(t *testing.T) {
	e, n, logs := newTestExecutor()
	res := e.Execute(context.Background(), action, func(context.Context, model.FormData) (*model.Outcome, error) {
		return nil, errors.New("connection refused")
	}, nil)

	assert.False(t, res.Succeeded())
	assert.Equal(t, "connection refused", res.Error)
	assert.Equal(t, []string{"Failed to clear cache"}, n.failures)
	assert.Empty(t, n.success)

	entries := logs.FilterMessage("Action failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "clear-cache", entries[0].ContextMap()["action"])
}

func TestExecutePublicErrorMessage(t *testing.T) {
	e, n, _ := newTestExecutor()
	e.Execute(context.Background(), action, func(context.Context, model.FormData) (*model.Outcome, error) {
		return nil, fmt.Errorf("lookup: %w", Public("Vehicle not found!"))
	}, nil)
	assert.Equal(t, []string{"Vehicle not found!"}, n.failures)
}

func TestExecuteRecoversPanic(t *testing.T) {
	e, n, logs := newTestExecutor()
	var res *model.ExecutionResult
	require.NotPanics(t, func() {
		res = e.Execute(context.Background(), action, func(context.Context, model.FormData) (*model.Outcome, error) {
			panic("nil map")
		}, nil)
	})
	assert.False(t, res.Succeeded())
	assert.Equal(t, "panic in action handler: nil map", res.Error)
	assert.Len(t, n.failures, 1)

	body, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "goroutine", "stack traces stay out of results")

	entries := logs.FilterMessage("Action handler panicked").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["stack"], "runtime/debug.Stack")
}

func TestExecuteNilHandler(t *testing.T) {
	e, _, _ := newTestExecutor()
	res := e.Execute(context.Background(), action, nil, nil)
	assert.False(t, res.Succeeded())
}

func TestEmergencyStopPartialFailure(t *testing.T) {
	store := &fakeReportStore{}
	e, n, _ := newTestExecutor(WithReportStore(store))
	stop := model.CommandAction{ID: "emergency-stop", Title: "Emergency Stop", Category: model.CategoryFleet}

	failing := map[string]bool{"v2": true, "v3": true, "v5": true}
	handler := func(ctx context.Context, _ model.FormData) (*model.Outcome, error) {
		out := FanOut(ctx, []string{"v1", "v2", "v3", "v4", "v5"}, func(_ context.Context, id string) error {
			if failing[id] {
				return errors.New("update rejected")
			}
			return nil
		})
		out.Message = fmt.Sprintf("Emergency stop activated for %d vehicles!", model.CountSucceeded(out.Items))
		return out, nil
	}

	ctx := core.WithSessionID(context.Background(), "s-1")
	res := e.Execute(ctx, stop, handler, nil)

	require.True(t, res.Succeeded())
	assert.Equal(t, 2, res.SuccessCount)
	assert.Equal(t, 3, res.FailureCount)
	assert.Len(t, res.Items, 5)
	assert.Equal(t, []string{"Emergency stop activated for 2 vehicles!"}, n.success)
	assert.Empty(t, n.failures)

	require.Len(t, store.reports, 1)
	assert.Equal(t, "s-1", store.reports[0].SessionID)
	assert.Equal(t, "reports/"+res.ID+".json", res.ReportKey)
}

func TestArchiveFailureDoesNotChangeResult(t *testing.T) {
	e, n, logs := newTestExecutor(WithReportStore(&fakeReportStore{err: errors.New("bucket gone")}))
	res := e.Execute(context.Background(), action, func(ctx context.Context, _ model.FormData) (*model.Outcome, error) {
		return FanOut(ctx, []string{"a"}, func(context.Context, string) error { return nil }), nil
	}, nil)

	assert.True(t, res.Succeeded())
	assert.Empty(t, res.ReportKey)
	assert.Len(t, n.success, 1)
	assert.Equal(t, 1, logs.FilterMessage("Failed to archive batch report").Len())
}

func TestBatchCutShortByDeadlineIsArchived(t *testing.T) {
	store := &fakeReportStore{}
	e, _, _ := newTestExecutor(WithReportStore(store))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	res := e.Execute(ctx, action, func(ctx context.Context, _ model.FormData) (*model.Outcome, error) {
		return FanOut(ctx, []string{"v1", "v2", "v3"}, func(context.Context, string) error {
			// the request expires while the first item is in flight
			cancel()
			return nil
		}), nil
	}, nil)

	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 2, res.FailureCount)
	require.Len(t, store.reports, 1)
	assert.NoError(t, store.ctxErrs[0], "archive must not inherit the expired request context")
	assert.Equal(t, "reports/"+res.ID+".json", res.ReportKey)
}
