package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/autopeer-io/commandhub/internal/commandhub/core"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/workflow"
	"github.com/autopeer-io/commandhub/internal/pkg/metrics"
	"github.com/autopeer-io/commandhub/pkg/log"
)

// Session is one operator's command bar. It owns exactly one modal controller.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	// mu is held for the whole of a trigger, confirm, submit or cancel,
	// so one session never runs two actions at once.
	mu         sync.Mutex
	controller *workflow.Controller
}

// TriggerResult is either the modal the action opened or, for actions that
// need no modal, the result of running it.
type TriggerResult struct {
	Modal     *model.ModalState      `json:"modal,omitempty"`
	Execution *model.ExecutionResult `json:"execution,omitempty"`
}

// CreateSession starts a new operator session.
func (s *Service) CreateSession(ctx context.Context) *Session {
	sess := &Session{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		controller: workflow.New(workflow.WithConflictPolicy(s.policy)),
	}
	s.sessions.SetDefault(sess.ID, sess)
	metrics.ActiveSessions.Inc()
	log.FromContextOr(ctx, s.logger).Info("Session created", "session", sess.ID)
	return sess
}

// CloseSession drops a session and discards its modal.
func (s *Service) CloseSession(id string) error {
	if _, ok := s.sessions.Get(id); !ok {
		return ErrSessionNotFound
	}
	s.sessions.Delete(id)
	return nil
}

// Modal returns the session's open modal.
func (s *Service) Modal(id string) (model.ModalState, error) {
	sess, err := s.session(id)
	if err != nil {
		return model.ModalState{}, err
	}
	return sess.controller.Modal(), nil
}

// Trigger selects an action in a session. Form and confirmation-gated actions
// open their modal; any other action is executed right away.
func (s *Service) Trigger(ctx context.Context, sessionID, actionID string) (*TriggerResult, error) {
	action, handler, ok := s.registry.Lookup(actionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, actionID)
	}

	sess, unlock, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	ctx = s.scope(ctx, sess)

	modal, err := sess.controller.Open(ctx, action, handler)
	switch {
	case err == nil:
		return &TriggerResult{Modal: &modal}, nil
	case errors.Is(err, workflow.ErrNoModalRequired):
		res := s.executor.Execute(ctx, action, handler, nil)
		return &TriggerResult{Execution: res}, nil
	default:
		return &TriggerResult{Modal: &modal}, err
	}
}

// Confirm accepts the open confirmation modal and runs its action.
func (s *Service) Confirm(ctx context.Context, sessionID string) (*model.ExecutionResult, error) {
	sess, unlock, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	ctx = s.scope(ctx, sess)

	sub, err := sess.controller.Confirm(ctx)
	if err != nil {
		return nil, err
	}
	return s.executor.Execute(ctx, sub.Action, sub.Handler, sub.Data), nil
}

// Submit validates data against the open form and runs its action.
// Invalid data returns a *workflow.ValidationError and leaves the form open.
func (s *Service) Submit(ctx context.Context, sessionID string, data model.FormData) (*model.ExecutionResult, error) {
	sess, unlock, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	ctx = s.scope(ctx, sess)

	sub, err := sess.controller.Submit(ctx, data)
	if err != nil {
		return nil, err
	}
	return s.executor.Execute(ctx, sub.Action, sub.Handler, sub.Data), nil
}

// Cancel discards the open modal. It reports whether one was open.
func (s *Service) Cancel(ctx context.Context, sessionID string) (bool, error) {
	sess, unlock, err := s.acquire(sessionID)
	if err != nil {
		return false, err
	}
	defer unlock()
	return sess.controller.Cancel(s.scope(ctx, sess)), nil
}

func (s *Service) session(id string) (*Session, error) {
	v, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return v.(*Session), nil
}

// acquire locks the session for one operation and refreshes its idle timer.
func (s *Service) acquire(id string) (*Session, func(), error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, nil, err
	}
	if !sess.mu.TryLock() {
		return nil, nil, ErrActionInFlight
	}
	s.sessions.SetDefault(id, sess)
	return sess, sess.mu.Unlock, nil
}

func (s *Service) scope(ctx context.Context, sess *Session) context.Context {
	ctx = core.WithSessionID(ctx, sess.ID)
	return log.IntoContext(ctx, log.FromContextOr(ctx, s.logger).WithValues("session", sess.ID))
}
