package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
)

func handlerCounting(calls *int) func(context.Context, model.FormData) (*model.Outcome, error) {
	return func(context.Context, model.FormData) (*model.Outcome, error) {
		*calls++
		return &model.Outcome{}, nil
	}
}

var (
	confirmAction = model.CommandAction{
		ID: "emergency-stop", Title: "Emergency Stop", Impact: model.ImpactCritical, RequiresConfirmation: true,
	}
	formAction = model.CommandAction{
		ID: "create-user", Title: "Create User", Impact: model.ImpactMedium,
		Fields: []model.Field{
			{Name: "name", Type: model.FieldText, Required: true},
			{Name: "email", Type: model.FieldEmail, Required: true},
			{Name: "role", Type: model.FieldSelect, Required: true, Options: []model.Option{{Value: "user"}, {Value: "admin"}}},
		},
	}
	inputAction = model.CommandAction{
		ID: "pause-vehicle", Title: "Pause Vehicle", Impact: model.ImpactHigh, RequiresConfirmation: true,
		Fields: []model.Field{{Name: "vehicleId", Type: model.FieldText, Required: true}},
	}
	directAction = model.CommandAction{ID: "system-health-check", Impact: model.ImpactLow}
)

func TestOpenSelectsModal(t *testing.T) {
	tests := []struct {
		name      string
		action    model.CommandAction
		wantMode  model.ModalMode
		wantState string
		wantErr   error
	}{
		{"confirmation", confirmAction, model.ModalConfirm, StateAwaitingConfirmation, nil},
		{"form", formAction, model.ModalForm, StateAwaitingFormInput, nil},
		{"single field form", inputAction, model.ModalForm, StateAwaitingFormInput, nil},
		{"direct", directAction, model.ModalNone, StateIdle, ErrNoModalRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			c := New()
			m, err := c.Open(context.Background(), tt.action, handlerCounting(&calls))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantMode, m.Mode)
			assert.Equal(t, tt.wantState, c.State())
			assert.Zero(t, calls, "opening a modal must not run the effect")
		})
	}
}

func TestModalVariantFollowsImpact(t *testing.T) {
	c := New()
	m, err := c.Open(context.Background(), confirmAction, handlerCounting(new(int)))
	require.NoError(t, err)
	assert.Equal(t, model.VariantDestructive, m.Variant)
	assert.Equal(t, "Emergency Stop", m.Title)
}

func TestConfirmReturnsBoundAction(t *testing.T) {
	var calls int
	c := New()
	_, err := c.Open(context.Background(), confirmAction, handlerCounting(&calls))
	require.NoError(t, err)
	assert.Zero(t, calls)

	sub, err := c.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, model.ModalNone, c.Modal().Mode)
	assert.Equal(t, "emergency-stop", sub.Action.ID)

	_, err = sub.Handler(context.Background(), sub.Data)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestConfirmWithoutModal(t *testing.T) {
	c := New()
	_, err := c.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrNoModal)

	_, err = c.Open(context.Background(), formAction, handlerCounting(new(int)))
	require.NoError(t, err)
	_, err = c.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrWrongModal)
	assert.Equal(t, StateAwaitingFormInput, c.State())
}

func TestCancelFromAnyModal(t *testing.T) {
	for _, a := range []model.CommandAction{confirmAction, formAction, inputAction} {
		t.Run(a.ID, func(t *testing.T) {
			var calls int
			c := New()
			_, err := c.Open(context.Background(), a, handlerCounting(&calls))
			require.NoError(t, err)

			assert.True(t, c.Cancel(context.Background()))
			assert.Equal(t, StateIdle, c.State())
			assert.False(t, c.Modal().Open())
			assert.Zero(t, calls)
		})
	}
}

func TestCancelWhileIdleIsNoop(t *testing.T) {
	c := New()
	assert.False(t, c.Cancel(context.Background()))
	assert.Equal(t, StateIdle, c.State())
}

func TestSubmitMissingRequiredField(t *testing.T) {
	c := New()
	_, err := c.Open(context.Background(), formAction, handlerCounting(new(int)))
	require.NoError(t, err)

	sub, err := c.Submit(context.Background(), model.FormData{"name": "Ada", "email": " ", "role": "user"})
	assert.Nil(t, sub)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "email", verr.Fields[0].Field)

	assert.Equal(t, StateAwaitingFormInput, c.State(), "form must stay open")
	assert.Equal(t, "create-user", c.Modal().ActionID)
}

func TestSubmitValid(t *testing.T) {
	c := New()
	_, err := c.Open(context.Background(), formAction, handlerCounting(new(int)))
	require.NoError(t, err)

	data := model.FormData{"name": "Ada", "email": "ada@example.com", "role": "admin"}
	sub, err := c.Submit(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, data, sub.Data)
	assert.Equal(t, StateIdle, c.State())
}

func TestSubmitWithoutForm(t *testing.T) {
	c := New()
	_, err := c.Submit(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoModal)

	_, err = c.Open(context.Background(), confirmAction, handlerCounting(new(int)))
	require.NoError(t, err)
	_, err = c.Submit(context.Background(), nil)
	assert.ErrorIs(t, err, ErrWrongModal)
}

func TestReplacePolicyDiscardsOpenModal(t *testing.T) {
	var aCalls int
	c := New()
	_, err := c.Open(context.Background(), formAction, handlerCounting(&aCalls))
	require.NoError(t, err)

	m, err := c.Open(context.Background(), confirmAction, handlerCounting(new(int)))
	require.NoError(t, err)
	assert.Equal(t, model.ModalConfirm, m.Mode)
	assert.Equal(t, "emergency-stop", m.ActionID)

	sub, err := c.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "emergency-stop", sub.Action.ID)
	assert.Zero(t, aCalls, "the discarded form's effect must never run")
}

func TestRejectPolicyKeepsOpenModal(t *testing.T) {
	c := New(WithConflictPolicy(ConflictReject))
	_, err := c.Open(context.Background(), formAction, handlerCounting(new(int)))
	require.NoError(t, err)

	m, err := c.Open(context.Background(), confirmAction, handlerCounting(new(int)))
	assert.ErrorIs(t, err, ErrModalOpen)
	assert.Equal(t, "create-user", m.ActionID)
	assert.Equal(t, StateAwaitingFormInput, c.State())
}

func TestParseConflictPolicy(t *testing.T) {
	p, err := ParseConflictPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ConflictReplace, p)

	p, err = ParseConflictPolicy("reject")
	require.NoError(t, err)
	assert.Equal(t, ConflictReject, p)

	_, err = ParseConflictPolicy("queue")
	assert.Error(t, err)
}
