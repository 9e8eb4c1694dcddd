package workflow

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
)

// FieldError is one rejected form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
// The modal stays open when it is returned.
type ValidationError struct {
	ActionID string       `json:"actionId"`
	Fields   []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return fmt.Sprintf("invalid input for %s: %s", e.ActionID, strings.Join(parts, "; "))
}

// Validate checks data against the field schema.
// Required fields must be non-blank. Non-blank values must also parse as their type.
func Validate(actionID string, fields []model.Field, data model.FormData) error {
	var errs []FieldError
	for _, f := range fields {
		v := strings.TrimSpace(data.Get(f.Name))
		if v == "" {
			if f.Required {
				errs = append(errs, FieldError{Field: f.Name, Message: "is required"})
			}
			continue
		}
		if msg := checkType(f, v); msg != "" {
			errs = append(errs, FieldError{Field: f.Name, Message: msg})
		}
	}
	if len(errs) > 0 {
		return &ValidationError{ActionID: actionID, Fields: errs}
	}
	return nil
}

func checkType(f model.Field, v string) string {
	switch f.Type {
	case model.FieldNumber:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return "must be a number"
		}
	case model.FieldEmail:
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v {
			return "must be a valid email address"
		}
	case model.FieldSelect:
		if len(f.Options) > 0 && !f.HasOption(v) {
			return fmt.Sprintf("must be one of %s", optionValues(f.Options))
		}
	}
	return ""
}

func optionValues(opts []model.Option) string {
	vals := make([]string, len(opts))
	for i, o := range opts {
		vals[i] = o.Value
	}
	return strings.Join(vals, ", ")
}
