package workflow

import (
	"errors"
	"testing"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
)

func TestValidate(t *testing.T) {
	fields := []model.Field{
		{Name: "amount", Type: model.FieldNumber, Required: true},
		{Name: "email", Type: model.FieldEmail},
		{Name: "format", Type: model.FieldSelect, Options: []model.Option{{Value: "csv"}, {Value: "pdf"}}},
		{Name: "description", Type: model.FieldTextarea},
	}

	tests := []struct {
		name       string
		data       model.FormData
		wantFields []string
	}{
		{"valid", model.FormData{"amount": "12.50", "email": "a@b.io", "format": "csv"}, nil},
		{"optional fields may be blank", model.FormData{"amount": "1"}, nil},
		{"nil data", nil, []string{"amount"}},
		{"whitespace is blank", model.FormData{"amount": "  "}, []string{"amount"}},
		{"not a number", model.FormData{"amount": "ten"}, []string{"amount"}},
		{"bad email", model.FormData{"amount": "1", "email": "Ada <a@b.io>"}, []string{"email"}},
		{"unknown option", model.FormData{"amount": "1", "format": "xml"}, []string{"format"}},
		{"several", model.FormData{"email": "nope", "format": "xml"}, []string{"amount", "email", "format"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate("x", fields, tt.data)
			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if len(verr.Fields) != len(tt.wantFields) {
				t.Fatalf("got %+v, want fields %v", verr.Fields, tt.wantFields)
			}
			for i, f := range verr.Fields {
				if f.Field != tt.wantFields[i] {
					t.Errorf("field %d = %q, want %q", i, f.Field, tt.wantFields[i])
				}
			}
		})
	}
}
