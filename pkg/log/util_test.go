package log

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToFields(t *testing.T) {
	now := time.Now()
	err := errors.New("boom")

	tests := []struct {
		name     string
		input    []any
		wantKeys []string
	}{
		{"empty input", []any{}, nil},
		{"string-int-bool", []any{"a", "x", "b", 123, "c", true}, []string{"a", "b", "c"}},
		{"time type", []any{"t", now}, []string{"t"}},
		{"error only", []any{err}, []string{"error"}},
		{"mixed field types", []any{"msg", "ok", zap.String("x", "y"), "num", 42}, []string{"msg", "x", "num"}},
		{"odd number of args", []any{"key1", "val1", "key2"}, []string{"key1", "arg#2"}},
		{"non-string key", []any{123, "value"}, []string{"invalid_key_1"}},
		{"string slice", []any{"keywords", []string{"user", "create"}}, []string{"keywords"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := toFields(tt.input...)
			if len(fields) != len(tt.wantKeys) {
				t.Fatalf("got %d fields, want %d", len(fields), len(tt.wantKeys))
			}
			for i, f := range fields {
				if f.Key != tt.wantKeys[i] {
					t.Errorf("field %d key = %q, want %q", i, f.Key, tt.wantKeys[i])
				}
			}
		})
	}
}

func TestErrorAppendsErrField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core)).WithValues("session", "s-1")

	l.Error(errors.New("backend down"), "action failed", "action", "emergency-stop")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["session"] != "s-1" || ctx["action"] != "emergency-stop" || ctx["error"] != "backend down" {
		t.Errorf("unexpected context: %v", ctx)
	}
}

func TestFromContextFallsBackToStd(t *testing.T) {
	if FromContext(context.Background()) != Std() {
		t.Error("expected process logger when context carries none")
	}

	l := NewNopLogger()
	if FromContext(IntoContext(context.Background(), l)) != l {
		t.Error("expected logger stored in context")
	}
}

func TestOptionsValidate(t *testing.T) {
	o := NewOptions()
	if errs := o.Validate(); len(errs) != 0 {
		t.Fatalf("defaults should validate, got %v", errs)
	}
	o.Level = "loud"
	o.Format = "xml"
	if errs := o.Validate(); len(errs) != 2 {
		t.Errorf("expected 2 errors, got %v", errs)
	}
}
