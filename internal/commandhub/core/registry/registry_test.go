package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
)

func noop(context.Context, model.FormData) (*model.Outcome, error) {
	return &model.Outcome{Message: "ok"}, nil
}

func def(id string) Definition {
	return Definition{Action: model.CommandAction{ID: id, Title: id, Keywords: []string{"k"}}, Handler: noop}
}

func TestNewRejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
		want error
	}{
		{"empty id", []Definition{def("")}, ErrEmptyID},
		{"nil handler", []Definition{{Action: model.CommandAction{ID: "a"}}}, ErrNilHandler},
		{"duplicate", []Definition{def("a"), def("b"), def("a")}, ErrDuplicateID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.defs...)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestListActionsKeepsOrderAndCopies(t *testing.T) {
	r, err := New(def("c"), def("a"), def("b"))
	if err != nil {
		t.Fatal(err)
	}
	list := r.ListActions()
	if len(list) != 3 || list[0].ID != "c" || list[1].ID != "a" || list[2].ID != "b" {
		t.Fatalf("unexpected order: %+v", list)
	}

	list[0].Title = "mutated"
	list[0].Keywords[0] = "mutated"
	again := r.ListActions()
	if again[0].Title != "c" || again[0].Keywords[0] != "k" {
		t.Errorf("registry state changed through returned copy: %+v", again[0])
	}
}

func TestLookup(t *testing.T) {
	r, err := New(def("a"))
	if err != nil {
		t.Fatal(err)
	}
	a, h, ok := r.Lookup("a")
	if !ok || a.ID != "a" || h == nil {
		t.Fatalf("Lookup(a) = %+v, %v, %v", a, h != nil, ok)
	}
	out, err := h(context.Background(), nil)
	if err != nil || out.Message != "ok" {
		t.Errorf("handler returned %+v, %v", out, err)
	}
	if _, _, ok := r.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d", r.Len())
	}
}
