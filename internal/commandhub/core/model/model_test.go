package model

import (
	"encoding/json"
	"testing"
)

func TestImpactVariant(t *testing.T) {
	tests := []struct {
		impact Impact
		want   Variant
	}{
		{ImpactCritical, VariantDestructive},
		{ImpactHigh, VariantWarning},
		{ImpactMedium, VariantDefault},
		{ImpactLow, VariantDefault},
		{"", VariantDefault},
	}
	for _, tt := range tests {
		if got := tt.impact.Variant(); got != tt.want {
			t.Errorf("%q.Variant() = %q, want %q", tt.impact, got, tt.want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := CommandAction{
		ID:       "create-user",
		Keywords: []string{"user"},
		Fields: []Field{{
			Name:    "role",
			Type:    FieldSelect,
			Options: []Option{{Value: "user", Label: "User"}},
		}},
	}
	c := a.Clone()
	c.Keywords[0] = "changed"
	c.Fields[0].Options[0].Value = "changed"
	c.Fields[0].Name = "changed"

	if a.Keywords[0] != "user" || a.Fields[0].Options[0].Value != "user" || a.Fields[0].Name != "role" {
		t.Errorf("original mutated through clone: %+v", a)
	}
}

func TestResultDecode(t *testing.T) {
	var out struct{ ID string }
	r := &Result{Data: []byte(`{"ID":"v1"}`)}
	if err := r.Decode(&out); err != nil || out.ID != "v1" {
		t.Fatalf("Decode = %v, %+v", err, out)
	}
	if err := (&Result{Data: []byte("null")}).Decode(&out); err != nil {
		t.Errorf("null data should be a no-op, got %v", err)
	}
}

func TestFormDataAcceptsScalars(t *testing.T) {
	var d FormData
	in := `{"amount":100,"rate":2.50,"notify":true,"name":"Jane","note":null}`
	if err := json.Unmarshal([]byte(in), &d); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := FormData{"amount": "100", "rate": "2.50", "notify": "true", "name": "Jane", "note": ""}
	if len(d) != len(want) {
		t.Fatalf("got %v, want %v", d, want)
	}
	for k, v := range want {
		if d[k] != v {
			t.Errorf("%s = %q, want %q", k, d[k], v)
		}
	}

	for _, bad := range []string{`{"tags":["a"]}`, `{"meta":{"a":"b"}}`, `["x"]`} {
		if err := json.Unmarshal([]byte(bad), &d); err == nil {
			t.Errorf("Unmarshal(%s) should fail", bad)
		}
	}

	var empty FormData
	if err := json.Unmarshal([]byte("null"), &empty); err != nil || empty != nil {
		t.Errorf("null = %v, %v", empty, err)
	}
}
