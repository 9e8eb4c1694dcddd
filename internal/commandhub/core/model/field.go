package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FieldType is the input kind of a form field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldTextarea FieldType = "textarea"
	FieldFile     FieldType = "file"
)

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field describes one input of a form modal.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	Options     []Option  `json:"options,omitempty"`
}

func (f Field) Clone() Field {
	if f.Options != nil {
		f.Options = append([]Option(nil), f.Options...)
	}
	return f
}

// HasOption reports whether v is one of the select values.
func (f Field) HasOption(v string) bool {
	for _, o := range f.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// FormData holds submitted values keyed by field name.
type FormData map[string]string

// Get returns the value for name, or "" when absent.
func (d FormData) Get(name string) string {
	if d == nil {
		return ""
	}
	return d[name]
}

// UnmarshalJSON accepts string, number and boolean values and keeps each as
// its text form, so {"amount": 100} reads the same as {"amount": "100"}.
// null becomes "". Objects and arrays are rejected.
func (d *FormData) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		*d = nil
		return nil
	}
	out := make(FormData, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = v
		case json.Number:
			out[k] = v.String()
		case bool:
			out[k] = strconv.FormatBool(v)
		default:
			return fmt.Errorf("form field %q: expected a string, number or boolean", k)
		}
	}
	*d = out
	return nil
}
