package model

import (
	"encoding/json"
	"time"
)

// Outcome is what an effect returns on success.
type Outcome struct {
	// Message is shown to the operator unless the action has a fixed SuccessMessage.
	Message string

	// Data is an optional payload, e.g. the created entity.
	Data any

	// Items is set by batch effects, one entry per processed item.
	Items []ItemResult
}

// ItemResult is the result of one item in a fan-out.
type ItemResult struct {
	ItemID    string `json:"itemId"`
	Succeeded bool   `json:"succeeded"`
	Error     string `json:"error,omitempty"`
}

// CountSucceeded returns how many items succeeded.
func CountSucceeded(items []ItemResult) int {
	n := 0
	for _, it := range items {
		if it.Succeeded {
			n++
		}
	}
	return n
}

// ExecutionStatus is the terminal status of an execution.
type ExecutionStatus string

const (
	ExecutionSucceeded ExecutionStatus = "succeeded"
	ExecutionFailed    ExecutionStatus = "failed"
)

// ExecutionResult describes one run of an action.
type ExecutionResult struct {
	ID           string          `json:"id"`
	ActionID     string          `json:"actionId"`
	Status       ExecutionStatus `json:"status"`
	Message      string          `json:"message"`
	Error        string          `json:"error,omitempty"`
	Data         any             `json:"data,omitempty"`
	Items        []ItemResult    `json:"items,omitempty"`
	SuccessCount int             `json:"successCount"`
	FailureCount int             `json:"failureCount"`
	ReportKey    string          `json:"reportKey,omitempty"`
	StartedAt    time.Time       `json:"startedAt"`
	FinishedAt   time.Time       `json:"finishedAt"`
}

// Succeeded reports whether the effect completed without error.
func (r *ExecutionResult) Succeeded() bool {
	return r != nil && r.Status == ExecutionSucceeded
}

// Duration is the wall time of the run.
func (r *ExecutionResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// BatchReport is the archived record of a fan-out execution.
type BatchReport struct {
	SessionID string           `json:"sessionId,omitempty"`
	Result    *ExecutionResult `json:"result"`
}

// Result is the envelope every backend endpoint answers with.
type Result struct {
	Data    json.RawMessage `json:"data,omitempty"`
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Decode unmarshals Data into v. Empty data leaves v untouched.
func (r *Result) Decode(v any) error {
	if r == nil || len(r.Data) == 0 || string(r.Data) == "null" {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}
