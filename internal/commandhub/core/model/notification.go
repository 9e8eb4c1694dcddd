package model

import "time"

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a toast shown to the operator.
type Notification struct {
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	SessionID string    `json:"sessionId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
