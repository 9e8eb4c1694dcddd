package topic

import (
	"fmt"
)

// Topic segments published by commandhub. Dashboards subscribe to these,
// so renaming a suffix breaks existing subscribers.
const (
	// SuffixNotifications carries toast notifications for one operator session.
	// Structure: {root}/notifications/{sessionID}
	SuffixNotifications = "notifications"

	// BroadcastID addresses every connected dashboard rather than one session.
	BroadcastID = "broadcast"
)

// TopicBuilder constructs MQTT topic strings under a common root namespace.
type TopicBuilder struct {
	// root is the base namespace for all topics (e.g., "commandhub/v1").
	root string
}

// NewTopicBuilder creates a new instance of TopicBuilder with the specified root namespace.
func NewTopicBuilder(root string) *TopicBuilder {
	return &TopicBuilder{root: root}
}

// Notifications returns the topic a session's toast notifications go to.
// An empty session id addresses the broadcast topic.
func (b *TopicBuilder) Notifications(sessionID string) string {
	if sessionID == "" {
		sessionID = BroadcastID
	}
	return b.build(SuffixNotifications, sessionID)
}

// NotificationsWildcard returns the filter matching notifications of every session.
// Result: {root}/notifications/+
func (b *TopicBuilder) NotificationsWildcard() string {
	return b.build(SuffixNotifications, Wildcard)
}

// build joins the parts as {root}/{suffix}/{identifier}.
func (b *TopicBuilder) build(suffix, id string) string {
	return fmt.Sprintf("%s/%s/%s", b.root, suffix, id)
}
