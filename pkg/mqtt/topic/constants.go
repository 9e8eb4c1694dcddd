package topic

// Standard MQTT wildcard definitions.
const (
	// Wildcard matches exactly one topic level.
	Wildcard = "+"

	// MultiWildcard matches the current level and all below it. It must be last.
	MultiWildcard = "#"
)
