package mqtt

import (
	"context"
)

// Client is the publishing side of an MQTT connection.
// It hides the paho connection manager behind the few calls notifiers need.
type Client interface {
	// Start initiates the connection to the broker.
	// It is non-blocking and returns immediately. Use AwaitConnection to wait.
	Start(ctx context.Context) error

	// Disconnect cleanly closes the connection.
	Disconnect(ctx context.Context)

	// Publish sends a message to the specified topic.
	Publish(ctx context.Context, topic string, qos int, retain bool, payload []byte) error

	// AwaitConnection blocks until the client is connected to the broker.
	AwaitConnection(ctx context.Context) error

	// IsConnected reports whether the last connection attempt succeeded
	// and no disconnect has been observed since.
	IsConnected() bool
}
