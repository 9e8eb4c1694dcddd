package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/autopeer-io/commandhub/internal/commandhub/core"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/internal/pkg/metrics"
	"github.com/autopeer-io/commandhub/pkg/log"
	pkgmqtt "github.com/autopeer-io/commandhub/pkg/mqtt"
	"github.com/autopeer-io/commandhub/pkg/mqtt/topic"
)

const publishTimeout = 5 * time.Second

var _ core.Notifier = (*MQTTNotifier)(nil)

// MQTTNotifier publishes toasts to {root}/notifications/{sessionID}, where the
// dashboard of that session is subscribed.
type MQTTNotifier struct {
	client pkgmqtt.Client
	topics *topic.TopicBuilder
	qos    int
	logger log.Logger
	now    func() time.Time
}

// NewMQTTNotifier wraps an MQTT client. The client must be started by the caller.
func NewMQTTNotifier(client pkgmqtt.Client, topicRoot string, qos int, logger log.Logger) *MQTTNotifier {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &MQTTNotifier{
		client: client,
		topics: topic.NewTopicBuilder(topicRoot),
		qos:    qos,
		logger: logger.WithName("mqtt-notifier"),
		now:    time.Now,
	}
}

func (n *MQTTNotifier) Success(ctx context.Context, message string) {
	n.publish(ctx, model.LevelSuccess, message)
}

func (n *MQTTNotifier) Error(ctx context.Context, message string) {
	n.publish(ctx, model.LevelError, message)
}

// publish never fails the caller. Delivery problems are logged and counted.
func (n *MQTTNotifier) publish(ctx context.Context, level model.Level, message string) {
	sessionID := core.SessionIDFromContext(ctx)
	payload, err := json.Marshal(model.Notification{
		Level:     level,
		Message:   message,
		SessionID: sessionID,
		Timestamp: n.now().UTC(),
	})
	if err != nil {
		n.logger.Error(err, "Failed to encode notification")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	t := n.topics.Notifications(sessionID)
	if err := n.client.Publish(ctx, t, n.qos, false, payload); err != nil {
		metrics.NotificationsTotal.WithLabelValues("mqtt", string(level), "failed").Inc()
		n.logger.Error(err, "Failed to publish notification", "topic", t)
		return
	}
	metrics.NotificationsTotal.WithLabelValues("mqtt", string(level), "sent").Inc()
}
