package notifier

import (
	"context"

	"github.com/autopeer-io/commandhub/internal/commandhub/core"
	"github.com/autopeer-io/commandhub/internal/pkg/metrics"
	"github.com/autopeer-io/commandhub/pkg/log"
)

var _ core.Notifier = (*LogNotifier)(nil)

// LogNotifier writes notifications to the log. It is used when no broker is configured.
type LogNotifier struct {
	logger log.Logger
}

func NewLogNotifier(logger log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &LogNotifier{logger: logger.WithName("notifier")}
}

func (n *LogNotifier) Success(ctx context.Context, message string) {
	n.logger.Info("Notification", "level", "success", "message", message, "session", core.SessionIDFromContext(ctx))
	metrics.NotificationsTotal.WithLabelValues("log", "success", "sent").Inc()
}

func (n *LogNotifier) Error(ctx context.Context, message string) {
	n.logger.Warn("Notification", "level", "error", "message", message, "session", core.SessionIDFromContext(ctx))
	metrics.NotificationsTotal.WithLabelValues("log", "error", "sent").Inc()
}
