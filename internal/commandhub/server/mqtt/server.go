package mqtt

import (
	"context"
	"time"

	"github.com/autopeer-io/commandhub/pkg/log"
	pkgmqtt "github.com/autopeer-io/commandhub/pkg/mqtt"
)

const disconnectTimeout = 5 * time.Second

// Server owns the broker connection used by the notification publisher.
// It connects on Start and disconnects once ctx is done.
type Server struct {
	client pkgmqtt.Client
	logger log.Logger
}

func NewServer(client pkgmqtt.Client, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Server{client: client, logger: logger.WithName("mqtt")}
}

func (s *Server) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return err
	}

	defer func() {
		s.logger.Info("Disconnecting MQTT client...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), disconnectTimeout)
		defer cancel()
		s.client.Disconnect(shutdownCtx)
	}()

	s.logger.Info("Waiting for MQTT connection...")
	if err := s.client.AwaitConnection(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	s.logger.Info("MQTT Connected")

	<-ctx.Done()
	return nil
}

// Ready reports an error while the broker connection is down.
func (s *Server) Ready(context.Context) error {
	if !s.client.IsConnected() {
		return errNotConnected
	}
	return nil
}
