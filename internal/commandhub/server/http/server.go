package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/autopeer-io/commandhub/internal/pkg/middleware"
	"github.com/autopeer-io/commandhub/pkg/log"
	"github.com/autopeer-io/commandhub/pkg/options"
)

// responseGrace is how long past the request deadline a response may still be
// written, so an action cut short by the deadline still reports its failure.
const responseGrace = 5 * time.Second

// ReadinessCheck reports why the process cannot serve traffic yet.
type ReadinessCheck func(ctx context.Context) error

type Server struct {
	server  *http.Server
	options *options.HttpOptions
	logger  log.Logger
}

func NewServer(opts *options.HttpOptions, h *Handler, limiter *RateLimiter, logger log.Logger, checks ...ReadinessCheck) *Server {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger = logger.WithName("http")

	return &Server{
		server: &http.Server{
			Addr:         opts.Addr,
			Handler:      middleware.Timeout(opts.Timeout)(NewRouter(h, limiter, logger, checks...)),
			ReadTimeout:  opts.Timeout,
			WriteTimeout: opts.Timeout + responseGrace,
		},
		options: opts,
		logger:  logger,
	}
}

// NewRouter builds the probes, the metrics endpoint and the command API.
func NewRouter(h *Handler, limiter *RateLimiter, logger log.Logger, checks ...ReadinessCheck) *mux.Router {
	r := mux.NewRouter()

	// Basic Liveness Probe
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(RequestLogging(logger), Metrics)
	if limiter != nil {
		api.Use(limiter.Middleware)
	}
	h.Register(api)

	return r
}

func (s *Server) Start(ctx context.Context) error {
	lis, err := net.Listen(s.options.Network, s.server.Addr)
	if err != nil {
		return err
	}
	return s.serve(ctx, lis)
}

func (s *Server) serve(ctx context.Context, lis net.Listener) error {
	s.logger.Info("Starting HTTP Server", "addr", lis.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.options.ShutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down HTTP Server")
		return s.server.Shutdown(shutdownCtx)
	}
}
