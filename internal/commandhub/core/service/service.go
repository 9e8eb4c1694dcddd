package service

import (
	"errors"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/executor"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/registry"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/workflow"
	"github.com/autopeer-io/commandhub/internal/pkg/metrics"
	"github.com/autopeer-io/commandhub/pkg/log"
)

var (
	ErrUnknownAction   = errors.New("unknown action")
	ErrSessionNotFound = errors.New("session not found")
	ErrActionInFlight  = errors.New("an action is already running for this session")
)

// Config holds the session settings of the service.
type Config struct {
	// IdleTTL drops a session, and its open modal, after this long without use.
	IdleTTL time.Duration

	// CleanupInterval is how often expired sessions are purged.
	CleanupInterval time.Duration

	// ConflictPolicy is applied by every session's modal controller.
	ConflictPolicy workflow.ConflictPolicy
}

// Service implements the command bar use cases on top of the registry,
// the per-session modal controllers and the executor.
type Service struct {
	registry *registry.Registry
	executor *executor.Executor
	sessions *cache.Cache
	policy   workflow.ConflictPolicy
	logger   log.Logger
}

// New creates the command bar service.
func New(reg *registry.Registry, exec *executor.Executor, cfg Config, logger log.Logger) *Service {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}
	if cfg.ConflictPolicy == "" {
		cfg.ConflictPolicy = workflow.ConflictReplace
	}

	sessions := cache.New(cfg.IdleTTL, cfg.CleanupInterval)
	sessions.OnEvicted(func(id string, _ any) {
		metrics.ActiveSessions.Dec()
		logger.Debug("Session dropped", "session", id)
	})

	return &Service{
		registry: reg,
		executor: exec,
		sessions: sessions,
		policy:   cfg.ConflictPolicy,
		logger:   logger.WithName("service"),
	}
}
