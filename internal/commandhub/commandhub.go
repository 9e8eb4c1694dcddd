package commandhub

import (
	"context"
	"fmt"

	"github.com/autopeer-io/commandhub/internal/commandhub/server"
	httpserver "github.com/autopeer-io/commandhub/internal/commandhub/server/http"
	"github.com/autopeer-io/commandhub/internal/commandhub/storage"
	"github.com/autopeer-io/commandhub/pkg/log"
	"github.com/autopeer-io/commandhub/pkg/options"
)

// CommandHub is the assembled process.
type CommandHub struct {
	manager *server.Manager
	storage storage.Provider
	limiter *httpserver.RateLimiter
}

// Run blocks until ctx is done or a server fails.
func (h *CommandHub) Run(ctx context.Context) error {
	if h.storage != nil {
		if err := h.storage.CheckBucket(ctx); err != nil {
			return fmt.Errorf("report storage unavailable: %w", err)
		}
	}
	return h.manager.Start(ctx)
}

// ApplyRateLimit hot-swaps the API rate limits.
func (h *CommandHub) ApplyRateLimit(o *options.RateLimitOptions) {
	if errs := o.Validate(); len(errs) > 0 {
		log.Warn("Ignoring invalid rate limit settings", "errors", fmt.Sprint(errs))
		return
	}
	h.limiter.Update(o.Enabled, o.RequestsPerSecond, o.Burst)
	log.Info("Rate limit updated", "enabled", o.Enabled, "rps", o.RequestsPerSecond, "burst", o.Burst)
}
