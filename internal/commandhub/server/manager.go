package server

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/autopeer-io/commandhub/pkg/log"
)

// Server defines the common interface for all sub-servers (http, mqtt).
type Server interface {
	Start(ctx context.Context) error
}

// Manager manages the lifecycle of all protocol servers.
type Manager struct {
	servers []Server
}

// NewManager creates a manager for servers. Nil entries are skipped.
func NewManager(servers ...Server) *Manager {
	m := &Manager{}
	for _, s := range servers {
		if s != nil {
			m.servers = append(m.servers, s)
		}
	}
	return m
}

// Start launches all servers in parallel and waits for termination.
// The first server to fail stops the others.
func (m *Manager) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, srv := range m.servers {
		g.Go(func() error {
			return srv.Start(ctx)
		})
	}

	log.Info("All servers starting...", "count", len(m.servers))
	return g.Wait()
}
