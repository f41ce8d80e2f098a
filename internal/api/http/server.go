package http

import (
	"context"
	"net/http"
	"sync"

	"github.com/dwalleck/TopicTracker/internal/adapter"
	"github.com/dwalleck/TopicTracker/internal/logger"
	"github.com/dwalleck/TopicTracker/internal/store"
	"github.com/rs/zerolog"
)

// Server is the process's single HTTP listener, serving both the
// SNS-shaped ingest endpoint and the verification API.
type Server struct {
	httpServer *http.Server
	addr       string
	log        zerolog.Logger
	ready      bool
	mu         sync.RWMutex
}

// NewServer builds a Server bound to addr, backed by store s and dispatching
// ingest traffic through a.
func NewServer(addr string, a *adapter.Adapter, s *store.Store, verificationPrefix string) *Server {
	log := logger.WithComponent("http")

	srv := &Server{
		addr: addr,
		log:  log,
	}

	router := NewRouter(a, s, verificationPrefix, log)

	srv.httpServer = &http.Server{
		Addr:    addr,
		Handler: router.Handler(),
	}

	return srv
}

// Start begins serving in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	s.log.Info().Str("addr", s.addr).Msg("starting HTTP server")

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	s.ready = true
	return nil
}

// Stop gracefully shuts the server down, honoring ctx's deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return nil
	}

	s.log.Info().Msg("stopping HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.httpServer.Close()
		return err
	}

	s.ready = false
	return nil
}

// Ready reports whether the server has been started.
func (s *Server) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}
