package http

import (
	"net/http"

	"github.com/dwalleck/TopicTracker/internal/adapter"
	"github.com/dwalleck/TopicTracker/internal/api/http/handlers"
	"github.com/dwalleck/TopicTracker/internal/api/http/middleware"
	"github.com/dwalleck/TopicTracker/internal/store"
	"github.com/rs/zerolog"
)

// Router builds the process's single mux: the SNS-shaped ingest endpoint
// at "/" and the verification API under a configurable prefix.
type Router struct {
	mux *http.ServeMux
}

// NewRouter wires the ingest adapter and the verification store into one
// http.ServeMux, mounted under verificationPrefix.
func NewRouter(a *adapter.Adapter, s *store.Store, verificationPrefix string, log zerolog.Logger) *Router {
	mux := http.NewServeMux()
	chain := middleware.Chain(
		middleware.Recovery(log),
		middleware.Logging(log),
	)

	msgHandlers := handlers.NewMessageHandlers(s)

	mux.Handle("GET /healthz", chain(http.HandlerFunc(handlers.HealthCheck)))
	mux.Handle("POST /{$}", chain(handlers.IngestHandler(a)))

	mux.Handle("GET "+verificationPrefix, chain(http.HandlerFunc(msgHandlers.List)))
	mux.Handle("DELETE "+verificationPrefix, chain(http.HandlerFunc(msgHandlers.Delete)))
	mux.Handle("GET "+verificationPrefix+"/{id}", chain(http.HandlerFunc(msgHandlers.Get)))

	return &Router{mux: mux}
}

// Handler returns the underlying http.Handler.
func (r *Router) Handler() http.Handler {
	return r.mux
}
