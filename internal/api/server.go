// Package api provides the Scofield study REST API server. Handlers read
// from an immutable pipeline result snapshot that can be swapped atomically
// on reload; connected WebSocket clients are notified of each swap.
package api

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/FocuswithJustin/ScofieldStudy/core/pipeline"
	"github.com/FocuswithJustin/ScofieldStudy/internal/logging"
)

// Server serves the REST API over a pipeline result snapshot.
type Server struct {
	cfg      Config
	hub      *Hub
	snapshot atomic.Pointer[pipeline.Result]
}

// NewServer creates a server for the given initial result.
func NewServer(cfg Config, result *pipeline.Result) *Server {
	s := &Server{
		cfg: cfg,
		hub: NewHub(),
	}
	s.snapshot.Store(result)
	return s
}

// Hub returns the WebSocket hub; callers composing their own server must
// run it before serving.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Result returns the current snapshot.
func (s *Server) Result() *pipeline.Result {
	return s.snapshot.Load()
}

// Reload swaps in a new snapshot and notifies WebSocket clients.
func (s *Server) Reload(result *pipeline.Result) {
	s.snapshot.Store(result)
	s.hub.Broadcast(EventMessage{
		Type:    "reload",
		Message: "study data reloaded",
		Data: map[string]interface{}{
			"verses": result.Stats.VersesLoaded,
			"notes":  result.Stats.NotesLoaded,
			"themes": result.Stats.Themes,
		},
	})
	logging.Info("snapshot_reloaded",
		"verses", result.Stats.VersesLoaded,
		"notes", result.Stats.NotesLoaded)
}

// Handler returns the full HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/books", s.handleBooks)
	mux.HandleFunc("/api/verses/", s.handleChapter)
	mux.HandleFunc("/api/verse/", s.handleVerse)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/themes", s.handleThemes)
	mux.HandleFunc("/api/theme/", s.handleTheme)
	mux.HandleFunc("/api/reading-plans", s.handlePlans)
	mux.HandleFunc("/api/statistics", s.handleStatistics)
	mux.HandleFunc("/ws", s.handleWebSocket)

	var handler http.Handler = mux
	handler = s.corsMiddleware(handler)
	handler = logging.CombinedMiddleware(handler)
	return handler
}

// Start runs the hub and blocks serving HTTP.
func (s *Server) Start() error {
	go s.hub.Run()

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	logging.ServerStartup("rest_api", addr,
		"websocket_path", "/ws")
	return http.ListenAndServe(addr, s.Handler())
}

// corsMiddleware applies CORS headers per the configured origin allowlist.
// An empty allowlist permits all origins.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(s.cfg.AllowedOrigins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "":
			for _, allowed := range s.cfg.AllowedOrigins {
				if origin == allowed {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
					break
				}
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

