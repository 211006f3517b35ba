// Package server exposes the dashboard session over a local HTTP API for
// the browser frontend.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	appconfig "github.com/echodeck/echodeck/config"
	"github.com/echodeck/echodeck/internal/log"
	"github.com/echodeck/echodeck/internal/oracle"
	"github.com/echodeck/echodeck/internal/session"
)

// Server wraps a session behind an HTTP API.
type Server struct {
	sess     *session.Session
	chat     *oracle.Client
	settings appconfig.ServeSettings
	http     *http.Server

	// lazily created conversational session, seeded on first use
	chatMu      sync.Mutex
	chatSession *oracle.ChatSession
}

// New builds a server around an existing session. A nil chat client
// disables the chat endpoint.
func New(sess *session.Session, chat *oracle.Client, settings appconfig.ServeSettings) *Server {
	s := &Server{
		sess:     sess,
		chat:     chat,
		settings: settings,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: settings.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)

	r.Get("/api/healthz", s.handleHealthz)
	r.Get("/api/state", s.handleState)
	r.Post("/api/refresh", s.handleRefresh)
	r.Post("/api/tasks/{id}/complete", s.handleCompleteTask)
	r.Post("/api/tasks/reorder", s.handleReorder)
	r.Post("/api/tier", s.handleSetTier)
	r.Get("/api/stream", s.handleStream)
	r.Get("/api/history", s.handleHistory)
	r.Post("/api/plan", s.handlePlan)
	r.Post("/api/chat", s.handleChat)

	s.http = &http.Server{
		Addr:              settings.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	log.Info("serving dashboard API", "addr", s.settings.Addr)
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
