// Package server exposes the scan protocol over a WebSocket endpoint and
// serves the static client assets.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/sadopc/diskview/internal/config"
	"github.com/sadopc/diskview/internal/drives"
	"github.com/sadopc/diskview/internal/protocol"
	"github.com/sadopc/diskview/internal/task"
)

// Server owns the task registry shared by every connection.
type Server struct {
	cfg      *config.Config
	logger   *log.Logger
	registry *task.Registry
	upgrader websocket.Upgrader
}

// New creates a server from the given configuration.
func New(cfg *config.Config, logger *log.Logger) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger,
		registry: task.NewRegistry(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Registry exposes the shared task registry.
func (s *Server) Registry() *task.Registry { return s.registry }

// Router builds the HTTP routes: the WebSocket endpoint, a couple of
// plain JSON endpoints, and the static client assets.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/ws", s.handleWS)
	r.Get("/api/health", s.handleHealth)
	r.Get("/api/drives", s.handleDrives)

	if s.cfg.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(s.cfg.StaticDir))
		r.Handle("/*", fileServer)
	}

	return r
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Printf("[server] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Printf("[server] listening on %s", s.cfg.Addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// handleWS upgrades the connection and runs the read loop. The walk
// itself happens on per-task goroutines; the read loop never blocks on a
// running scan, so stop requests from the same connection dispatch
// promptly.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("[ws] upgrade failed: %v", err)
		return
	}

	sess := newSession(s, NewPublisher(conn, s.logger))
	defer sess.close()

	s.logger.Printf("[ws] client connected: %s", r.RemoteAddr)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.logger.Printf("[ws] client disconnected: %s", r.RemoteAddr)
			return
		}
		sess.handle(data)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleDrives(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(protocol.DrivesPayload{Drives: drives.List()})
}
