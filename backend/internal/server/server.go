// Package server exposes the debug view: the embedded frontend and the
// WebSocket feed.
package server

import (
	"context"
	"io/fs"
	"log"
	"net/http"

	"github.com/soar/xrplayground/backend/internal/hub"
)

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	commander   hub.Commander
	frontendFS  fs.FS
	addr        string
	httpServer  *http.Server
	logger      *log.Logger
}

func New(h *hub.Hub, b *hub.Broadcaster, cmd hub.Commander, frontendFS fs.FS, addr string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		hub:         h,
		broadcaster: b,
		commander:   cmd,
		frontendFS:  frontendFS,
		addr:        addr,
		logger:      logger,
	}
}

// Handler builds the routes. The frontend is minified once, here.
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster, s.commander, s.logger))

	// Static files (frontend)
	assets, err := newAssetHandler(s.frontendFS)
	if err != nil {
		return nil, err
	}
	mux.Handle("/", assets)
	return mux, nil
}

func (s *Server) ListenAndServe() error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: handler,
	}

	s.logger.Printf("HTTP server listening on %s", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		s.logger.Println("Shutting down HTTP server...")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
