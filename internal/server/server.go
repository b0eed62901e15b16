// Package server exposes the conversation engine over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"career-mentor/internal/common/config"
	"career-mentor/internal/common/logger"
	"career-mentor/internal/engine"
)

// Server wires the engine behind the chatbot HTTP API.
type Server struct {
	engine     *engine.Engine
	log        logger.Logger
	httpServer *http.Server
}

// New builds the server with its routes registered.
func New(eng *engine.Engine, log logger.Logger, cfg config.ServerConfig) *Server {
	s := &Server{
		engine: eng,
		log:    log,
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Millisecond,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/chatbot/message", s.handleMessage)
	mux.HandleFunc("GET /api/v1/chatbot/history/{sessionId}", s.handleHistory)
	mux.HandleFunc("DELETE /api/v1/chatbot/conversation/{sessionId}", s.handleClearConversation)
	mux.HandleFunc("GET /api/v1/chatbot/suggestions", s.handleSuggestions)
	mux.HandleFunc("POST /api/v1/chatbot/feedback", s.handleFeedback)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return mux
}

// Handler exposes the route table for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	s.log.Info("http server listening", map[string]interface{}{"addr": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
