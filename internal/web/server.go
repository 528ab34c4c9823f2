// Package web exposes the aggregation service as a JSON API.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/hermine-app/insights/internal/analytics"
)

type Server struct {
	router  *http.ServeMux
	port    int
	service *analytics.Service
	log     zerolog.Logger
}

func NewServer(service *analytics.Service, port int, log zerolog.Logger) *Server {
	s := &Server{
		router:  http.NewServeMux(),
		port:    port,
		service: service,
		log:     log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Aggregation endpoints
	s.router.HandleFunc("GET /api/overview", s.handleOverview)
	s.router.HandleFunc("GET /api/conversations", s.handleConversations)
	s.router.HandleFunc("GET /api/costs", s.handleCosts)
	s.router.HandleFunc("GET /api/costs/timeline", s.handleCostTimeline)
	s.router.HandleFunc("GET /api/models", s.handleModels)
	s.router.HandleFunc("GET /api/durations", s.handleDurations)
	s.router.HandleFunc("GET /api/long-conversations", s.handleLongConversations)
	s.router.HandleFunc("GET /api/feedback", s.handleFeedback)
	s.router.HandleFunc("GET /api/docs", s.handleDocs)

	// User endpoints
	s.router.HandleFunc("GET /api/users/connections", s.handleConnections)
	s.router.HandleFunc("GET /api/users/emails", s.handleEmailGroups)
}

// Handler returns the routed handler wrapped with request-id and access
// logging middleware.
func (s *Server) Handler() http.Handler {
	return withRequestID(withAccessLog(s.log, s.router))
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info().Int("port", s.port).Msg("starting server")

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil // Graceful shutdown
	}
	return err
}
