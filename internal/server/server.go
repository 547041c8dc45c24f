// Package server provides the HTTP REST API for the resume tailoring service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/KalebGordon/Rivoney/internal/tailor"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	svc        *tailor.Service
	validator  *validator.Validate
	verbose    bool
}

// Config holds server configuration
type Config struct {
	Port    int
	Verbose bool
}

// New creates a new server instance
func New(cfg Config, svc *tailor.Service) *Server {
	s := &Server{
		svc:       svc,
		validator: validator.New(),
		verbose:   cfg.Verbose,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /resume/save", s.handleSaveResume)
	mux.HandleFunc("GET /resume/latest", s.handleLatestResume)
	mux.HandleFunc("GET /template/options", s.handleTemplateOptions)
	mux.HandleFunc("POST /analyze/gaps", s.handleAnalyzeGaps)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Generation waits on the model
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the configured HTTP handler, including middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
