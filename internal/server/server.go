// Package server provides the optional HTTP monitor for the SafeGate pipeline.
// It reads only the pipeline's published snapshot and the event log; it never
// touches the camera or detector directly.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ayusman/safegate/internal/pipeline"
	"github.com/ayusman/safegate/internal/store"
)

// StatusSource exposes the pipeline's latest published state.
type StatusSource interface {
	Snapshot() pipeline.Snapshot
}

// Config holds the server configuration.
type Config struct {
	Store  *store.Store
	Status StatusSource
}

// Server represents the HTTP monitor for the SafeGate application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Status != nil {
		s.mux.HandleFunc("/api/status", s.handleStatus)
		s.mux.Handle("/api/ws", NewStatusHandler(s.config.Status))
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Status))
	}

	if s.config.Store != nil {
		s.mux.HandleFunc("/api/events", s.handleEvents)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	writeJSON(w, response)
}

// handleStatus handles GET requests to /api/status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, s.config.Status.Snapshot())
}

// handleEvents handles GET requests to /api/events.
// The optional "limit" query parameter caps the number of returned events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	events, err := s.config.Store.Events().Recent(limit)
	if err != nil {
		http.Error(w, "Failed to load events", http.StatusInternalServerError)
		return
	}

	type eventJSON struct {
		ID        string    `json:"id"`
		Status    string    `json:"status"`
		Labels    []string  `json:"labels"`
		CreatedAt time.Time `json:"createdAt"`
	}

	out := make([]eventJSON, len(events))
	for i, e := range events {
		out[i] = eventJSON{
			ID:        e.ID,
			Status:    e.Status,
			Labels:    e.Labels,
			CreatedAt: e.CreatedAt,
		}
	}

	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
