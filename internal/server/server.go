// Package server exposes the kiosk backend to the webview front-end:
// recorder commands and the recording library as JSON endpoints, recorder
// events as an SSE stream.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rajeshpachaikani/honeybee-kiosk-app/internal/config"
	"github.com/rajeshpachaikani/honeybee-kiosk-app/internal/recorder"
	"github.com/rajeshpachaikani/honeybee-kiosk-app/internal/service"
)

// Server is the web server backing the kiosk front-end.
type Server struct {
	service service.Service
	broker  *Broker
	port    string
}

// StartResponse is the JSON response for the start endpoint.
type StartResponse struct {
	Status string `json:"status"`
}

// StatusResponse is the JSON response for the status endpoint.
type StatusResponse struct {
	IsRecording bool `json:"is_recording"`
}

// RecordingsResponse is the JSON response for the recordings listing.
type RecordingsResponse struct {
	Recordings []recorder.RecordingInfo `json:"recordings"`
	TotalCount int                      `json:"total_count"`
}

// AudioResponse carries one recording as a data URL.
type AudioResponse struct {
	DataURL string `json:"data_url"`
}

// GenericResponse represents a generic API response.
type GenericResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// New creates a server over the production capture backend.
func New(cfg *config.Config, port string) *Server {
	return newServer(cfg, port, recorder.MalgoBackend{})
}

func newServer(cfg *config.Config, port string, backend recorder.CaptureBackend) *Server {
	broker := NewBroker()
	svc := service.New(cfg, backend, broker)

	return &Server{
		service: svc,
		broker:  broker,
		port:    port,
	}
}

// Handler returns the route table. Split out from Start for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/recorder/start", s.handleStart)
	mux.HandleFunc("/api/recorder/stop", s.handleStop)
	mux.HandleFunc("/api/recorder/status", s.handleStatus)
	mux.HandleFunc("/api/recordings", s.handleRecordings)
	mux.HandleFunc("/api/recordings/audio", s.handleAudio)
	mux.Handle("/events", s.broker)
	return mux
}

// Start runs the server. Blocks until the listener fails.
func (s *Server) Start() error {
	slog.Info("Kiosk backend listening", "port", s.port)
	if err := http.ListenAndServe(":"+s.port, s.Handler()); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	status, err := s.service.StartRecording()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, GenericResponse{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, StartResponse{Status: status})
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	result, err := s.service.StopRecording()
	if err != nil {
		if errors.Is(err, recorder.ErrNotRecording) {
			writeJSON(w, http.StatusConflict, GenericResponse{Success: false, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, GenericResponse{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{IsRecording: s.service.IsRecording()})
}

func (s *Server) handleRecordings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		recordings, err := s.service.ListRecordings()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, GenericResponse{Success: false, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, RecordingsResponse{Recordings: recordings, TotalCount: len(recordings)})

	case http.MethodDelete:
		path := r.URL.Query().Get("path")
		if path == "" {
			writeJSON(w, http.StatusBadRequest, GenericResponse{Success: false, Error: "missing path parameter"})
			return
		}
		if err := s.service.DeleteRecording(path); err != nil {
			writeJSON(w, http.StatusForbidden, GenericResponse{Success: false, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, GenericResponse{Success: true, Message: "recording deleted"})

	default:
		writeMethodNotAllowed(w)
	}
}

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, GenericResponse{Success: false, Error: "missing path parameter"})
		return
	}

	dataURL, err := s.service.ReadRecording(path)
	if err != nil {
		writeJSON(w, http.StatusNotFound, GenericResponse{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, AudioResponse{DataURL: dataURL})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, GenericResponse{Success: false, Error: "method not allowed"})
}
