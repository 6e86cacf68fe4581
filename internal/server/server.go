package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/earlysvahn/chatlpu/internal/config"
	"github.com/earlysvahn/chatlpu/internal/fanout"
	"github.com/earlysvahn/chatlpu/internal/registry"
	"github.com/earlysvahn/chatlpu/internal/utils"
)

const DefaultAddr = "0.0.0.0:1337"

// Server exposes the fan-out over HTTP so other tools can query the
// enabled models without the interactive surfaces.
type Server struct {
	Runner *fanout.Runner
	Addr   string
	Log    func(string)
}

func New(runner *fanout.Runner, addr string) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{
		Runner: runner,
		Addr:   addr,
		Log: func(msg string) {
			fmt.Fprintf(os.Stderr, "[chatlpu] %s\n", msg)
		},
	}
}

// Run starts the HTTP server and blocks.
func (s *Server) Run() error {
	s.logf(fmt.Sprintf("server listening on %s", s.Addr))
	return http.ListenAndServe(s.Addr, s.Handler())
}

// Handler builds the route table. Split out for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/models", s.handleModels)
	mux.HandleFunc("/v1/fanout", s.handleFanout)
	return mux
}

func (s *Server) logf(msg string) {
	if s.Log != nil {
		s.Log(msg)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type modelEntry struct {
	DisplayName string `json:"display_name"`
	ID          string `json:"id"`
	Enabled     bool   `json:"enabled"`
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	cfg := config.Load()
	entries := make([]modelEntry, 0, len(registry.All()))
	for _, m := range registry.All() {
		entries = append(entries, modelEntry{
			DisplayName: m.DisplayName,
			ID:          m.ID,
			Enabled:     cfg.Enabled(m.DisplayName),
		})
	}
	writeJSON(w, map[string]any{"models": entries})
}

type fanoutRequest struct {
	Prompt       string   `json:"prompt"`
	Instructions string   `json:"instructions"`
	Models       []string `json:"models"`
}

type fanoutResponse struct {
	Model   string `json:"model"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleFanout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req fanoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Prompt == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}
	for _, name := range req.Models {
		if !registry.Contains(name) {
			http.Error(w, fmt.Sprintf("unknown model: %s", name), http.StatusBadRequest)
			return
		}
	}

	cfg := config.Load()
	enabled := req.Models
	if len(enabled) == 0 {
		enabled = cfg.SelectedModels
	}
	instructions := req.Instructions
	if instructions == "" {
		instructions = cfg.CustomInstructions
	}

	s.logf(fmt.Sprintf("fanout request: %d models, prompt=%q", len(enabled), utils.Truncate(req.Prompt, 60)))

	results, err := s.Runner.Run(r.Context(), enabled, req.Prompt, instructions)
	if err != nil {
		if errors.Is(err, fanout.ErrNoModels) {
			http.Error(w, "no models enabled; enable at least one model", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	out := make([]fanoutResponse, 0, len(results))
	for _, res := range results {
		item := fanoutResponse{Model: res.Model, Content: res.Content}
		if res.Err != nil {
			item.Error = res.Err.Error()
			item.Content = ""
		}
		out = append(out, item)
	}
	writeJSON(w, map[string]any{"responses": out})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
