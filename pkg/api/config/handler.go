package config

import (
	"encoding/json"
	"net/http"

	"business_valuation/pkg/core/llm"
)

type CommentaryStatus struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	Available []string `json:"available"`
}

type Response struct {
	Store          string           `json:"store"`
	Industries     int              `json:"industries"`
	ReferenceYear  int              `json:"reference_year"`
	Commentary     CommentaryStatus `json:"commentary"`
	MaxBatchInputs int              `json:"max_batch_inputs"`
}

// Handler reports the running service's effective configuration.
// Secrets are never included.
type Handler struct {
	status Response
}

// NewHandler creates a new config handler
func NewHandler(status Response) *Handler {
	if status.Commentary.Available == nil {
		status.Commentary.Available = []string{llm.NameGemini, llm.NameDeepSeek}
	}
	if !status.Commentary.Enabled {
		status.Commentary.Provider = ""
		status.Commentary.Model = ""
	}
	return &Handler{status: status}
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers for local dev
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.status)
}

// Register mounts the handler on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/config", h.HandleConfig)
}
