package config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandleConfig(t *testing.T) {
	h := NewHandler(Response{
		Store:          "file",
		Industries:     12,
		ReferenceYear:  2026,
		MaxBatchInputs: 500,
		Commentary:     CommentaryStatus{Enabled: true, Provider: "deepseek", Model: "deepseek-chat"},
	})
	mux := http.NewServeMux()
	h.Register(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Store != "file" || resp.Industries != 12 || resp.MaxBatchInputs != 500 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Commentary.Provider != "deepseek" {
		t.Errorf("Expected provider deepseek, got %s", resp.Commentary.Provider)
	}
	if len(resp.Commentary.Available) != 2 {
		t.Errorf("Expected 2 available providers, got %v", resp.Commentary.Available)
	}
}

func TestHandleConfigCommentaryDisabled(t *testing.T) {
	h := NewHandler(Response{Commentary: CommentaryStatus{Provider: "gemini", Model: "gemini-2.5-flash"}})

	rec := httptest.NewRecorder()
	h.HandleConfig(rec, httptest.NewRequest(http.MethodGet, "/api/config", nil))

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Commentary.Enabled || resp.Commentary.Provider != "" {
		t.Errorf("Expected disabled commentary without provider, got %+v", resp.Commentary)
	}
}

func TestHandleConfigMethods(t *testing.T) {
	h := NewHandler(Response{})

	tests := []struct {
		method string
		want   int
	}{
		{http.MethodOptions, http.StatusOK},
		{http.MethodPost, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.HandleConfig(rec, httptest.NewRequest(tt.method, "/api/config", nil))
		if rec.Code != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.method, tt.want, rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Errorf("%s: missing CORS header", tt.method)
		}
	}
}
