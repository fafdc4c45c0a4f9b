package ollama

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
)

func TestClient_Complete(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		responseBody string
		json         bool
		want         string
		wantErr      bool
	}{
		{
			name:         "Success",
			status:       http.StatusOK,
			responseBody: `{"message":{"role":"assistant","content":"Try Sunset Drive."}}`,
			want:         "Try Sunset Drive.",
		},
		{
			name:         "JSON format",
			status:       http.StatusOK,
			responseBody: `{"message":{"role":"assistant","content":"{\"ok\":true}"}}`,
			json:         true,
			want:         `{"ok":true}`,
		},
		{
			name:         "Server error",
			status:       http.StatusBadRequest,
			responseBody: `{"error":"bad"}`,
			wantErr:      true,
		},
		{
			name:         "Error field",
			status:       http.StatusOK,
			responseBody: `{"error":"model not found"}`,
			wantErr:      true,
		},
		{
			name:         "Empty content",
			status:       http.StatusOK,
			responseBody: `{"message":{"role":"assistant","content":"   "}}`,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRequest chatRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/chat" {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				if r.Method != http.MethodPost {
					w.WriteHeader(http.StatusMethodNotAllowed)
					return
				}
				if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer srv.Close()

			client := NewClient(Config{BaseURL: srv.URL})
			text, err := client.Complete(context.Background(), domain.CompletionRequest{Prompt: "test message", JSON: tt.json})

			if (err != nil) != tt.wantErr {
				t.Fatalf("expected err=%v, got %v", tt.wantErr, err)
			}
			if tt.wantErr {
				return
			}
			if text != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, text)
			}
			if gotRequest.Model != defaultModel {
				t.Fatalf("expected model %s, got %q", defaultModel, gotRequest.Model)
			}
			if gotRequest.Stream {
				t.Fatalf("expected stream=false")
			}
			wantFormat := ""
			if tt.json {
				wantFormat = "json"
			}
			if gotRequest.Format != wantFormat {
				t.Fatalf("expected format %q, got %q", wantFormat, gotRequest.Format)
			}
			if len(gotRequest.Messages) != 1 || gotRequest.Messages[0].Role != "user" || gotRequest.Messages[0].Content != "test message" {
				t.Fatalf("unexpected messages: %+v", gotRequest.Messages)
			}
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://ollama:11434/", Model: "llama3"})
	if c.baseURL != "http://ollama:11434" {
		t.Fatalf("expected trailing slash trimmed, got %q", c.baseURL)
	}
	if c.model != "llama3" {
		t.Fatalf("expected model override, got %q", c.model)
	}
	if NewClient(Config{}).baseURL != defaultBaseURL {
		t.Fatalf("expected default base URL")
	}
}
