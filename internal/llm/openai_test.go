package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestOpenAI(url string) *OpenAIClient {
	return NewOpenAIClient(OpenAIConfig{
		BaseURL:     url + "/",
		APIKey:      "key",
		Model:       "m",
		Temperature: 0.2,
		Timeout:     time.Second,
	}, zap.NewNop())
}

func TestOpenAIGenerate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("missing auth header")
		}
		var req completionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "m" || len(req.Messages) != 1 || req.Messages[0].Content != "analyze this cv" {
			t.Errorf("unexpected request %+v", req)
		}
		if req.Stream || req.Temperature == nil || *req.Temperature != 0.2 {
			t.Errorf("unexpected stream/temperature %+v", req)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"strong match"}}]}`))
	}))
	defer srv.Close()

	out, err := newTestOpenAI(srv.URL).Generate(context.Background(), "analyze this cv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "strong match" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestOpenAIGenerate_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	}))
	defer srv.Close()

	_, err := newTestOpenAI(srv.URL).Generate(context.Background(), "p")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected StatusError 503, got %v", err)
	}
	if !IsRetryable(err) {
		t.Fatalf("expected 503 to be retryable")
	}
}

func TestOpenAIGenerate_EmptyAndAPIError(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"empty choices", `{"choices":[]}`, ErrEmptyResponse},
		{"blank content", `{"choices":[{"message":{"content":"  "}}]}`, ErrEmptyResponse},
		{"api error", `{"error":{"message":"bad key"}}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestOpenAI(srv.URL).Generate(context.Background(), "p")
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestOpenAIGenerateStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req completionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if !req.Stream {
			t.Errorf("expected stream=true")
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, part := range []string{"Dear ", "", "hiring team"} {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", part)
		}
		fmt.Fprint(w, ": keep-alive\n\ndata: [DONE]\n\n")
	}))
	defer srv.Close()

	var chunks []string
	out, err := newTestOpenAI(srv.URL).GenerateStream(context.Background(), "p", func(c string) error {
		chunks = append(chunks, c)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Dear hiring team" || len(chunks) != 2 {
		t.Fatalf("unexpected stream result %q %q", out, chunks)
	}
}

func TestOpenAIGenerateStream_CallbackAbort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n\ndata: [DONE]\n\n")
	}))
	defer srv.Close()

	stop := errors.New("client gone")
	_, err := newTestOpenAI(srv.URL).GenerateStream(context.Background(), "p", func(string) error { return stop })
	if !errors.Is(err, stop) {
		t.Fatalf("expected callback error, got %v", err)
	}
}

func TestOpenAIGenerate_OmitsZeroTemperature(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		_ = json.NewDecoder(r.Body).Decode(&raw)
		if _, ok := raw["temperature"]; ok {
			t.Errorf("temperature should be omitted, got %v", raw["temperature"])
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient(OpenAIConfig{BaseURL: srv.URL, APIKey: "key", Model: "m"}, nil)
	if _, err := c.Generate(context.Background(), "p"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
