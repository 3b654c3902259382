package genai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestNewHTTPTransportDefaults(t *testing.T) {
	t.Parallel()

	tr, err := NewHTTPTransport(Config{}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewHTTPTransport: %v", err)
	}
	defer tr.Close()

	if tr.cfg.BaseURL != "https://generativelanguage.googleapis.com" {
		t.Fatalf("unexpected default BaseURL: %s", tr.cfg.BaseURL)
	}
	if tr.cfg.Model != "gemini-1.5-flash" {
		t.Fatalf("unexpected default model: %s", tr.cfg.Model)
	}
}

func TestGenerateSuccess(t *testing.T) {
	t.Parallel()

	var gotReq providerGenerateRequest
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-1.5-flash:generateContent" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}

		gotKey = r.Header.Get("x-goog-api-key")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if err := json.Unmarshal(body, &gotReq); err != nil {
			t.Fatalf("unmarshal request: %v", err)
		}

		resp := providerGenerateResponse{
			Candidates: []providerCandidate{
				{
					Content: providerContent{
						Role:  "model",
						Parts: []providerPart{{Text: `{"courses":`}, {Text: `[]}`}},
					},
					FinishReason: "STOP",
				},
			},
			UsageMetadata: &providerUsageMetadata{
				PromptTokenCount:     12,
				CandidatesTokenCount: 8,
				TotalTokenCount:      20,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport(Config{BaseURL: srv.URL}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewHTTPTransport: %v", err)
	}
	defer tr.Close()

	tr.Configure("test-key")

	text, err := tr.Generate(context.Background(), "list some courses")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if gotKey != "test-key" {
		t.Fatalf("unexpected api key header: %s", gotKey)
	}
	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 1 {
		t.Fatalf("unexpected request contents: %#v", gotReq.Contents)
	}
	if gotReq.Contents[0].Parts[0].Text != "list some courses" {
		t.Fatalf("unexpected prompt sent: %q", gotReq.Contents[0].Parts[0].Text)
	}

	// Text parts are concatenated.
	if text != `{"courses":[]}` {
		t.Fatalf("unexpected response text: %q", text)
	}
}

func TestGenerateProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport(Config{BaseURL: srv.URL}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewHTTPTransport: %v", err)
	}
	defer tr.Close()

	tr.Configure("key")

	_, err = tr.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatalf("expected upstream error")
	}
	if !strings.Contains(err.Error(), "Quota exceeded") || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected structured provider error, got %v", err)
	}
}

func TestGenerateNoCandidates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport(Config{BaseURL: srv.URL}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewHTTPTransport: %v", err)
	}
	defer tr.Close()

	tr.Configure("key")

	_, err = tr.Generate(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "no candidates") {
		t.Fatalf("expected no-candidates error, got %v", err)
	}
}

func TestGenerateRequiresKey(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("server should not be called without a key")
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport(Config{BaseURL: srv.URL}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewHTTPTransport: %v", err)
	}
	defer tr.Close()

	_, err = tr.Generate(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "no API key") {
		t.Fatalf("expected missing-key error, got %v", err)
	}
}
