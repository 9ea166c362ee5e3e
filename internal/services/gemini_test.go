package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/syruplabs/syrup/internal/shared"
)

func TestNewGeminiService(t *testing.T) {
	if _, err := NewGeminiService("", "", "", nil); !errors.Is(err, shared.ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}

	svc, err := NewGeminiService("key", "", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.model != defaultGeminiModel {
		t.Errorf("expected default model, got %s", svc.model)
	}
}

func TestGeminiGenerate(t *testing.T) {
	t.Run("returns first candidate text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.URL.Path, "gemini-pro:generateContent") {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.URL.Query().Get("key") != "test-key" {
				t.Errorf("expected api key in query, got %s", r.URL.RawQuery)
			}

			var req geminiRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "how are streams trending?" {
				t.Errorf("unexpected request payload: %+v", req)
			}

			fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"Streams are up 12% week over week."}]}}]}`)
		}))
		defer server.Close()

		svc, _ := NewGeminiService("test-key", "gemini-pro", server.URL, server.Client())

		text, err := svc.Generate(context.Background(), "how are streams trending?")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "Streams are up 12% week over week." {
			t.Errorf("unexpected answer: %q", text)
		}
	})

	t.Run("non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		svc, _ := NewGeminiService("test-key", "", server.URL, server.Client())

		if _, err := svc.Generate(context.Background(), "question"); err == nil {
			t.Error("expected error on API failure")
		}
	})

	t.Run("empty candidates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"candidates":[]}`)
		}))
		defer server.Close()

		svc, _ := NewGeminiService("test-key", "", server.URL, server.Client())

		if _, err := svc.Generate(context.Background(), "question"); err == nil {
			t.Error("expected error on empty candidates")
		}
	})
}
