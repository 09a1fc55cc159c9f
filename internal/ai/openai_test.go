package ai

import (
	"context"
	"encoding/json"
	"errors"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/option"
)

func chatCompletion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 0,
		"model":   "gpt-4.1-mini",
		"choices": []any{
			map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
		"usage": map[string]any{"prompt_tokens": 200, "completion_tokens": 40, "total_tokens": 240},
	}
}

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider("sk-test", "", RequestPricing{Input: 0.40, Output: 1.60},
		option.WithBaseURL(server.URL+"/"),
		option.WithMaxRetries(0),
	)
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}
	return p
}

func TestOpenAIProvider_AnalyzePhoto(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"isAcceptable": false, "issues": [{"issueType": "Background", "recommendation": "Use a plain wall."}]}`))
	})

	analysis, err := p.AnalyzePhoto(context.Background(), encodeJPEG(createTestImage(50, 50, color.White)), "image/jpeg")
	if err != nil {
		t.Fatalf("AnalyzePhoto failed: %v", err)
	}

	if !strings.HasSuffix(gotPath, "/chat/completions") {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotBody["model"] != "gpt-4.1-mini" {
		t.Errorf("expected default model, got %v", gotBody["model"])
	}
	if analysis.IsAcceptable || len(analysis.Issues) != 1 || analysis.Issues[0].IssueType != "Background" {
		t.Errorf("unexpected analysis %+v", analysis)
	}
	if usage := p.GetUsage(); usage.InputTokens != 200 || usage.OutputTokens != 40 {
		t.Errorf("expected usage 200/40, got %+v", usage)
	}
}

func TestOpenAIProvider_AnalyzeGivesUp(t *testing.T) {
	calls := 0
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("sorry"))
	})

	_, err := p.AnalyzePhoto(context.Background(), encodeJPEG(createTestImage(10, 10, color.White)), "image/jpeg")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestOpenAIProvider_InvalidImage(t *testing.T) {
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("API must not be called for undecodable input")
	})

	if _, err := p.AnalyzePhoto(context.Background(), []byte("nope"), "image/jpeg"); err == nil {
		t.Error("expected error for invalid image")
	}
}
