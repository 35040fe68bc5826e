package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
)

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}

		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || !strings.Contains(req.Messages[1].Content, "维斯登") {
			t.Errorf("prompt should carry the query, got %+v", req.Messages)
		}

		resp := openai.ChatCompletionResponse{
			ID:    "chatcmpl-123",
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: content,
					},
					FinishReason: "stop",
				},
			},
			Usage: openai.Usage{TotalTokens: 42},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIProvider_SuggestNames_Success(t *testing.T) {
	server := completionServer(t, "1. 维斯登光电有限公司\n2. 维斯登光电科技有限公司\n- 阿里巴巴(中国)有限公司\n")
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		Timeout:    5,
		StrictRoot: true,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.SuggestNames(context.Background(), SuggestRequest{Query: "维斯登光电", Count: 5})
	if err != nil {
		t.Fatalf("SuggestNames failed: %v", err)
	}

	want := []string{"维斯登光电有限公司", "维斯登光电科技有限公司"}
	if !reflect.DeepEqual(resp.Names, want) {
		t.Errorf("Names = %v, want %v", resp.Names, want)
	}
	if len(resp.Rejected) != 1 || resp.Rejected[0] != "阿里巴巴(中国)有限公司" {
		t.Errorf("Rejected = %v", resp.Rejected)
	}
	if resp.TokensUsed != 42 || resp.Model != openai.GPT4oMini {
		t.Errorf("unexpected metadata: %+v", resp)
	}
}

func TestOpenAIProvider_SuggestNames_CountLimit(t *testing.T) {
	server := completionServer(t, "维斯登甲有限公司\n维斯登乙有限公司\n维斯登丙有限公司")
	defer server.Close()

	provider, _ := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})

	resp, err := provider.SuggestNames(context.Background(), SuggestRequest{Query: "维斯登", Count: 2})
	if err != nil {
		t.Fatalf("SuggestNames failed: %v", err)
	}
	if len(resp.Names) != 2 {
		t.Errorf("expected 2 names, got %v", resp.Names)
	}
}

func TestOpenAIProvider_SuggestNames_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "Internal Server Error", "type": "server_error"}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if _, err := provider.SuggestNames(context.Background(), SuggestRequest{Query: "维斯登"}); err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestOpenAIProvider_SuggestNames_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "Rate limit exceeded", "type": "rate_limit_error"}}`))
	}))
	defer server.Close()

	provider, _ := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})

	if _, err := provider.SuggestNames(context.Background(), SuggestRequest{Query: "维斯登"}); err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestOpenAIProvider_SuggestNames_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	provider, _ := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 1})

	// The caller's deadline is shorter than the provider timeout.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := provider.SuggestNames(ctx, SuggestRequest{Query: "维斯登"}); err == nil {
		t.Fatal("Expected timeout error, got nil")
	}
}

func TestOpenAIProvider_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/models" {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"data": [{"id": "gpt-4o-mini"}]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if !provider.IsAvailable(context.Background()) {
		t.Error("Expected available to be true")
	}

	server.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if provider.IsAvailable(context.Background()) {
		t.Error("Expected available to be false on error")
	}
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(Config{}); err == nil {
		t.Error("expected an error without an API key")
	}
}
