package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BiancaGL2104/CookMate-Recipe-Generator/config"
)

func testLLMConfig(baseURL string) config.LLMConfig {
	return config.LLMConfig{
		BaseURL:     baseURL,
		Model:       "test-model",
		MaxTokens:   512,
		Temperature: 0.7,
		TimeoutSecs: 5,
	}
}

func TestLLMService_Complete(t *testing.T) {
	originalToken := os.Getenv("HF_API_TOKEN")
	originalTokenFile := os.Getenv("HF_API_TOKEN_FILE")
	defer func() {
		os.Setenv("HF_API_TOKEN", originalToken)
		os.Setenv("HF_API_TOKEN_FILE", originalTokenFile)
	}()

	t.Run("sends a chat-completion request and returns the content", func(t *testing.T) {
		os.Setenv("HF_API_TOKEN", "test-token")
		os.Unsetenv("HF_API_TOKEN_FILE")

		var gotPath, gotAuth string
		var gotBody Request
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"choices":[{"message":{"content":"{\"title\":\"Pasta\"}"}}]}`))
		}))
		defer ts.Close()

		svc := NewLLMService(testLLMConfig(ts.URL))
		out, err := svc.Complete(context.Background(), "You are a helpful cooking assistant.", "make pasta")

		require.NoError(t, err)
		assert.Equal(t, `{"title":"Pasta"}`, out)
		assert.Equal(t, "/chat/completions", gotPath)
		assert.Equal(t, "Bearer test-token", gotAuth)
		assert.Equal(t, "test-model", gotBody.Model)
		assert.Equal(t, 512, gotBody.MaxTokens)
		assert.Equal(t, 0.7, gotBody.Temperature)
		require.Len(t, gotBody.Messages, 2)
		assert.Equal(t, "system", gotBody.Messages[0].Role)
		assert.Equal(t, "You are a helpful cooking assistant.", gotBody.Messages[0].Content)
		assert.Equal(t, "user", gotBody.Messages[1].Role)
		assert.Equal(t, "make pasta", gotBody.Messages[1].Content)
	})

	t.Run("fails without a token", func(t *testing.T) {
		os.Unsetenv("HF_API_TOKEN")
		os.Unsetenv("HF_API_TOKEN_FILE")

		svc := NewLLMService(testLLMConfig("http://unused"))
		_, err := svc.Complete(context.Background(), "system", "user")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "HF_API_TOKEN or HF_API_TOKEN_FILE must be set")
	})

	t.Run("reads the token from a file", func(t *testing.T) {
		os.Unsetenv("HF_API_TOKEN")
		tokenFile := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("file-token\n"), 0600))
		os.Setenv("HF_API_TOKEN_FILE", tokenFile)

		var gotAuth string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
		}))
		defer ts.Close()

		svc := NewLLMService(testLLMConfig(ts.URL))
		_, err := svc.Complete(context.Background(), "system", "user")

		require.NoError(t, err)
		assert.Equal(t, "Bearer file-token", gotAuth)
	})

	t.Run("fails on empty token file", func(t *testing.T) {
		os.Unsetenv("HF_API_TOKEN")
		tokenFile := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("  \n"), 0600))
		os.Setenv("HF_API_TOKEN_FILE", tokenFile)

		svc := NewLLMService(testLLMConfig("http://unused"))
		_, err := svc.Complete(context.Background(), "system", "user")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "API token file is empty")
	})

	t.Run("surfaces non-200 responses", func(t *testing.T) {
		os.Setenv("HF_API_TOKEN", "test-token")
		os.Unsetenv("HF_API_TOKEN_FILE")

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("model overloaded"))
		}))
		defer ts.Close()

		svc := NewLLMService(testLLMConfig(ts.URL))
		_, err := svc.Complete(context.Background(), "system", "user")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 503")
		assert.Contains(t, err.Error(), "model overloaded")
	})

	t.Run("fails on empty choices", func(t *testing.T) {
		os.Setenv("HF_API_TOKEN", "test-token")
		os.Unsetenv("HF_API_TOKEN_FILE")

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer ts.Close()

		svc := NewLLMService(testLLMConfig(ts.URL))
		_, err := svc.Complete(context.Background(), "system", "user")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no response from API")
	})
}
