package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/BiancaGL2104/CookMate-Recipe-Generator/config"
)

// LLMService calls an OpenAI-compatible chat-completions endpoint (the
// Hugging Face router by default). It is deliberately constructible without a
// credential: the token is resolved on each call so that retrieval-only
// deployments boot fine and only generation requests fail with a clear
// configuration error.
type LLMService struct {
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	client      *http.Client
}

// NewLLMService creates a new LLMService instance from the given config.
func NewLLMService(cfg config.LLMConfig) *LLMService {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &LLMService{
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: timeout},
	}
}

// Message represents a message in the chat.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat-completion request body.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

func (s *LLMService) apiToken() (string, error) {
	token := os.Getenv("HF_API_TOKEN")
	if token == "" {
		tokenFile := os.Getenv("HF_API_TOKEN_FILE")
		if tokenFile == "" {
			return "", fmt.Errorf("HF_API_TOKEN or HF_API_TOKEN_FILE must be set")
		}

		tokenBytes, err := os.ReadFile(tokenFile)
		if err != nil {
			return "", fmt.Errorf("failed to read API token file: %w", err)
		}

		token = strings.TrimSpace(string(tokenBytes))
		if token == "" {
			return "", fmt.Errorf("API token file is empty")
		}
	}
	return token, nil
}

// Complete sends one chat-completion round trip and returns the raw model
// output. A single attempt, no retry; the caller owns the failure policy.
func (s *LLMService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	token, err := s.apiToken()
	if err != nil {
		return "", err
	}

	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Choices[0].Message.Content, nil
}
