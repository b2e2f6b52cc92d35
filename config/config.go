package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults for the generation service. The router speaks the OpenAI
// chat-completions dialect.
const (
	DefaultLLMBaseURL = "https://router.huggingface.co/v1"
	DefaultLLMModel   = "HuggingFaceTB/SmolLM3-3B:hf-inference"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// DataDir is the base location of the dataset/index/embedding artifacts.
	DataDir string

	// LLM holds the generation-client tunables.
	LLM LLMConfig
}

// LLMConfig configures the chat-completion client. The credential itself is
// not part of the config: it is resolved lazily from HF_API_TOKEN (or
// HF_API_TOKEN_FILE) on the first generation call.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	TimeoutSecs int     `yaml:"timeout"`
}

type fileConfig struct {
	LLM LLMConfig `yaml:"llm"`
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// (COOKMATE_CONFIG, falling back to cookmate.yaml when present) and finally
// environment variable overrides, in that order of precedence.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost: getenv("COOKMATE_HOST", "0.0.0.0"),
		ServerPort: getenv("COOKMATE_PORT", "8000"),
		DataDir:    getenv("COOKMATE_DATA_DIR", "."),
		LLM: LLMConfig{
			BaseURL:     DefaultLLMBaseURL,
			Model:       DefaultLLMModel,
			MaxTokens:   512,
			Temperature: 0.7,
			TimeoutSecs: 60,
		},
	}

	if path := configFilePath(); path != "" {
		if err := loadConfigFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if baseURL := os.Getenv("HF_BASE_URL"); baseURL != "" {
		cfg.LLM.BaseURL = baseURL
	}
	if model := os.Getenv("HF_MODEL"); model != "" {
		cfg.LLM.Model = model
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func configFilePath() string {
	if path := os.Getenv("COOKMATE_CONFIG"); path != "" {
		return path
	}
	if _, err := os.Stat("cookmate.yaml"); err == nil {
		return "cookmate.yaml"
	}
	return ""
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.LLM.BaseURL != "" {
		cfg.LLM.BaseURL = fc.LLM.BaseURL
	}
	if fc.LLM.Model != "" {
		cfg.LLM.Model = fc.LLM.Model
	}
	if fc.LLM.MaxTokens > 0 {
		cfg.LLM.MaxTokens = fc.LLM.MaxTokens
	}
	if fc.LLM.Temperature > 0 {
		cfg.LLM.Temperature = fc.LLM.Temperature
	}
	if fc.LLM.TimeoutSecs > 0 {
		cfg.LLM.TimeoutSecs = fc.LLM.TimeoutSecs
	}

	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
