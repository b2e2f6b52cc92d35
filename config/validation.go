package config

import (
	"fmt"
	"strconv"
)

// ValidateConfig checks that the assembled configuration is usable.
func ValidateConfig(cfg *Config) error {
	port, err := strconv.Atoi(cfg.ServerPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port %q", cfg.ServerPort)
	}

	if cfg.DataDir == "" {
		return fmt.Errorf("data directory must not be empty")
	}

	if cfg.LLM.BaseURL == "" {
		return fmt.Errorf("LLM base URL must not be empty")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("LLM model must not be empty")
	}
	if cfg.LLM.MaxTokens <= 0 {
		return fmt.Errorf("LLM max_tokens must be positive, got %d", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("LLM temperature must be between 0 and 2, got %g", cfg.LLM.Temperature)
	}

	return nil
}
