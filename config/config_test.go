package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"COOKMATE_HOST", "COOKMATE_PORT", "COOKMATE_DATA_DIR",
	"COOKMATE_CONFIG", "HF_BASE_URL", "HF_MODEL",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		original := os.Getenv(key)
		os.Unsetenv(key)
		t.Cleanup(func() { os.Setenv(key, original) })
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		clearConfigEnv(t)

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0", cfg.ServerHost)
		assert.Equal(t, "8000", cfg.ServerPort)
		assert.Equal(t, ".", cfg.DataDir)
		assert.Equal(t, DefaultLLMBaseURL, cfg.LLM.BaseURL)
		assert.Equal(t, DefaultLLMModel, cfg.LLM.Model)
		assert.Equal(t, 512, cfg.LLM.MaxTokens)
		assert.Equal(t, 0.7, cfg.LLM.Temperature)
		assert.Equal(t, 60, cfg.LLM.TimeoutSecs)
	})

	t.Run("reads server settings from the environment", func(t *testing.T) {
		clearConfigEnv(t)
		os.Setenv("COOKMATE_HOST", "127.0.0.1")
		os.Setenv("COOKMATE_PORT", "9000")
		os.Setenv("COOKMATE_DATA_DIR", "/srv/cookmate")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1", cfg.ServerHost)
		assert.Equal(t, "9000", cfg.ServerPort)
		assert.Equal(t, "/srv/cookmate", cfg.DataDir)
	})

	t.Run("merges a YAML config file", func(t *testing.T) {
		clearConfigEnv(t)
		path := filepath.Join(t.TempDir(), "cookmate.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"llm:\n  model: mistralai/Mistral-7B-Instruct-v0.3\n  max_tokens: 1024\n"), 0644))
		os.Setenv("COOKMATE_CONFIG", path)

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "mistralai/Mistral-7B-Instruct-v0.3", cfg.LLM.Model)
		assert.Equal(t, 1024, cfg.LLM.MaxTokens)
		// Fields absent from the file keep their defaults.
		assert.Equal(t, DefaultLLMBaseURL, cfg.LLM.BaseURL)
		assert.Equal(t, 0.7, cfg.LLM.Temperature)
	})

	t.Run("environment overrides win over the file", func(t *testing.T) {
		clearConfigEnv(t)
		path := filepath.Join(t.TempDir(), "cookmate.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"llm:\n  model: file-model\n  base_url: http://file-url\n"), 0644))
		os.Setenv("COOKMATE_CONFIG", path)
		os.Setenv("HF_MODEL", "env-model")
		os.Setenv("HF_BASE_URL", "http://env-url")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "env-model", cfg.LLM.Model)
		assert.Equal(t, "http://env-url", cfg.LLM.BaseURL)
	})

	t.Run("fails on an unreadable config file", func(t *testing.T) {
		clearConfigEnv(t)
		os.Setenv("COOKMATE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

		_, err := LoadConfig()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("fails on malformed YAML", func(t *testing.T) {
		clearConfigEnv(t)
		path := filepath.Join(t.TempDir(), "cookmate.yaml")
		require.NoError(t, os.WriteFile(path, []byte("llm: [not a mapping"), 0644))
		os.Setenv("COOKMATE_CONFIG", path)

		_, err := LoadConfig()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("rejects an invalid port", func(t *testing.T) {
		clearConfigEnv(t)
		os.Setenv("COOKMATE_PORT", "not-a-port")

		_, err := LoadConfig()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid server port")
	})
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServerHost: "0.0.0.0",
			ServerPort: "8000",
			DataDir:    ".",
			LLM: LLMConfig{
				BaseURL:     DefaultLLMBaseURL,
				Model:       DefaultLLMModel,
				MaxTokens:   512,
				Temperature: 0.7,
				TimeoutSecs: 60,
			},
		}
	}

	t.Run("accepts a complete config", func(t *testing.T) {
		assert.NoError(t, ValidateConfig(valid()))
	})

	t.Run("rejects out-of-range ports", func(t *testing.T) {
		for _, port := range []string{"0", "65536", "-1", ""} {
			cfg := valid()
			cfg.ServerPort = port
			assert.Error(t, ValidateConfig(cfg), "port %q", port)
		}
	})

	t.Run("rejects an empty data dir", func(t *testing.T) {
		cfg := valid()
		cfg.DataDir = ""
		assert.Error(t, ValidateConfig(cfg))
	})

	t.Run("rejects an empty model", func(t *testing.T) {
		cfg := valid()
		cfg.LLM.Model = ""
		assert.Error(t, ValidateConfig(cfg))
	})

	t.Run("rejects non-positive max tokens", func(t *testing.T) {
		cfg := valid()
		cfg.LLM.MaxTokens = 0
		assert.Error(t, ValidateConfig(cfg))
	})

	t.Run("rejects temperatures outside 0..2", func(t *testing.T) {
		cfg := valid()
		cfg.LLM.Temperature = 2.5
		assert.Error(t, ValidateConfig(cfg))
	})
}
