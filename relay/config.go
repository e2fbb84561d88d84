package relay

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/driftwoodco/reshape/pkg/adapter"
)

// Config is the relay server configuration.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string `toml:"listen"`

	// Provider selects which upstream shape chat requests are re-encoded
	// into: "openai", "anthropic" or "ollama".
	Provider adapter.Provider `toml:"provider"`

	OpenAI    OpenAIConfig    `toml:"openai"`
	Anthropic AnthropicConfig `toml:"anthropic"`
	Ollama    OllamaConfig    `toml:"ollama"`
}

// OpenAIConfig configures the OpenAI Responses upstream.
type OpenAIConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

// AnthropicConfig configures the Anthropic Messages upstream.
type AnthropicConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`

	// MaxTokens is required by the Messages API; applied to every
	// forwarded request.
	MaxTokens int `toml:"max_tokens"`
}

// OllamaConfig configures the Ollama chat upstream.
type OllamaConfig struct {
	BaseURL string `toml:"base_url"`
}

// DefaultConfig returns a config pointed at a local Ollama.
func DefaultConfig() Config {
	return Config{
		ListenAddr: ":8080",
		Provider:   adapter.ProviderOllama,
		OpenAI:     OpenAIConfig{BaseURL: "https://api.openai.com"},
		Anthropic:  AnthropicConfig{BaseURL: "https://api.anthropic.com", MaxTokens: 4096},
		Ollama:     OllamaConfig{BaseURL: "http://localhost:11434"},
	}
}

// LoadConfig reads a TOML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return config, nil
}
