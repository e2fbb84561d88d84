package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/driftwoodco/reshape/pkg/adapter"
)

// anthropicVersion is the API version header the Messages API requires.
const anthropicVersion = "2023-06-01"

// openaiRequest is the body forwarded to the OpenAI Responses API.
type openaiRequest struct {
	Model        string                  `json:"model"`
	Instructions string                  `json:"instructions,omitempty"`
	Input        []adapter.ResponsesItem `json:"input"`
	Stream       bool                    `json:"stream,omitempty"`
}

// anthropicRequest is the body forwarded to the Anthropic Messages API.
type anthropicRequest struct {
	Model     string                     `json:"model"`
	MaxTokens int                        `json:"max_tokens"`
	System    string                     `json:"system,omitempty"`
	Messages  []adapter.AnthropicMessage `json:"messages"`
	Stream    bool                       `json:"stream,omitempty"`
}

// ollamaRequest is the body forwarded to the Ollama chat API.
type ollamaRequest struct {
	Model    string                  `json:"model"`
	Messages []adapter.OllamaMessage `json:"messages"`
	Stream   bool                    `json:"stream"`
}

// buildUpstreamRequest transforms the inbound history for the configured
// provider and wraps it in that provider's HTTP request: endpoint path, auth
// header scheme, and any fields the provider requires beyond the history.
func (r *Relay) buildUpstreamRequest(ctx context.Context, req *ChatRequest, streaming bool) (*http.Request, error) {
	var (
		url     string
		payload any
	)
	header := http.Header{}

	switch r.config.Provider {
	case adapter.ProviderOpenAI:
		shaped := adapter.ToOpenAIResponses(req.Messages, req.options())
		payload = openaiRequest{
			Model:        req.Model,
			Instructions: shaped.Instructions,
			Input:        shaped.Input,
			Stream:       streaming,
		}
		url = r.config.OpenAI.BaseURL + "/v1/responses"
		header.Set("Authorization", "Bearer "+r.config.OpenAI.APIKey)

	case adapter.ProviderAnthropic:
		shaped := adapter.ToAnthropicMessages(req.Messages, req.options())
		payload = anthropicRequest{
			Model:     req.Model,
			MaxTokens: r.config.Anthropic.MaxTokens,
			System:    shaped.System,
			Messages:  shaped.Messages,
			Stream:    streaming,
		}
		url = r.config.Anthropic.BaseURL + "/v1/messages"
		header.Set("x-api-key", r.config.Anthropic.APIKey)
		header.Set("anthropic-version", anthropicVersion)

	case adapter.ProviderOllama:
		shaped := adapter.ToOllamaChat(req.Messages, req.options())
		payload = ollamaRequest{
			Model:    req.Model,
			Messages: shaped.Messages,
			Stream:   streaming,
		}
		url = r.config.Ollama.BaseURL + "/api/chat"

	default:
		return nil, adapter.UnknownProviderError{Provider: string(r.config.Provider)}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for key, values := range header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	return httpReq, nil
}
