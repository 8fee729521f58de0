package llm

import "fmt"

const defaultOllamaBaseURL = "http://localhost:11434/v1"

// OllamaProvider targets a local Ollama server through its
// OpenAI-compatible API, so the underlying SDK is reused. Ollama does not
// support the json_schema response format; responses are requested as
// plain JSON and validated locally against the schema instead.
type OllamaProvider struct {
	*OpenAIProvider
}

// NewOllamaProvider creates a provider for a local Ollama server.
// No API key is required.
func NewOllamaProvider(cfg OllamaConfig) (*OllamaProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}

	inner := newOpenAICompatible(OpenAIConfig{
		APIKey:  "ollama", // SDK requires a token; Ollama ignores it.
		Model:   cfg.Model,
		BaseURL: baseURL,
	}, false)

	return &OllamaProvider{OpenAIProvider: inner}, nil
}
