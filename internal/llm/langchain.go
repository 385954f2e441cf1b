package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	DefaultOllamaURL   = "http://127.0.0.1:11434"
	DefaultOllamaModel = "gemma2:2b"
)

// LangChainClient adapts any langchaingo model to Client.
type LangChainClient struct {
	model       llms.Model
	temperature float64
}

func NewLangChainClient(model llms.Model, temperature float64) *LangChainClient {
	return &LangChainClient{model: model, temperature: temperature}
}

// NewOllamaClient talks to an Ollama server.
func NewOllamaClient(serverURL, model string, temperature float64, httpClient *http.Client) (*LangChainClient, error) {
	if serverURL == "" {
		serverURL = DefaultOllamaURL
	}
	if model == "" {
		model = DefaultOllamaModel
	}

	opts := []ollama.Option{
		ollama.WithModel(model),
		ollama.WithServerURL(serverURL),
	}
	if httpClient != nil {
		opts = append(opts, ollama.WithHTTPClient(httpClient))
	}

	m, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return NewLangChainClient(m, temperature), nil
}

// NewOpenAIClient talks to the OpenAI API or any compatible server.
func NewOpenAIClient(baseURL, apiKey, model string, temperature float64, httpClient *http.Client) (*LangChainClient, error) {
	opts := []openai.Option{
		openai.WithToken(apiKey),
	}
	if model != "" {
		opts = append(opts, openai.WithModel(model))
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, openai.WithHTTPClient(httpClient))
	}

	m, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return NewLangChainClient(m, temperature), nil
}

// Complete sends a single human message and returns the first choice verbatim.
func (c *LangChainClient) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt,
		llms.WithTemperature(c.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return out, nil
}
