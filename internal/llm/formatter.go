package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Options selects and configures a model client.
type Options struct {
	Provider    string
	Model       string
	BaseURL     string
	APIKey      string
	Temperature float64
	HTTPClient  *http.Client
}

// NewClient builds the Client for opts.Provider.
func NewClient(opts Options) (Client, error) {
	switch strings.ToLower(opts.Provider) {
	case "", ProviderOllama:
		return NewOllamaClient(opts.BaseURL, opts.Model, opts.Temperature, opts.HTTPClient)
	case ProviderOpenAI:
		return NewOpenAIClient(opts.BaseURL, opts.APIKey, opts.Model, opts.Temperature, opts.HTTPClient)
	case ProviderGemini:
		return NewGeminiClient(opts.BaseURL, opts.APIKey, opts.Model, opts.Temperature, opts.HTTPClient), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", opts.Provider)
	}
}

// Formatter prompts the model with OCR text and parses its answer.
type Formatter struct {
	client Client
	logger *zap.Logger
}

func NewFormatter(client Client, logger *zap.Logger) *Formatter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Formatter{client: client, logger: logger}
}

// Format makes exactly one model call. A returned error means the model call
// itself failed; malformed output is reported inside Result.
func (f *Formatter) Format(ctx context.Context, ocrText string) (Result, error) {
	prompt := BuildItemsPrompt(ocrText)

	completion, err := f.client.Complete(ctx, prompt)
	if err != nil {
		return Result{}, err
	}

	f.logger.Debug("LLM_RAW_RESPONSE", zap.String("completion", completion))

	res := ParseResponse(completion)
	if res.Kind != Parsed {
		f.logger.Warn("LLM_OUTPUT_UNPARSED",
			zap.Stringer("kind", res.Kind),
			zap.Error(res.Err))
	}
	return res, nil
}
