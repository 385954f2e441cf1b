package llm

import (
	"context"
)

// Client sends one prompt to a language model and returns its raw completion.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
