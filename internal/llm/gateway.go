package llm

import (
	"context"
	"errors"
)

// ErrModelUnavailable is returned for any transport, timeout, or backend
// failure. Callers must not surface the underlying provider error text.
var ErrModelUnavailable = errors.New("model backend unavailable")

// Gateway abstracts a text-completion backend. Implementations send a plain
// text prompt and return the raw reply, which may be pure JSON or JSON
// embedded in prose. No retries happen at this layer.
type Gateway interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
