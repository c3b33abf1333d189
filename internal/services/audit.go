package services

import (
	"context"
	"time"

	"github.com/Navaneeth2707/Remindiary/internal/database"
	"github.com/Navaneeth2707/Remindiary/internal/llm"
)

// AuditedGateway wraps a Gateway and records each round-trip in the
// model_calls table. Recording is fire-and-forget: the caller should never
// block (or fail) on audit writes.
type AuditedGateway struct {
	Inner    llm.Gateway
	Provider string
}

func (g *AuditedGateway) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := g.Inner.Complete(ctx, prompt)
	recordModelCallAsync(g.Provider, len(prompt), time.Since(start), err == nil)
	return out, err
}

func recordModelCallAsync(provider string, promptLen int, elapsed time.Duration, ok bool) {
	if database.PostgresDB == nil {
		return
	}
	go func() {
		_, _ = database.PostgresDB.Exec(`
			INSERT INTO model_calls (provider, prompt_length, duration_ms, succeeded, created_at)
			VALUES ($1, $2, $3, $4, NOW())
		`, provider, promptLen, elapsed.Milliseconds(), ok)
	}()
}
