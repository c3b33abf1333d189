package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Navaneeth2707/Remindiary/internal/llm"
	"github.com/Navaneeth2707/Remindiary/internal/models"
)

// ErrInvalidInput is returned for missing or malformed caller arguments,
// before any backend call is made.
var ErrInvalidInput = errors.New("invalid input")

// EntryStore is the persistence collaborator the pipelines write to and
// read from.
type EntryStore interface {
	Create(ctx context.Context, e models.Entry) (models.Entry, error)
	FindByDateRange(ctx context.Context, userID string, from, to time.Time) ([]models.Entry, error)
}

// Pipeline orchestrates the classification and diary-aggregation flows:
// prompt building, the model round-trips, structured extraction, date
// resolution, and persistence. It holds no per-request state; concurrent
// calls are independent.
type Pipeline struct {
	Gateway  llm.Gateway
	Store    EntryStore
	Resolver DateResolver

	// Now supplies the reference "today" for date resolution and record
	// timestamps. Nil means time.Now; tests inject fixed clocks.
	Now func() time.Time
}

// New returns a Pipeline over the given collaborators.
func New(gw llm.Gateway, store EntryStore, resolver DateResolver) *Pipeline {
	return &Pipeline{Gateway: gw, Store: store, Resolver: resolver}
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Classify turns raw user text into a persisted Entry: one classification
// round-trip for {type, summary, tasks}, then date resolution on the same
// text. A gateway or extraction failure aborts the whole call; nothing is
// partially persisted. Date-resolution failures are absorbed by the
// resolver and never abort.
func (p *Pipeline) Classify(ctx context.Context, userID, text string) (models.Entry, error) {
	if strings.TrimSpace(text) == "" {
		return models.Entry{}, ErrInvalidInput
	}

	raw, err := p.Gateway.Complete(ctx, BuildClassificationPrompt(text))
	if err != nil {
		return models.Entry{}, err
	}
	cls, err := ParseClassification(raw)
	if err != nil {
		return models.Entry{}, err
	}

	now := p.now()
	entry := models.Entry{
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    userID,
		Content:   text,
		Summary:   cls.Summary,
		Type:      cls.Type,
		Tasks:     cls.Tasks,
		Tags:      []string{},
	}

	res := p.Resolver.Resolve(ctx, text, now)
	switch res.Outcome {
	case ExplicitDate, NowFallback:
		d := res.Date
		entry.ScheduledFor = &d
	}

	return p.Store.Create(ctx, entry)
}
