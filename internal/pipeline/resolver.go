package pipeline

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/Navaneeth2707/Remindiary/internal/llm"
)

// Outcome classifies the result of date resolution.
type Outcome int

const (
	// NoDate means the text references no calendar date.
	NoDate Outcome = iota
	// NowFallback means only a time-of-day was detected; a bare time
	// without a date implies "today", so the moment of processing is used.
	NowFallback
	// ExplicitDate means a specific calendar date was resolved.
	ExplicitDate
)

// Resolution is the outcome of resolving a date reference in user text.
// Date is meaningful only when Outcome is ExplicitDate or NowFallback.
type Resolution struct {
	Outcome Outcome
	Date    time.Time
}

// DateResolver determines whether input text references a specific calendar
// date. Resolution never fails: backend errors degrade internally.
type DateResolver interface {
	Resolve(ctx context.Context, text string, today time.Time) Resolution
}

// timeOfDayRe matches an hour 1-12, optional :minutes, optional am/pm
// marker. A bare time-of-day without a date implies "today".
var timeOfDayRe = regexp.MustCompile(`(?i)\b(1[0-2]|[1-9])(:[0-5][0-9])?\s*([ap]m)?\b`)

// dateTokenRe pulls a YYYY-MM-DD token out of a model reply that may carry
// surrounding prose.
var dateTokenRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// resolveTimeOfDay is the shared fallback: a time-of-day pattern yields
// NowFallback at the wall-clock moment of processing, otherwise NoDate.
func resolveTimeOfDay(text string, now func() time.Time) Resolution {
	if timeOfDayRe.MatchString(text) {
		return Resolution{Outcome: NowFallback, Date: now()}
	}
	return Resolution{Outcome: NoDate}
}

// ModelDateResolver asks the text-completion backend to extract a date.
// Any backend failure or unparseable reply degrades to the time-of-day
// fallback; it never fails the caller.
type ModelDateResolver struct {
	Gateway llm.Gateway
	// Now supplies the wall clock for the NowFallback outcome. Nil means
	// time.Now.
	Now func() time.Time
}

func (r *ModelDateResolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *ModelDateResolver) Resolve(ctx context.Context, text string, today time.Time) Resolution {
	prompt := BuildDateExtractionPrompt(text, today)
	reply, err := r.Gateway.Complete(ctx, prompt)
	if err != nil {
		log.Printf("date resolution degraded: %v", err)
		return resolveTimeOfDay(text, r.now)
	}

	reply = strings.TrimSpace(reply)
	if strings.EqualFold(reply, "null") {
		return resolveTimeOfDay(text, r.now)
	}

	token := dateTokenRe.FindString(reply)
	if token == "" {
		return resolveTimeOfDay(text, r.now)
	}
	date, err := time.ParseInLocation("2006-01-02", token, today.Location())
	if err != nil {
		return resolveTimeOfDay(text, r.now)
	}
	return Resolution{Outcome: ExplicitDate, Date: date}
}

// HeuristicDateResolver applies a natural-language date parser directly to
// the text, with the same time-of-day fallback. It makes no backend calls.
type HeuristicDateResolver struct {
	parser *when.Parser
	// Now supplies the wall clock for the NowFallback outcome. Nil means
	// time.Now.
	Now func() time.Time
}

// NewHeuristicDateResolver builds a resolver with English and common
// date/time rules loaded.
func NewHeuristicDateResolver() *HeuristicDateResolver {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return &HeuristicDateResolver{parser: p}
}

func (r *HeuristicDateResolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *HeuristicDateResolver) Resolve(ctx context.Context, text string, today time.Time) Resolution {
	result, err := r.parser.Parse(text, today)
	if err == nil && result != nil {
		return Resolution{Outcome: ExplicitDate, Date: result.Time}
	}
	return resolveTimeOfDay(text, r.now)
}
