package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/Navaneeth2707/Remindiary/internal/models"
)

// DayBounds returns the inclusive wall-clock interval covering date's
// calendar day, [00:00:00.000, 23:59:59.999] in date's location.
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

// SynthesizeDiary aggregates a day's entries into a reflective diary entry
// with an inferred mood, persists it, and returns both the narrative text
// and the persisted record. An empty day is valid input: the prompt then
// carries the "No entries." sentinel. Only the model round-trip and the
// final persist can abort the call.
func (p *Pipeline) SynthesizeDiary(ctx context.Context, userID string, date time.Time, userInput string) (string, models.Entry, error) {
	start, end := DayBounds(date)

	entries, err := p.Store.FindByDateRange(ctx, userID, start, end)
	if err != nil {
		// A failed fetch is treated as an empty day; fetching never
		// fails the pipeline.
		entries = nil
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s: %s", e.Type, e.Summary))
	}

	prompt := BuildDiaryPrompt(RenderEntryLines(lines), start, userInput)
	raw, err := p.Gateway.Complete(ctx, prompt)
	if err != nil {
		return "", models.Entry{}, err
	}
	syn, err := ParseDiarySynthesis(raw)
	if err != nil {
		return "", models.Entry{}, err
	}

	now := p.now()
	entry := models.Entry{
		CreatedAt:    now,
		UpdatedAt:    now,
		UserID:       userID,
		Content:      syn.DiaryText,
		Summary:      syn.DiaryText,
		Type:         models.EntryTypeDiary,
		Tasks:        []string{},
		Tags:         []string{"auto-generated", "diary"},
		ScheduledFor: &start,
		Mood:         syn.Mood,
		UserInput:    userInput,
	}

	saved, err := p.Store.Create(ctx, entry)
	if err != nil {
		return "", models.Entry{}, err
	}
	return syn.DiaryText, saved, nil
}
