package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Navaneeth2707/Remindiary/internal/models"
)

func TestDayBounds(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 5, 10, 14, 30, 0, 0, time.Local)
	start, end := DayBounds(date)

	if !start.Equal(time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local)) {
		t.Errorf("start=%v", start)
	}
	if !end.Equal(time.Date(2024, 5, 10, 23, 59, 59, 999000000, time.Local)) {
		t.Errorf("end=%v", end)
	}

	// An entry at 14:00 falls inside its own day bucket and no other.
	at := time.Date(2024, 5, 10, 14, 0, 0, 0, time.Local)
	if at.Before(start) || at.After(end) {
		t.Error("14:00 entry not inside its day bucket")
	}
	nextStart, nextEnd := DayBounds(date.AddDate(0, 0, 1))
	if !at.Before(nextStart) && !at.After(nextEnd) {
		t.Error("14:00 entry leaked into the next day bucket")
	}
}

func TestSynthesizeDiary_EmptyDayUsesSentinel(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{replies: []string{`{"diaryText": "Nothing much happened.", "mood": "calm"}`}}
	store := &fakeStore{}
	p := newTestPipeline(gw, store, &ModelDateResolver{Gateway: gw, Now: fixedNow})

	diaryText, entry, err := p.SynthesizeDiary(context.Background(), "user-1", testToday, "")
	if err != nil {
		t.Fatalf("SynthesizeDiary: %v", err)
	}
	if diaryText != "Nothing much happened." {
		t.Errorf("diaryText=%q", diaryText)
	}
	if len(gw.prompts) != 1 {
		t.Fatalf("backend called %d times, want 1", len(gw.prompts))
	}
	if !strings.Contains(gw.prompts[0], "No entries.") {
		t.Error("prompt missing the No entries. sentinel")
	}
	if entry.Type != models.EntryTypeDiary {
		t.Errorf("Type=%q, want diary", entry.Type)
	}
}

func TestSynthesizeDiary_RendersEntryBullets(t *testing.T) {
	t.Parallel()

	sched := time.Date(2024, 5, 10, 14, 0, 0, 0, time.Local)
	gw := &fakeGateway{replies: []string{`{"diaryText": "Busy day.", "mood": "tired"}`}}
	store := &fakeStore{entries: []models.Entry{
		{UserID: "user-1", Type: "task", Summary: "Buy milk", ScheduledFor: &sched},
		{UserID: "user-1", Type: "note", Summary: "Idea for a post", ScheduledFor: &sched},
		{UserID: "other", Type: "task", Summary: "Not mine", ScheduledFor: &sched},
	}}
	p := newTestPipeline(gw, store, &ModelDateResolver{Gateway: gw, Now: fixedNow})

	_, _, err := p.SynthesizeDiary(context.Background(), "user-1", testToday, "")
	if err != nil {
		t.Fatalf("SynthesizeDiary: %v", err)
	}

	prompt := gw.prompts[0]
	if !strings.Contains(prompt, "task: Buy milk") {
		t.Errorf("prompt missing task bullet:\n%s", prompt)
	}
	if !strings.Contains(prompt, "note: Idea for a post") {
		t.Errorf("prompt missing note bullet:\n%s", prompt)
	}
	if strings.Contains(prompt, "Not mine") {
		t.Error("prompt leaked another user's entry")
	}
	if strings.Contains(prompt, "No entries.") {
		t.Error("sentinel present despite entries")
	}
}

func TestSynthesizeDiary_PersistedEntryFields(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{replies: []string{`{"diaryText": "A good day.", "mood": "happy"}`}}
	store := &fakeStore{}
	p := newTestPipeline(gw, store, &ModelDateResolver{Gateway: gw, Now: fixedNow})

	_, entry, err := p.SynthesizeDiary(context.Background(), "user-1", testToday, "also met an old friend")
	if err != nil {
		t.Fatalf("SynthesizeDiary: %v", err)
	}

	if entry.Content != "A good day." || entry.Summary != "A good day." {
		t.Errorf("Content=%q Summary=%q, want diary text in both", entry.Content, entry.Summary)
	}
	if entry.Mood != "happy" {
		t.Errorf("Mood=%q", entry.Mood)
	}
	if entry.UserInput != "also met an old friend" {
		t.Errorf("UserInput=%q", entry.UserInput)
	}
	if len(entry.Tags) != 2 || entry.Tags[0] != "auto-generated" || entry.Tags[1] != "diary" {
		t.Errorf("Tags=%v", entry.Tags)
	}
	dayStart := time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local)
	if entry.ScheduledFor == nil || !entry.ScheduledFor.Equal(dayStart) {
		t.Errorf("ScheduledFor=%v, want %v", entry.ScheduledFor, dayStart)
	}
	if len(store.created) != 1 {
		t.Fatalf("created=%d entries, want 1", len(store.created))
	}

	// Supplementary text appears in the prompt too.
	if !strings.Contains(gw.prompts[0], "also met an old friend") {
		t.Error("prompt missing the supplementary text")
	}
}

func TestSynthesizeDiary_FetchFailureTreatedAsEmptyDay(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{replies: []string{`{"diaryText": "Quiet.", "mood": "calm"}`}}
	store := &fakeStore{findErr: errors.New("store down")}
	p := newTestPipeline(gw, store, &ModelDateResolver{Gateway: gw, Now: fixedNow})

	_, _, err := p.SynthesizeDiary(context.Background(), "user-1", testToday, "")
	if err != nil {
		t.Fatalf("SynthesizeDiary: %v", err)
	}
	if !strings.Contains(gw.prompts[0], "No entries.") {
		t.Error("prompt missing the No entries. sentinel on fetch failure")
	}
}

func TestSynthesizeDiary_MalformedOutputAborts(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{replies: []string{"sorry, no"}}
	store := &fakeStore{}
	p := newTestPipeline(gw, store, &ModelDateResolver{Gateway: gw, Now: fixedNow})

	_, _, err := p.SynthesizeDiary(context.Background(), "user-1", testToday, "")
	if !errors.Is(err, ErrMalformedModelOutput) {
		t.Fatalf("err=%v, want ErrMalformedModelOutput", err)
	}
	if len(store.created) != 0 {
		t.Errorf("created=%d entries, want 0", len(store.created))
	}
}
