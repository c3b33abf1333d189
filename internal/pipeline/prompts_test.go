package pipeline

import (
	"strings"
	"testing"
	"time"
)

func TestBuildClassificationPrompt_EmbedsTextVerbatim(t *testing.T) {
	t.Parallel()

	text := `Buy milk & call mom "tomorrow" <3`
	prompt := BuildClassificationPrompt(text)

	if !strings.Contains(prompt, text) {
		t.Error("prompt does not embed the text verbatim")
	}
	for _, field := range []string{`"type"`, `"summary"`, `"tasks"`} {
		if !strings.Contains(prompt, field) {
			t.Errorf("prompt missing expected field name %s", field)
		}
	}
}

func TestBuildDateExtractionPrompt(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	prompt := BuildDateExtractionPrompt("remind me tomorrow", today)

	if !strings.Contains(prompt, "2024-05-10") {
		t.Error("prompt missing today's date")
	}
	if !strings.Contains(prompt, "remind me tomorrow") {
		t.Error("prompt missing the input text")
	}
	if !strings.Contains(prompt, "YYYY-MM-DD") {
		t.Error("prompt missing the expected reply format")
	}
	if !strings.Contains(prompt, "null") {
		t.Error("prompt missing the null token instruction")
	}
}

func TestRenderEntryLines(t *testing.T) {
	t.Parallel()

	if got := RenderEntryLines(nil); got != "No entries." {
		t.Errorf("empty day rendered %q, want sentinel", got)
	}

	got := RenderEntryLines([]string{"task: Buy milk", "note: An idea"})
	want := "- task: Buy milk\n- note: An idea"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildDiaryPrompt_OmitsEmptyUserInput(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	prompt := BuildDiaryPrompt("No entries.", date, "")
	if strings.Contains(prompt, "Additional notes") {
		t.Error("empty user input should not add a notes section")
	}
	for _, field := range []string{`"diaryText"`, `"mood"`} {
		if !strings.Contains(prompt, field) {
			t.Errorf("prompt missing expected field name %s", field)
		}
	}

	prompt = BuildDiaryPrompt("- task: x", date, "saw a good movie")
	if !strings.Contains(prompt, "saw a good movie") {
		t.Error("prompt missing the user input")
	}
}
