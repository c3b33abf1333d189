package pipeline

import (
	"errors"
	"testing"
)

func TestParseClassification_ObjectEmbeddedInProse(t *testing.T) {
	t.Parallel()

	raw := `Sure! Here is the classification you asked for:
{"type": "task", "summary": "Grocery run", "tasks": ["buy milk", "buy eggs"]}
Let me know if you need anything else.`

	c, err := ParseClassification(raw)
	if err != nil {
		t.Fatalf("ParseClassification: %v", err)
	}
	if c.Type != "task" {
		t.Errorf("Type=%q, want task", c.Type)
	}
	if c.Summary != "Grocery run" {
		t.Errorf("Summary=%q", c.Summary)
	}
	if len(c.Tasks) != 2 || c.Tasks[0] != "buy milk" || c.Tasks[1] != "buy eggs" {
		t.Errorf("Tasks=%v", c.Tasks)
	}
}

func TestParseClassification_NestedBracesInsideStrings(t *testing.T) {
	t.Parallel()

	raw := `{"type": "note", "summary": "mentions {curly} braces and \"quotes\"", "tasks": []}`

	c, err := ParseClassification(raw)
	if err != nil {
		t.Fatalf("ParseClassification: %v", err)
	}
	if c.Summary != `mentions {curly} braces and "quotes"` {
		t.Errorf("Summary=%q", c.Summary)
	}
}

func TestParseClassification_NoObject(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"",
		"I could not classify that text, sorry.",
		"{ unbalanced",
		"not json: { this is } prose",
	} {
		if _, err := ParseClassification(raw); !errors.Is(err, ErrMalformedModelOutput) {
			t.Errorf("raw=%q: err=%v, want ErrMalformedModelOutput", raw, err)
		}
	}
}

func TestParseClassification_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		raw         string
		wantType    string
		wantSummary string
		wantTasks   int
	}{
		{"empty object", `{}`, "note", "", 0},
		{"missing tasks", `{"type": "reminder", "summary": "call mom"}`, "reminder", "call mom", 0},
		{"unrecognized type", `{"type": "poem", "summary": "x"}`, "note", "x", 0},
		{"tasks not a list", `{"type": "task", "summary": "x", "tasks": "buy milk"}`, "task", "x", 0},
		{"summary not a string", `{"type": "note", "summary": 42}`, "note", "", 0},
		{"non-string task elements dropped", `{"type": "task", "tasks": ["a", 1, "b"]}`, "task", "", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseClassification(tt.raw)
			if err != nil {
				t.Fatalf("ParseClassification: %v", err)
			}
			if c.Type != tt.wantType {
				t.Errorf("Type=%q, want %q", c.Type, tt.wantType)
			}
			if c.Summary != tt.wantSummary {
				t.Errorf("Summary=%q, want %q", c.Summary, tt.wantSummary)
			}
			if c.Tasks == nil {
				t.Fatal("Tasks is nil, want non-nil slice")
			}
			if len(c.Tasks) != tt.wantTasks {
				t.Errorf("len(Tasks)=%d, want %d", len(c.Tasks), tt.wantTasks)
			}
		})
	}
}

func TestParseDiarySynthesis(t *testing.T) {
	t.Parallel()

	syn, err := ParseDiarySynthesis(`Here you go: {"diaryText": "A calm day.", "mood": "calm"}`)
	if err != nil {
		t.Fatalf("ParseDiarySynthesis: %v", err)
	}
	if syn.DiaryText != "A calm day." {
		t.Errorf("DiaryText=%q", syn.DiaryText)
	}
	if syn.Mood != "calm" {
		t.Errorf("Mood=%q", syn.Mood)
	}

	syn, err = ParseDiarySynthesis(`{}`)
	if err != nil {
		t.Fatalf("ParseDiarySynthesis empty object: %v", err)
	}
	if syn.DiaryText != "" || syn.Mood != "" {
		t.Errorf("got %+v, want empty defaults", syn)
	}

	if _, err := ParseDiarySynthesis("no json here"); !errors.Is(err, ErrMalformedModelOutput) {
		t.Errorf("err=%v, want ErrMalformedModelOutput", err)
	}
}

func TestFindJSONObject_PicksFirstBalancedSpan(t *testing.T) {
	t.Parallel()

	raw := `prefix {"a": {"b": "}"}} suffix {"second": true}`
	span, ok := findJSONObject(raw)
	if !ok {
		t.Fatal("no span found")
	}
	if span != `{"a": {"b": "}"}}` {
		t.Errorf("span=%q", span)
	}
}
