package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/Navaneeth2707/Remindiary/internal/llm"
)

// fakeGateway is a scripted Gateway for pipeline tests.
type fakeGateway struct {
	replies []string
	err     error
	prompts []string
}

func (f *fakeGateway) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	i := len(f.prompts) - 1
	if i >= len(f.replies) {
		i = len(f.replies) - 1
	}
	return f.replies[i], nil
}

var testToday = time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)

func fixedNow() time.Time { return testToday }

func TestModelDateResolver_ExplicitDate(t *testing.T) {
	t.Parallel()

	for _, reply := range []string{
		"2024-05-11",
		"  2024-05-11\n",
		"The date is 2024-05-11.",
	} {
		gw := &fakeGateway{replies: []string{reply}}
		r := &ModelDateResolver{Gateway: gw, Now: fixedNow}

		res := r.Resolve(context.Background(), "remind me tomorrow", testToday)
		if res.Outcome != ExplicitDate {
			t.Fatalf("reply=%q: outcome=%v, want ExplicitDate", reply, res.Outcome)
		}
		want := time.Date(2024, 5, 11, 0, 0, 0, 0, time.Local)
		if !res.Date.Equal(want) {
			t.Errorf("reply=%q: date=%v, want %v", reply, res.Date, want)
		}
	}
}

func TestModelDateResolver_NullReplyFallsThroughToTimeOfDay(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{replies: []string{"null"}}
	r := &ModelDateResolver{Gateway: gw, Now: fixedNow}

	res := r.Resolve(context.Background(), "meet at 3pm", testToday)
	if res.Outcome != NowFallback {
		t.Fatalf("outcome=%v, want NowFallback", res.Outcome)
	}
	if !res.Date.Equal(testToday) {
		t.Errorf("date=%v, want injected now %v", res.Date, testToday)
	}
}

func TestModelDateResolver_BackendErrorDegrades(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{err: llm.ErrModelUnavailable}
	r := &ModelDateResolver{Gateway: gw, Now: fixedNow}

	// Time-of-day present: degrade to NowFallback, never an error.
	res := r.Resolve(context.Background(), "meet at 3pm", testToday)
	if res.Outcome != NowFallback {
		t.Errorf("outcome=%v, want NowFallback", res.Outcome)
	}

	// No date token at all: NoDate.
	res = r.Resolve(context.Background(), "just a thought", testToday)
	if res.Outcome != NoDate {
		t.Errorf("outcome=%v, want NoDate", res.Outcome)
	}
}

func TestModelDateResolver_GarbageReplyFallsThrough(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{replies: []string{"sometime soon, probably"}}
	r := &ModelDateResolver{Gateway: gw, Now: fixedNow}

	res := r.Resolve(context.Background(), "just a thought", testToday)
	if res.Outcome != NoDate {
		t.Errorf("outcome=%v, want NoDate", res.Outcome)
	}
}

func TestHeuristicDateResolver_Tomorrow(t *testing.T) {
	t.Parallel()

	r := NewHeuristicDateResolver()
	r.Now = fixedNow

	res := r.Resolve(context.Background(), "remind me tomorrow", testToday)
	if res.Outcome != ExplicitDate {
		t.Fatalf("outcome=%v, want ExplicitDate", res.Outcome)
	}
	if res.Date.Year() != 2024 || res.Date.Month() != time.May || res.Date.Day() != 11 {
		t.Errorf("date=%v, want 2024-05-11", res.Date)
	}
}

func TestHeuristicDateResolver_NoDate(t *testing.T) {
	t.Parallel()

	r := NewHeuristicDateResolver()
	r.Now = fixedNow

	res := r.Resolve(context.Background(), "just a thought", testToday)
	if res.Outcome != NoDate {
		t.Errorf("outcome=%v, want NoDate", res.Outcome)
	}
}

func TestTimeOfDayPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"meet at 3pm", true},
		{"meet at 3:30", true},
		{"meet at 11 am", true},
		{"just a thought", false},
		{"nothing to see", false},
	}
	for _, tt := range tests {
		if got := timeOfDayRe.MatchString(tt.text); got != tt.want {
			t.Errorf("timeOfDayRe(%q)=%v, want %v", tt.text, got, tt.want)
		}
	}
}
