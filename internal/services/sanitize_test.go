package services

import (
	"strings"
	"testing"
)

func TestSanitizeUserText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Buy milk tomorrow", "Buy milk tomorrow"},
		{"strips tags", "<b>Buy</b> milk <script>alert(1)</script>tomorrow", "Buy milk alert(1) tomorrow"},
		{"decodes entities", "milk &amp; eggs", "milk & eggs"},
		{"collapses whitespace", "  buy \n\t milk  ", "buy milk"},
		{"empty after stripping", "<br/><p></p>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeUserText(tt.in); got != tt.want {
				t.Errorf("SanitizeUserText(%q)=%q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeUserText_CapsLength(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", maxInputLength+100)
	if got := SanitizeUserText(long); len(got) != maxInputLength {
		t.Errorf("len=%d, want %d", len(got), maxInputLength)
	}
}
