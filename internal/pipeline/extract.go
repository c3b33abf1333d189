package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Navaneeth2707/Remindiary/internal/models"
)

// ErrMalformedModelOutput is returned when no parseable JSON object can be
// recovered from a backend reply.
var ErrMalformedModelOutput = errors.New("no structured object in model output")

// findJSONObject returns the first structurally balanced {...} span in s.
// It counts braces outside of string literals, so nested objects and braces
// inside string values do not break the match.
func findJSONObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}

// decodeObject parses the first JSON object embedded in raw, tolerating any
// surrounding prose.
func decodeObject(raw string) (map[string]interface{}, error) {
	span, ok := findJSONObject(raw)
	if !ok {
		return nil, ErrMalformedModelOutput
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(span), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModelOutput, err)
	}
	return obj, nil
}

// stringField returns obj[key] as a string, or def when the field is absent
// or not a string.
func stringField(obj map[string]interface{}, key, def string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return def
}

// stringListField returns obj[key] as a []string, dropping non-string
// elements. Absent or wrong-shaped fields yield an empty, non-nil slice.
func stringListField(obj map[string]interface{}, key string) []string {
	out := []string{}
	list, ok := obj[key].([]interface{})
	if !ok {
		return out
	}
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Classification is the structured result of a classification round-trip.
type Classification struct {
	Type    string
	Summary string
	Tasks   []string
}

// ParseClassification recovers {type, summary, tasks} from a raw backend
// reply. Missing or wrong-shaped fields take their documented defaults:
// type "note", summary "", tasks []. An unrecognized type also defaults to
// "note".
func ParseClassification(raw string) (Classification, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return Classification{}, err
	}

	c := Classification{
		Type:    stringField(obj, "type", models.EntryTypeNote),
		Summary: stringField(obj, "summary", ""),
		Tasks:   stringListField(obj, "tasks"),
	}
	if !models.ValidEntryType(c.Type) {
		c.Type = models.EntryTypeNote
	}
	return c, nil
}

// DiarySynthesis is the structured result of a diary-synthesis round-trip.
type DiarySynthesis struct {
	DiaryText string
	Mood      string
}

// ParseDiarySynthesis recovers {diaryText, mood} from a raw backend reply,
// defaulting missing fields to empty strings.
func ParseDiarySynthesis(raw string) (DiarySynthesis, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return DiarySynthesis{}, err
	}
	return DiarySynthesis{
		DiaryText: stringField(obj, "diaryText", ""),
		Mood:      stringField(obj, "mood", ""),
	}, nil
}
