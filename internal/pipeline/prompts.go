package pipeline

import (
	"strings"
	"time"
)

// Prompt builders are pure functions of their inputs. Free-text inputs are
// embedded verbatim: the backend is trusted to treat embedded text as data,
// and this pipeline does not defend against prompt injection.

// BuildClassificationPrompt renders the prompt that asks the backend to
// classify raw user text into {type, summary, tasks}.
func BuildClassificationPrompt(text string) string {
	var sb strings.Builder

	sb.WriteString("You are an assistant that organizes personal notes. Classify the text below.\n\n")
	sb.WriteString("Text:\n")
	sb.WriteString(text)
	sb.WriteString("\n\n")
	sb.WriteString(`Return a JSON object with exactly this structure:
{
  "type": "diary" | "task" | "note" | "reminder",
  "summary": "one short sentence describing the text",
  "tasks": ["action item", ...]
}

Rules:
- "type" must be one of: diary, task, note, reminder
- "tasks" lists concrete action items found in the text; use [] when there are none
- Keep the summary under 20 words

Return ONLY the JSON, no other text.`)

	return sb.String()
}

// BuildDateExtractionPrompt renders the prompt for the model-assisted date
// resolver. The backend is expected to reply with a bare YYYY-MM-DD date or
// the literal token "null".
func BuildDateExtractionPrompt(text string, today time.Time) string {
	var sb strings.Builder

	sb.WriteString("Today's date is ")
	sb.WriteString(today.Format("2006-01-02"))
	sb.WriteString(".\n\n")
	sb.WriteString("Does the following text refer to a specific calendar date? ")
	sb.WriteString("Resolve relative references like \"tomorrow\" or \"next Friday\" against today's date.\n\n")
	sb.WriteString("Text:\n")
	sb.WriteString(text)
	sb.WriteString("\n\nReply with ONLY the date in YYYY-MM-DD format, or the word null if no date is referenced.")

	return sb.String()
}

// BuildDiaryPrompt renders the diary-synthesis prompt from the bulleted list
// of the day's entries, the date, and optional supplementary text from the
// user. entryLines must already contain the "No entries." sentinel when the
// day is empty.
func BuildDiaryPrompt(entryLines string, date time.Time, userInput string) string {
	var sb strings.Builder

	sb.WriteString("You are writing a short reflective diary entry on behalf of the user for ")
	sb.WriteString(date.Format("2006-01-02"))
	sb.WriteString(".\n\n")
	sb.WriteString("Here is what the user recorded that day:\n")
	sb.WriteString(entryLines)
	sb.WriteString("\n")

	if userInput != "" {
		sb.WriteString("\nAdditional notes from the user:\n")
		sb.WriteString(userInput)
		sb.WriteString("\n")
	}

	sb.WriteString(`
Write a first-person diary entry (3-6 sentences) summarizing the day, and
infer the overall mood as a single word (e.g. happy, calm, stressed, tired).

Return a JSON object with exactly this structure:
{
  "diaryText": "the diary entry",
  "mood": "single-word mood"
}

Return ONLY the JSON, no other text.`)

	return sb.String()
}

// RenderEntryLines turns a day's entries into the one-line "type: summary"
// bullets embedded in the diary prompt. An empty day renders the sentinel
// "No entries." instead.
func RenderEntryLines(lines []string) string {
	if len(lines) == 0 {
		return "No entries."
	}
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString("- ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
