package formatter

import (
	"fmt"
	"strings"
)

// BuildSystemPrompt generates the system prompt for transcript-to-note
// conversion. allowedTags is the vocabulary the model may choose from; when
// empty the model is told to propose no tags at all.
func BuildSystemPrompt(allowedTags []string) string {
	var b strings.Builder

	b.WriteString("You are an expert at converting spoken language into well-structured written notes.\n\n")
	b.WriteString("Processing rules:\n")
	b.WriteString("- Convert spoken numbers (\"one\", \"two\") to numerals in lists\n")
	b.WriteString("- Convert spoken \"hashtag\" into an actual hashtag symbol (#)\n")
	b.WriteString("- Remove filler words, stutters and speech artifacts\n")
	b.WriteString("- Convert spoken punctuation into actual punctuation\n")
	b.WriteString("- Recognize lists and section breaks, add headers where they help\n")
	b.WriteString("- Extract clearly identified action items into todos\n")
	b.WriteString("- Create a short, clear, descriptive title from the main topic\n")
	b.WriteString("- Preserve all important information while improving readability\n")

	b.WriteString("\nTagging rules:\n")
	if len(allowedTags) > 0 {
		b.WriteString("- Choose tags ONLY from this allowed vocabulary, nothing else:\n")
		b.WriteString(fmt.Sprintf("  %s\n", strings.Join(allowedTags, ", ")))
		b.WriteString("- Pick only tags that genuinely match the content; an empty list is fine\n")
	} else {
		b.WriteString("- Do not propose any tags; return an empty tags list\n")
	}

	b.WriteString("\nRespond with a single JSON object and nothing else, in this exact shape:\n")
	b.WriteString(`{"title": "...", "content": "markdown body", "tags": ["..."], "todos": ["..."]}`)
	b.WriteString("\n")

	return b.String()
}

// BuildUserPrompt generates the user prompt carrying the transcript.
func BuildUserPrompt(transcript string) string {
	return fmt.Sprintf("Transcription:\n%s", transcript)
}
