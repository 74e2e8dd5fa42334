package langchain

import (
	"fmt"
	"strings"

	"github.com/poiesic/gamerec/ai"
)

const pickerPromptTemplate = `You are a game recommendation assistant. Select the games that best match the
user's request from the candidate list supplied by the user.

Output ONLY valid JSON. Do not include any preamble, explanation, greeting, or acknowledgment.
Your output must be a single object of this exact form:

{"app_ids": [123456, 987654]}

Rules:
- Return at most %d ids, best match first.
- Use only ids that appear in the candidate list. Never invent ids.
- Each id is a bare integer. No strings, expressions, or comments.
- Weight the preferred tone when one is given; "all" means no preference.
- If nothing matches, return {"app_ids": []}.`

// buildSystemPrompt creates the picker's system prompt.
func buildSystemPrompt(limit int) string {
	return fmt.Sprintf(pickerPromptTemplate, limit)
}

// buildUserPrompt renders the query, tone and candidate list.
// One candidate per line as "<id> | <title> | <summary>".
func buildUserPrompt(query, tone string, candidates []ai.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User query: %s\n", scrubString(query))
	if tone == "" {
		tone = "all"
	}
	fmt.Fprintf(&b, "Preferred tone: %s\n\n", scrubString(tone))
	b.WriteString("--- Candidates ---\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "%d | %s | %s\n", c.ID, scrubString(c.Title), scrubString(c.Summary))
	}
	b.WriteString("------------------\n")
	return b.String()
}
