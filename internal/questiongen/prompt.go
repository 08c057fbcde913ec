package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathsheet/internal/worksheet"
)

const systemPrompt = `You are an expert Singapore Math curriculum specialist. Generate appropriate math questions for the specified level and topic.

Rules:
- Follow Singapore Math methodology: concrete contexts, model drawing and part-whole thinking where it helps.
- Keep numbers and language appropriate for the primary level given (P1 is age 7, P6 is age 12).
- Every answer must be correct and in simplest form.
- Working steps show the solution one line at a time, the way a teacher would write it on the board.
- Reply only with JSON matching the provided schema. No prose, no markdown.`

// buildUserMessage asks for count questions for sel.
func buildUserMessage(sel worksheet.Selection, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d Singapore Math questions for %s students on the topic of %s with %s difficulty.\n\n",
		count, sel.Level, sel.Topic, sel.Difficulty)
	b.WriteString("For each question, provide:\n")
	b.WriteString("1. The question text\n")
	b.WriteString("2. The correct answer\n")
	b.WriteString("3. Working steps (if applicable)\n\n")
	fmt.Fprintf(&b, "Format the response as a JSON object with a \"questions\" array of exactly %d objects containing: question, answer, and workingSteps (array of strings).\n\n", count)
	fmt.Fprintf(&b, "Make sure the questions follow Singapore Math methodology and are appropriate for %s level.", sel.Level)

	return b.String()
}
