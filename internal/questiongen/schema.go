package questiongen

import (
	"fmt"

	"github.com/abhisek/mathsheet/internal/llm"
)

// QuestionSchema returns the reply schema for a worksheet of count
// questions. The name carries the count because compiled schemas are
// cached by name.
func QuestionSchema(count int) *llm.Schema {
	return &llm.Schema{
		Name:        fmt.Sprintf("worksheet-questions-%d", count),
		Description: "A set of math worksheet questions with answers and working steps",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"minItems": count,
					"maxItems": count,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": map[string]any{
								"type":        "string",
								"description": "The question as printed on the worksheet",
							},
							"answer": map[string]any{
								"type":        "string",
								"description": "The final answer, including units where relevant",
							},
							"workingSteps": map[string]any{
								"type":        "array",
								"items":       map[string]any{"type": "string"},
								"description": "One line per step of the worked solution",
							},
						},
						"required": []any{"question", "answer"},
					},
				},
			},
			"required": []any{"questions"},
		},
	}
}
