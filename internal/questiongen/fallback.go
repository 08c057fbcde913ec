package questiongen

import "github.com/abhisek/mathsheet/internal/worksheet"

// fallbackQuestions is served whenever generation fails. It is the same
// mixed P2-level set whatever was selected.
var fallbackQuestions = []worksheet.Question{
	{
		ID:           "q1",
		Text:         "Solve: 15 + 23 = ?",
		Answer:       "38",
		WorkingSteps: []string{"15 + 23", "= 38"},
	},
	{
		ID:           "q2",
		Text:         "What is 45 - 18?",
		Answer:       "27",
		WorkingSteps: []string{"45 - 18", "= 27"},
	},
	{
		ID:           "q3",
		Text:         "Calculate: 6 × 7 = ?",
		Answer:       "42",
		WorkingSteps: []string{"6 × 7", "= 42"},
	},
	{
		ID:           "q4",
		Text:         "Divide: 56 ÷ 8 = ?",
		Answer:       "7",
		WorkingSteps: []string{"56 ÷ 8", "= 7"},
	},
	{
		ID:           "q5",
		Text:         "Tom has 24 stickers. He gives away 9 stickers. How many stickers does he have left?",
		Answer:       "15",
		WorkingSteps: []string{"24 - 9", "= 15 stickers"},
	},
}

// FallbackQuestions returns a fresh copy of the fixed fallback set.
func FallbackQuestions() []worksheet.Question {
	out := make([]worksheet.Question, len(fallbackQuestions))
	for i, q := range fallbackQuestions {
		q.WorkingSteps = append([]string(nil), q.WorkingSteps...)
		out[i] = q
	}
	return out
}
