package questiongen

import (
	"fmt"
	"unicode/utf8"

	"github.com/abhisek/mathsheet/internal/worksheet"
)

// Validator checks a parsed question set. Implementations should be
// stateless and safe for concurrent use.
type Validator interface {
	Name() string

	// Validate may return a trimmed copy of qs. A non-nil error sends the
	// generation to the fallback set.
	Validate(qs []worksheet.Question, sel worksheet.Selection, count int) ([]worksheet.Question, *ValidationError)
}

// ValidationError describes why a question set was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// CountValidator rejects short replies and drops extra questions.
type CountValidator struct{}

func (v *CountValidator) Name() string { return "count" }

func (v *CountValidator) Validate(qs []worksheet.Question, _ worksheet.Selection, count int) ([]worksheet.Question, *ValidationError) {
	if len(qs) < count {
		return nil, &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d questions, got %d", count, len(qs)),
		}
	}
	return qs[:count], nil
}

const (
	maxQuestionLen = 600
	maxAnswerLen   = 200
	maxSteps       = 12
)

// StructuralValidator enforces length limits so one runaway answer can't
// blow up the printed page.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(qs []worksheet.Question, _ worksheet.Selection, _ int) ([]worksheet.Question, *ValidationError) {
	for _, q := range qs {
		switch {
		case utf8.RuneCountInString(q.Text) > maxQuestionLen:
			return nil, v.fail("%s text exceeds %d characters", q.ID, maxQuestionLen)
		case utf8.RuneCountInString(q.Answer) > maxAnswerLen:
			return nil, v.fail("%s answer exceeds %d characters", q.ID, maxAnswerLen)
		case len(q.WorkingSteps) > maxSteps:
			return nil, v.fail("%s has more than %d working steps", q.ID, maxSteps)
		}
	}
	return qs, nil
}

func (v *StructuralValidator) fail(format string, args ...any) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
}
