package worksheet

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// idAlphabet and idLength give short base36 identifiers like "k3x9q0zt1".
const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 9
)

// New assembles a worksheet for sel from the given questions. The question
// slice is copied so later mutation by the caller cannot leak in.
func New(sel Selection, questions []Question, now time.Time) (*Worksheet, error) {
	id, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return nil, fmt.Errorf("generate worksheet id: %w", err)
	}

	qs := make([]Question, len(questions))
	for i, q := range questions {
		q.WorkingSteps = append([]string(nil), q.WorkingSteps...)
		qs[i] = q
	}

	return &Worksheet{
		ID:         id,
		Title:      sel.Title(),
		Level:      sel.Level,
		Topic:      sel.Topic,
		Difficulty: sel.Difficulty,
		Questions:  qs,
		CreatedAt:  now,
	}, nil
}

// NumberQuestions assigns sequential ids q1..qN in place.
func NumberQuestions(qs []Question) {
	for i := range qs {
		qs[i].ID = fmt.Sprintf("q%d", i+1)
	}
}
