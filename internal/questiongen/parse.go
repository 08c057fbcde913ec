package questiongen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/mathsheet/internal/worksheet"
)

// ParseError reports a reply that could not be turned into questions.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse questions: %s: %v", e.Reason, e.Err)
	}
	return "parse questions: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

type questionOutput struct {
	Question     string          `json:"question"`
	Answer       json.RawMessage `json:"answer"`
	WorkingSteps []string        `json:"workingSteps"`
}

// ParseQuestions decodes a model reply into numbered questions. Numeric
// answers are rendered as strings. Any record without question text or an
// answer fails the whole reply.
//
// LLMGenerator only ever passes schema-validated {"questions":[...]}
// objects. The bare-array and markdown-fence forms are accepted for
// callers that parse replies obtained without a schema.
func ParseQuestions(raw []byte) ([]worksheet.Question, error) {
	body := stripFence(raw)
	if len(body) == 0 {
		return nil, &ParseError{Reason: "empty reply"}
	}

	var items []questionOutput
	switch body[0] {
	case '[':
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, &ParseError{Reason: "invalid JSON array", Err: err}
		}
	case '{':
		var envelope struct {
			Questions []questionOutput `json:"questions"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, &ParseError{Reason: "invalid JSON object", Err: err}
		}
		items = envelope.Questions
	default:
		return nil, &ParseError{Reason: "reply is not JSON"}
	}

	if len(items) == 0 {
		return nil, &ParseError{Reason: "no questions in reply"}
	}

	questions := make([]worksheet.Question, 0, len(items))
	for i, it := range items {
		text := strings.TrimSpace(it.Question)
		if text == "" {
			return nil, &ParseError{Reason: fmt.Sprintf("question %d has no text", i+1)}
		}
		answer, err := answerString(it.Answer)
		if err != nil {
			return nil, &ParseError{Reason: fmt.Sprintf("question %d answer", i+1), Err: err}
		}
		if answer == "" {
			return nil, &ParseError{Reason: fmt.Sprintf("question %d has no answer", i+1)}
		}
		questions = append(questions, worksheet.Question{
			Text:         text,
			Answer:       answer,
			WorkingSteps: cleanSteps(it.WorkingSteps),
		})
	}

	worksheet.NumberQuestions(questions)
	return questions, nil
}

// answerString accepts a JSON string or number.
func answerString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("answer must be a string or number")
	}
	return n.String(), nil
}

func cleanSteps(steps []string) []string {
	var out []string
	for _, s := range steps {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stripFence(raw []byte) []byte {
	body := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(body, []byte("```")) {
		return body
	}
	if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		return nil
	}
	body = bytes.TrimSuffix(bytes.TrimSpace(body), []byte("```"))
	return bytes.TrimSpace(body)
}
