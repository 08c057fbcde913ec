package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-object",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"all fields", `{"name":"Alice","age":10,"grade":"A"}`, true},
		{"optional omitted", `{"name":"Bob","age":8}`, true},
		{"missing required", `{"name":"Charlie"}`, false},
		{"wrong type", `{"name":"Dave","age":"ten"}`, false},
		{"bad enum", `{"name":"Eve","age":9,"grade":"D"}`, false},
		{"below minimum", `{"name":"Fay","age":-1}`, false},
		{"malformed JSON", `{not json}`, false},
		{"empty", ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(testSchema(), json.RawMessage(tt.raw))
			if tt.valid {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
			}
			if string(inv.Content) != tt.raw {
				t.Errorf("rejected content = %q, want %q", inv.Content, tt.raw)
			}
		})
	}
}

func TestValidate_NilSchema(t *testing.T) {
	if err := Validate(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidate_ArrayBounds(t *testing.T) {
	schema := &Schema{
		Name: "test-array-bounds",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"items": map[string]any{
					"type":     "array",
					"minItems": 2,
					"maxItems": 2,
					"items":    map[string]any{"type": "integer"},
				},
			},
			"required": []any{"items"},
		},
	}

	if err := Validate(schema, json.RawMessage(`{"items":[1,2]}`)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := Validate(schema, json.RawMessage(`{"items":[1]}`)); err == nil {
		t.Fatal("expected error for too few items")
	}
	if err := Validate(schema, json.RawMessage(`{"items":[1,"2"]}`)); err == nil {
		t.Fatal("expected error for wrong item type")
	}
}

func TestValidateReply_TruncatedReply(t *testing.T) {
	err := validateReply(testSchema(), json.RawMessage(`{"name":"Al`), "max_tokens")
	var trunc *ErrMaxTokensExceeded
	if !errors.As(err, &trunc) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
}
