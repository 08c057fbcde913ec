package llm

import "testing"

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 5,
				"maxItems": 5,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"answer":   map[string]any{"type": "string"},
						"level":    map[string]any{"type": "string", "enum": []any{"P1", "P2"}},
					},
					"required": []any{"question", "answer"},
				},
			},
		},
		"required": []any{"questions"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	qs := schema.Properties["questions"]
	if qs == nil || qs.Type != "ARRAY" {
		t.Fatalf("expected ARRAY questions, got %+v", qs)
	}
	if qs.MinItems == nil || *qs.MinItems != 5 || qs.MaxItems == nil || *qs.MaxItems != 5 {
		t.Fatalf("item bounds not carried over: %v %v", qs.MinItems, qs.MaxItems)
	}
	item := qs.Items
	if item.Type != "OBJECT" || len(item.Required) != 2 {
		t.Fatalf("unexpected item schema: %+v", item)
	}
	if len(item.Properties["level"].Enum) != 2 {
		t.Fatalf("expected 2 enum values, got %d", len(item.Properties["level"].Enum))
	}
	if len(schema.Required) != 1 {
		t.Fatalf("expected 1 required field, got %d", len(schema.Required))
	}
}
