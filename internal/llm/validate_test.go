package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-question",
		Description: "A test question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 2,
				},
				"correct_answer_index": map[string]any{"type": "integer", "minimum": 0},
				"level":                map[string]any{"type": "string", "enum": []any{"easy", "hard"}},
			},
			"required": []any{"question", "options", "correct_answer_index"},
		},
	}
}

func wantInvalid(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_ValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"question":"Q","options":["a","b"],"correct_answer_index":1,"level":"easy"}`)
	if _, err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_StripsCodeFences(t *testing.T) {
	raw := json.RawMessage("```json\n{\"question\":\"Q\",\"options\":[\"a\",\"b\"],\"correct_answer_index\":0}\n```")
	got, err := validateResponse(testSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !json.Valid(got) || got[0] != '{' {
		t.Fatalf("expected bare JSON, got %s", got)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	_, err := validateResponse(testSchema(), json.RawMessage(`{"question":"Q"}`))
	wantInvalid(t, err)
}

func TestValidateResponse_WrongType(t *testing.T) {
	_, err := validateResponse(testSchema(), json.RawMessage(`{"question":"Q","options":["a","b"],"correct_answer_index":"one"}`))
	wantInvalid(t, err)
}

func TestValidateResponse_TooFewItems(t *testing.T) {
	_, err := validateResponse(testSchema(), json.RawMessage(`{"question":"Q","options":["a"],"correct_answer_index":0}`))
	wantInvalid(t, err)
}

func TestValidateResponse_InvalidEnum(t *testing.T) {
	_, err := validateResponse(testSchema(), json.RawMessage(`{"question":"Q","options":["a","b"],"correct_answer_index":0,"level":"medium"}`))
	wantInvalid(t, err)
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	_, err := validateResponse(testSchema(), json.RawMessage(`{not json}`))
	wantInvalid(t, err)
}

func TestValidateResponse_EmptyResponse(t *testing.T) {
	_, err := validateResponse(testSchema(), json.RawMessage(``))
	wantInvalid(t, err)
}

func TestValidateResponse_NilSchema(t *testing.T) {
	got, err := validateResponse(nil, json.RawMessage(" free text "))
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
	if string(got) != "free text" {
		t.Fatalf("expected trimmed text, got %q", got)
	}
}
