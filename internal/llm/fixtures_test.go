package llm

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

// chapterQuizSchema mirrors the object-root quiz schema the study tools send.
func chapterQuizSchema() *Schema {
	return &Schema{
		Name:        "chapter-quiz",
		Description: "Multiple-choice self-assessment questions for one course chapter",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question":             map[string]any{"type": "string"},
							"options":              map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 4, "maxItems": 4},
							"correct_answer_index": map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
							"explanation":          map[string]any{"type": "string"},
						},
						"required": []any{"question", "options", "correct_answer_index", "explanation"},
					},
				},
			},
			"required": []any{"questions"},
		},
	}
}

const chapterQuizJSON = `{"questions":[{"question":"Biến độc lập là gì?","options":["Biến được đo","Biến được thao tác","Biến gây nhiễu","Biến kiểm soát"],"correct_answer_index":1,"explanation":"Nhà nghiên cứu thao tác biến độc lập."}]}`

// decodeBody reads a JSON request body into a map for assertions.
func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		t.Errorf("read body: %v", err)
		return nil
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Errorf("decode body: %v", err)
	}
	return body
}
