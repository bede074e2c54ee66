package assist

import "github.com/abhisek/nckh/internal/llm"

// quizSchema builds the schema of a chapter quiz response. The question
// list is wrapped in an object because not every provider accepts an
// array at the root of a structured response.
func quizSchema(count, options int) *llm.Schema {
	return &llm.Schema{
		Name:        "chapter-quiz",
		Description: "Multiple-choice self-assessment questions for one course chapter",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"minItems": 1,
					"maxItems": count,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": map[string]any{
								"type":        "string",
								"description": "The question text",
							},
							"options": map[string]any{
								"type":        "array",
								"items":       map[string]any{"type": "string"},
								"minItems":    options,
								"maxItems":    options,
								"description": "Answer choices in display order, without A/B/C/D prefixes",
							},
							"correct_answer_index": map[string]any{
								"type":        "integer",
								"minimum":     0,
								"maximum":     options - 1,
								"description": "Zero-based index of the single correct option",
							},
							"explanation": map[string]any{
								"type":        "string",
								"description": "A short explanation of why the correct option is right",
							},
						},
						"required":             []any{"question", "options", "correct_answer_index", "explanation"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"questions"},
			"additionalProperties": false,
		},
	}
}
