package content

import "github.com/abhisek/pal/internal/llm"

// QuestionSchema defines the JSON schema for question generation responses.
var QuestionSchema = &llm.Schema{
	Name:        "practice-question",
	Description: "A single practice problem for the target skill",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_text": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The problem itself, with no extra conversational text, explanation, or the answer",
			},
		},
		"required":             []any{"question_text"},
		"additionalProperties": false,
	},
}

// HintsSchema defines the JSON schema for hint generation responses.
var HintsSchema = &llm.Schema{
	Name:        "problem-hints",
	Description: "Exactly three progressive hints for a practice problem",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hints": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    HintCount,
				"maxItems":    HintCount,
				"description": "Three hints ordered from gentle nudge to near-giveaway",
			},
		},
		"required":             []any{"hints"},
		"additionalProperties": false,
	},
}

// GradeSchema defines the JSON schema for answer grading responses.
var GradeSchema = &llm.Schema{
	Name:        "answer-grade",
	Description: "Verdict on whether the learner's answer solves the problem",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status": map[string]any{
				"type": "string",
				"enum": []any{"correct", "incorrect"},
			},
		},
		"required":             []any{"status"},
		"additionalProperties": false,
	},
}

// CurriculumSchema defines the JSON schema for curriculum generation
// responses. Skills arrive as an ordered array; the array order becomes
// the knowledge graph's insertion order and therefore the sequencer's
// tie-break order.
var CurriculumSchema = &llm.Schema{
	Name:        "curriculum-graph",
	Description: "An ordered set of skills with prerequisite links forming a curriculum",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"skills": map[string]any{
				"type":     "array",
				"minItems": 3,
				"maxItems": 9,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "string",
							"minLength":   1,
							"description": "Unique snake_case identifier",
						},
						"name": map[string]any{
							"type":        "string",
							"minLength":   1,
							"description": "Descriptive human-readable skill name",
						},
						"prerequisites": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "IDs of skills that must be mastered first; empty for the first skill",
						},
					},
					"required":             []any{"id", "name", "prerequisites"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"skills"},
		"additionalProperties": false,
	},
}
