package scenario

import "github.com/abhisek/internsim/internal/llm"

// ScenarioSchema defines the JSON schema for LLM scenario generation responses.
var ScenarioSchema = &llm.Schema{
	Name:        "internship-scenario",
	Description: "A data analytics internship scenario with a messy dataset and ordered challenge stages",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short title of the business problem",
			},
			"role": map[string]any{
				"type":        "string",
				"description": "The intern's job title, e.g. Data Analytics Intern",
			},
			"boss_name": map[string]any{
				"type":        "string",
				"description": "Full name of the intern's manager",
			},
			"brief": map[string]any{
				"type":        "string",
				"description": "The manager's briefing to the intern, two to four sentences, in the manager's voice",
			},
			"dataset": map[string]any{
				"type":        "array",
				"description": "Messy business records. Include realistic problems: missing values, duplicates, outliers, inconsistent formats.",
				"items":       recordSchema,
			},
			"stages": map[string]any{
				"type":        "array",
				"description": "Ordered challenge stages, one per stage type in order",
				"items":       stageSchema,
			},
		},
		"required":             []any{"title", "role", "boss_name", "brief", "dataset", "stages"},
		"additionalProperties": false,
	},
}

var recordSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"fields": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{
						"type":        "string",
						"description": "Column name, e.g. order_id",
					},
					"kind": map[string]any{
						"type":        "string",
						"enum":        []any{"text", "number", "absent"},
						"description": "Which value slot is meaningful. Use absent for a missing value.",
					},
					"text": map[string]any{
						"type":        "string",
						"description": "The value when kind is text, otherwise empty",
					},
					"number": map[string]any{
						"type":        "number",
						"description": "The value when kind is number, otherwise 0",
					},
				},
				"required":             []any{"name", "kind", "text", "number"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"fields"},
	"additionalProperties": false,
}

var stageSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id": map[string]any{
			"type":        "integer",
			"description": "1-based stage number",
		},
		"type": map[string]any{
			"type": "string",
			"enum": []any{
				string(StageObservation),
				string(StageAction),
				string(StageValidation),
			},
		},
		"question": map[string]any{
			"type":        "string",
			"description": "The challenge posed to the intern, referring to the dataset",
		},
		"options": map[string]any{
			"type":        "array",
			"description": "Three or four options, exactly one correct",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Short option identifier: a, b, c or d",
					},
					"text": map[string]any{
						"type": "string",
					},
					"is_correct": map[string]any{
						"type": "boolean",
					},
					"feedback": map[string]any{
						"type":        "string",
						"description": "The manager's reaction to this choice",
					},
					"business_impact": map[string]any{
						"type":        "string",
						"description": "Concrete consequence of this choice for the business",
					},
				},
				"required":             []any{"id", "text", "is_correct", "feedback", "business_impact"},
				"additionalProperties": false,
			},
		},
		"correct_explanation": map[string]any{
			"type":        "string",
			"description": "Why the correct option is right, for teaching",
		},
	},
	"required":             []any{"id", "type", "question", "options", "correct_explanation"},
	"additionalProperties": false,
}
