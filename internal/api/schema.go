package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const scoresSchemaURL = "schema://gradewise/scores-response.json"

var weightSlot = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":       map[string]any{"type": []any{"string", "integer"}},
		"weight":   map[string]any{"type": "number", "minimum": 0, "maximum": 100},
		"is_fixed": map[string]any{"type": "boolean"},
	},
	"required": []any{"id", "weight"},
}

var optionalWeightSlot = map[string]any{
	"anyOf": []any{map[string]any{"type": "null"}, weightSlot},
}

// scoresSchema is the shape expected from GET /subjects/{id}/scores.
var scoresSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"success": map[string]any{"type": "boolean"},
		"subject": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"passing_percentage": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			},
		},
		"scoreStructure": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pre_test": map[string]any{
					"anyOf": []any{
						map[string]any{"type": "null"},
						map[string]any{
							"type":       "object",
							"properties": map[string]any{"id": map[string]any{"type": []any{"string", "integer"}}},
							"required":   []any{"id"},
						},
					},
				},
				"post_test": optionalWeightSlot,
				"big_lessons": map[string]any{
					"type": []any{"array", "null"},
					"items": map[string]any{
						"allOf": []any{
							weightSlot,
							map[string]any{
								"properties": map[string]any{
									"quiz": optionalWeightSlot,
									"lessons": map[string]any{
										"anyOf": []any{
											map[string]any{"type": "null"},
											map[string]any{
												"type": "array",
												"items": map[string]any{
													"allOf": []any{
														weightSlot,
														map[string]any{
															"properties": map[string]any{
																"quiz": optionalWeightSlot,
															},
														},
													},
												},
											},
										},
									},
								},
							},
						},
					},
				},
			},
			"required": []any{"big_lessons"},
		},
	},
	"required": []any{"scoreStructure"},
}

var (
	compileOnce     sync.Once
	compiledScores  *jsonschema.Schema
	compileScoreErr error
)

// validateScores checks raw against the scores response schema.
// Returns *InvalidResponseError on failure.
func validateScores(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &InvalidResponseError{Body: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := scoresSchemaCompiled()
	if err != nil {
		return &InvalidResponseError{Body: raw, Err: fmt.Errorf("compile schema: %w", err)}
	}

	if err := schema.Validate(parsed); err != nil {
		return &InvalidResponseError{Body: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

func scoresSchemaCompiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, not Go map literals with
		// typed numbers, so round-trip the definition first.
		defBytes, err := json.Marshal(scoresSchema)
		if err != nil {
			compileScoreErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileScoreErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(scoresSchemaURL, def); err != nil {
			compileScoreErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledScores, compileScoreErr = c.Compile(scoresSchemaURL)
	})
	return compiledScores, compileScoreErr
}
