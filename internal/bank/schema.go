package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const fileSchemaURL = "schema://question-bank.json"

// fileSchema describes a question bank file.
var fileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text": map[string]any{"type": "string"},
					"options": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"correctIndex": map[string]any{"type": "integer"},
				},
				"required": []any{"text", "options"},
			},
		},
	},
	"required": []any{"questions"},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func bankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants decoded JSON values, not Go literals.
		raw, err := json.Marshal(fileSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal bank schema: %w", err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(fileSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(fileSchemaURL)
	})
	return compiled, compileErr
}

// validateFile checks raw file bytes against the bank schema.
func validateFile(data []byte) error {
	schema, err := bankSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
