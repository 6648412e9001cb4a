package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/maverickalo/check-my-code/internal/review"
)

// Reflect returns the JSON Schema of the canonical result.
func Reflect() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(&review.EvaluationResult{})
}

// JSONSchema returns the indented JSON Schema document.
func JSONSchema() ([]byte, error) {
	data, err := json.MarshalIndent(Reflect(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schema.JSONSchema: %w", err)
	}
	return append(data, '\n'), nil
}
