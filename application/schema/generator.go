// Package schema generates JSON schemas for configuration types.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Option configures schema generation.
type Option func(*jsonschema.Reflector, *jsonschema.Schema)

// WithFieldNameTag names properties after the given struct tag instead of
// the json tag.
func WithFieldNameTag(tag string) Option {
	return func(r *jsonschema.Reflector, _ *jsonschema.Schema) {
		r.FieldNameTag = tag
	}
}

// WithTitle sets the schema title.
func WithTitle(title string) Option {
	return func(_ *jsonschema.Reflector, s *jsonschema.Schema) {
		if s != nil {
			s.Title = title
		}
	}
}

// GenerateSchema creates a JSON schema (Draft 2020-12) from a Go struct.
func GenerateSchema(v any, opts ...Option) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	for _, opt := range opts {
		opt(&reflector, nil)
	}
	schema := reflector.Reflect(v)
	for _, opt := range opts {
		opt(&reflector, schema)
	}

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return jsonBytes, nil
}
