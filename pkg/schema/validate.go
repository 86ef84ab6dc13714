package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-snowform/pkg/model"
)

// FormErrorKey collects errors that do not belong to a single field.
const FormErrorKey = "_form"

var missingProperty = regexp.MustCompile(`property "([^"]+)" is missing`)

// Validate checks values against the schema and returns the first error per
// field. A nil result means the values are valid. Error types are the schema
// keywords reported by kin-openapi (required, minLength, pattern, ...).
func (s *Schema) Validate(ctx context.Context, values map[string]any) (model.FieldErrors, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	doc, err := normalizeValues(values)
	if err != nil {
		return nil, fmt.Errorf("schema: normalize values: %w", err)
	}

	verr := s.root.VisitJSON(doc, openapi3.MultiErrors())
	if verr == nil {
		return nil, nil
	}

	errs := model.FieldErrors{}
	for _, item := range flatten(verr) {
		name, fieldErr := classify(item)
		if _, exists := errs[name]; exists {
			continue
		}
		errs[name] = fieldErr
	}
	return errs, nil
}

func classify(err error) (string, model.FieldError) {
	var schemaErr *openapi3.SchemaError
	if !errors.As(err, &schemaErr) {
		return FormErrorKey, model.FieldError{Type: "invalid", Message: err.Error()}
	}

	fieldErr := model.FieldError{Type: schemaErr.SchemaField, Message: schemaErr.Reason}
	if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
		return pointer[0], fieldErr
	}
	if schemaErr.SchemaField == "required" {
		if match := missingProperty.FindStringSubmatch(schemaErr.Reason); len(match) == 2 {
			return match[1], fieldErr
		}
	}
	return FormErrorKey, fieldErr
}

func flatten(err error) []error {
	if multi, ok := err.(openapi3.MultiError); ok {
		var out []error
		for _, item := range multi {
			out = append(out, flatten(item)...)
		}
		return out
	}
	return []error{err}
}

// normalizeValues round-trips through JSON so Go ints, structs and typed
// slices reach the validator as float64, maps and []any.
func normalizeValues(values map[string]any) (map[string]any, error) {
	if values == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
