package schema

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Coerce converts raw form values into JSON-like values following the
// property types. Keys that are not properties are dropped and empty inputs
// are omitted so they count as missing. Scalars take the last submitted
// value, which lets a checkbox override its hidden fallback.
func (s *Schema) Coerce(values url.Values) map[string]any {
	out := make(map[string]any, len(s.root.Properties))
	for name, ref := range s.root.Properties {
		raw, ok := values[name]
		if !ok || len(raw) == 0 {
			continue
		}
		prop := ref.Value

		if prop.Type.Is(openapi3.TypeArray) {
			var item *openapi3.Schema
			if prop.Items != nil {
				item = prop.Items.Value
			}
			items := make([]any, 0, len(raw))
			for _, entry := range raw {
				for _, part := range splitList(entry, len(raw) == 1) {
					if part == "" {
						continue
					}
					items = append(items, coerceScalar(item, part))
				}
			}
			if len(items) > 0 {
				out[name] = items
			}
			continue
		}

		value := raw[len(raw)-1]
		if strings.TrimSpace(value) == "" {
			continue
		}
		out[name] = coerceScalar(prop, value)
	}
	return out
}

// splitList accepts comma separated values when a single input carried the
// whole list.
func splitList(value string, single bool) []string {
	if !single || !strings.Contains(value, ",") {
		return []string{strings.TrimSpace(value)}
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func coerceScalar(prop *openapi3.Schema, value string) any {
	if prop == nil {
		return value
	}
	switch {
	case prop.Type.Is(openapi3.TypeBoolean):
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "on", "1", "yes":
			return true
		case "false", "off", "0", "no":
			return false
		}
	case prop.Type.Is(openapi3.TypeInteger), prop.Type.Is(openapi3.TypeNumber):
		if n, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return n
		}
	}
	return value
}
