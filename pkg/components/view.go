package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-snowform/pkg/registry"
)

// controlView flattens props into the payload the control templates expect.
// Values are stringified and selection state is computed here so templates
// stay free of comparison logic.
func controlView(props registry.Props, inputType string) map[string]any {
	selected := selectedValues(props.Value)

	options := make([]map[string]any, 0, len(props.Options))
	for _, option := range props.Options {
		_, isSelected := selected[option.Value]
		options = append(options, map[string]any{
			"value":    option.Value,
			"label":    option.Label,
			"disabled": option.Disabled,
			"selected": isSelected,
		})
	}

	attrs := make(map[string]any, len(props.Attrs)+2)
	for key, value := range props.Attrs {
		attrs[key] = value
	}
	if props.Invalid {
		attrs["aria-invalid"] = "true"
	}
	if props.DescribedBy != "" {
		attrs["aria-describedby"] = props.DescribedBy
	}

	return map[string]any{
		"name":        props.Name,
		"id":          props.ID,
		"type":        inputType,
		"value":       FormatValue(props.Value),
		"checked":     isChecked(props.Value),
		"placeholder": props.Placeholder,
		"disabled":    props.Disabled,
		"required":    props.Required,
		"invalid":     props.Invalid,
		"autofocus":   props.Autofocus,
		"options":     options,
		"attrs":       attrs,
	}
}

// FormatValue renders a form value the way it is written into a value
// attribute.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case []string:
		return strings.Join(v, ",")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, FormatValue(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

func selectedValues(value any) map[string]struct{} {
	out := map[string]struct{}{}
	switch v := value.(type) {
	case nil:
	case []string:
		for _, item := range v {
			out[item] = struct{}{}
		}
	case []any:
		for _, item := range v {
			out[FormatValue(item)] = struct{}{}
		}
	default:
		if formatted := FormatValue(v); formatted != "" {
			out[formatted] = struct{}{}
		}
	}
	return out
}

func isChecked(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return true
		}
	}
	return false
}
