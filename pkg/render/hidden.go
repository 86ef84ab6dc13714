package render

import (
	"fmt"
	"sort"
	"strings"
)

// MethodField carries the intended method of forms submitted as POST.
const MethodField = "_method"

// HiddenField is an input rendered right after the form tag.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden builds a HiddenField, formatting value with fmt.Sprint.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// CSRFToken carries token under name ("_csrf", "csrf_token", ...).
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// VersionField carries a record version for optimistic locking.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// MethodOverride returns the _method field for methods an HTML form cannot
// send directly.
func MethodOverride(method string) (HiddenField, bool) {
	method = strings.ToUpper(strings.TrimSpace(method))
	switch method {
	case "PUT", "PATCH", "DELETE":
		return HiddenField{Name: MethodField, Value: method}, true
	}
	return HiddenField{}, false
}

// MergeHiddenFields copies base and applies fields over it. Blank names are
// dropped.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for name, value := range base {
		if name = strings.TrimSpace(name); name != "" {
			out[name] = value
		}
	}
	for _, field := range fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			out[name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields lists fields by name.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	merged := MergeHiddenFields(fields)
	if merged == nil {
		return nil
	}
	out := make([]HiddenField, 0, len(merged))
	for name, value := range merged {
		out = append(out, HiddenField{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
