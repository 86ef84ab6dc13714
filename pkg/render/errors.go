package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-snowform/pkg/model"
)

// ErrorMapping splits a server error payload into field messages and
// form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// FieldErrors keeps the first message of every field, tagged with kind.
func (m ErrorMapping) FieldErrors(kind string) model.FieldErrors {
	out := make(model.FieldErrors, len(m.Fields))
	for name, messages := range m.Fields {
		if len(messages) > 0 {
			out[name] = model.FieldError{Type: kind, Message: messages[0]}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// MergeFormErrors appends extras to existing, trimming blanks and dropping
// repeats. Order is kept.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	return uniqueMessages(append(combined, extras...))
}

// MapErrorPayload assigns the keys of a server error payload to the fields
// of form. Keys may be field names, JSON pointers (/body/email), dotted or
// bracketed paths (data.attributes.tags[0]). Leading envelope segments and
// array indexes are skipped; the first remaining segment must name a field,
// otherwise the messages become form-level errors, ordered by key.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	if len(payload) == 0 {
		return mapping
	}

	names := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			names[name] = struct{}{}
		}
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		messages := uniqueMessages(payload[key])
		if len(messages) == 0 {
			continue
		}
		name, ok := fieldForPath(key, names)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[name] = uniqueMessages(append(mapping.Fields[name], messages...))
	}
	mapping.Form = uniqueMessages(mapping.Form)
	return mapping
}

var envelopeSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

var formLevelKeys = map[string]struct{}{
	"_form":            {},
	"form":             {},
	"base":             {},
	"__all__":          {},
	"non_field_errors": {},
	"non-field-errors": {},
}

func fieldForPath(key string, names map[string]struct{}) (string, bool) {
	key = strings.TrimSpace(key)
	if _, ok := formLevelKeys[strings.ToLower(key)]; ok {
		return "", false
	}
	if _, ok := names[key]; ok {
		return key, true
	}
	for _, segment := range splitPath(key) {
		if _, ok := envelopeSegments[strings.ToLower(segment)]; ok {
			continue
		}
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		_, ok := names[segment]
		return segment, ok
	}
	return "", false
}

// splitPath breaks a pointer or dotted path into unescaped segments.
func splitPath(path string) []string {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		switch r {
		case '/', '.', '[', ']', '#', '$':
			return true
		}
		return false
	})
	out := parts[:0]
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		out = append(out, strings.ReplaceAll(part, "~0", "~"))
	}
	return out
}

func uniqueMessages(messages []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		message = strings.TrimSpace(message)
		if message == "" {
			continue
		}
		if _, dup := seen[message]; dup {
			continue
		}
		seen[message] = struct{}{}
		out = append(out, message)
	}
	return out
}
