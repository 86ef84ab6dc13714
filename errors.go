package snowform

import (
	"sort"
	"strings"
)

// SubmitError is returned by a submit handler to report errors the server
// found after validation passed. Field keys may be field names or paths such
// as /body/email; unknown paths become form-level errors.
type SubmitError struct {
	Message string
	Fields  map[string][]string
	Form    []string
}

// NewSubmitError creates a SubmitError with a form-level message.
func NewSubmitError(message string) *SubmitError {
	return &SubmitError{Message: message}
}

// WithField adds a message for field.
func (e *SubmitError) WithField(field, message string) *SubmitError {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

func (e *SubmitError) Error() string {
	if e == nil {
		return "snowform: submit failed"
	}
	parts := make([]string, 0, len(e.Fields)+1)
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	parts = append(parts, e.Form...)
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], ", "))
	}
	if len(parts) == 0 {
		return "snowform: submit failed"
	}
	return "snowform: submit failed: " + strings.Join(parts, "; ")
}
