package model

import "sort"

// FieldError describes why a single field failed validation. Type mirrors the
// schema keyword that rejected the value (required, minLength, pattern, ...).
type FieldError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// FieldErrors maps field names to their first validation error.
type FieldErrors map[string]FieldError

// Has reports whether the named field has an error.
func (e FieldErrors) Has(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e[name]
	return ok
}

// Names returns the invalid field names sorted alphabetically.
func (e FieldErrors) Names() []string {
	if len(e) == 0 {
		return nil
	}
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// First returns the first invalid field following order. Invalid fields that
// are missing from order are considered afterwards, alphabetically.
func (e FieldErrors) First(order []string) (string, FieldError, bool) {
	if len(e) == 0 {
		return "", FieldError{}, false
	}
	for _, name := range order {
		if fe, ok := e[name]; ok {
			return name, fe, true
		}
	}
	names := e.Names()
	return names[0], e[names[0]], true
}

// Messages flattens the errors into the map[string][]string payload shape
// used by error mapping and JSON responses.
func (e FieldErrors) Messages() map[string][]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string][]string, len(e))
	for name, fe := range e {
		out[name] = []string{fe.Message}
	}
	return out
}
