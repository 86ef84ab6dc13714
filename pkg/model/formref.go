package model

import "strings"

// FormRef is the handle error behaviors receive for the form that failed
// validation. It exposes the render order and lets behaviors adjust the next
// render: focus a field, decorate a field wrapper, or add form-level notices.
// All methods are safe to call on a nil receiver.
type FormRef struct {
	ID     string
	Fields []string

	focus   string
	attrs   map[string]map[string]string
	notices []string
}

// NewFormRef builds a reference for the form id and its field render order.
func NewFormRef(id string, fields []string) *FormRef {
	return &FormRef{
		ID:     id,
		Fields: append([]string(nil), fields...),
	}
}

// Focus marks name as the field that should receive focus.
func (r *FormRef) Focus(name string) {
	if r == nil {
		return
	}
	r.focus = strings.TrimSpace(name)
}

// Focused returns the focused field name, if any.
func (r *FormRef) Focused() string {
	if r == nil {
		return ""
	}
	return r.focus
}

// SetFieldAttr sets an attribute on the wrapper of the named field.
func (r *FormRef) SetFieldAttr(field, key, value string) {
	if r == nil {
		return
	}
	field = strings.TrimSpace(field)
	key = strings.TrimSpace(key)
	if field == "" || key == "" {
		return
	}
	if r.attrs == nil {
		r.attrs = make(map[string]map[string]string)
	}
	if r.attrs[field] == nil {
		r.attrs[field] = make(map[string]string)
	}
	r.attrs[field][key] = value
}

// FieldAttrs returns a copy of the attributes set for the named field.
func (r *FormRef) FieldAttrs(field string) map[string]string {
	if r == nil || len(r.attrs[field]) == 0 {
		return nil
	}
	out := make(map[string]string, len(r.attrs[field]))
	for key, value := range r.attrs[field] {
		out[key] = value
	}
	return out
}

// AddNotice appends a form-level message rendered above the fields.
func (r *FormRef) AddNotice(message string) {
	if r == nil {
		return
	}
	if trimmed := strings.TrimSpace(message); trimmed != "" {
		r.notices = append(r.notices, trimmed)
	}
}

// Notices returns the form-level messages added by behaviors.
func (r *FormRef) Notices() []string {
	if r == nil || len(r.notices) == 0 {
		return nil
	}
	return append([]string(nil), r.notices...)
}
