package render

import (
	"github.com/goliatone/go-snowform/pkg/model"
	"github.com/goliatone/go-snowform/pkg/resolve"
	"github.com/goliatone/go-snowform/pkg/schema"
)

// Form describes the form being rendered.
type Form struct {
	// ID prefixes every element id. Defaults to "sf".
	ID     string
	Action string
	// Method is the submission method. PUT, PATCH and DELETE are sent as POST
	// with a hidden _method input.
	Method      string
	Class       string
	Schema      *schema.Schema
	Overrides   resolve.Overrides
	SubmitLabel string
}

// Options carries the per-request render state.
type Options struct {
	// Values are the current field values. Missing fields fall back to the
	// schema default.
	Values map[string]any
	// Errors are the validation errors keyed by field name. An entry under
	// schema.FormErrorKey is rendered with the form-level errors.
	Errors model.FieldErrors
	// FormErrors are messages that belong to no single field.
	FormErrors []string
	// Hidden inputs rendered inside the form, such as CSRF tokens.
	Hidden map[string]string
	// Method overrides Form.Method for this render.
	Method  string
	Loading bool
	// Debug appends a JSON dump of the values and errors.
	Debug bool
	// Ref carries the adjustments made by error behaviors.
	Ref         *model.FormRef
	SubmitLabel string
}

func (o Options) value(field model.Field) any {
	if value, ok := o.Values[field.Name]; ok {
		return value
	}
	return field.Default
}
