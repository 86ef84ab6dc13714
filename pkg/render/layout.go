package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/goliatone/go-snowform/pkg/model"
	"github.com/goliatone/go-snowform/pkg/registry"
	"github.com/goliatone/go-snowform/pkg/schema"
)

// LayoutFunc arranges the inner markup of a form. Everything written to w
// lands between the form tag and its hidden inputs and the closing tag.
type LayoutFunc func(w io.Writer, l *Layout) error

// Layout gives a LayoutFunc access to the pre-rendered pieces of one form.
type Layout struct {
	renderer *Renderer
	form     Form
	opts     Options
	ui       registry.FormUI
	fields   []model.Field
	rendered map[string]string
}

func newLayout(r *Renderer, form Form, opts Options) *Layout {
	return &Layout{
		renderer: r,
		form:     form,
		opts:     opts,
		ui:       r.resolver.FormUI(),
		fields:   form.Schema.Fields(),
		rendered: make(map[string]string),
	}
}

// Fields returns the field names in render order.
func (l *Layout) Fields() []string {
	names := make([]string, 0, len(l.fields))
	for _, field := range l.fields {
		names = append(names, field.Name)
	}
	return names
}

// Field renders the named field with its label, description and error.
func (l *Layout) Field(name string) (string, error) {
	if markup, ok := l.rendered[name]; ok {
		return markup, nil
	}
	for _, field := range l.fields {
		if field.Name != name {
			continue
		}
		markup, err := l.renderer.renderField(l, field)
		if err != nil {
			return "", err
		}
		l.rendered[name] = markup
		return markup, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFieldNotFound, name)
}

// SubmitButton renders the submit button. An empty label falls back to the
// form submit label and then the translated "submit" key.
func (l *Layout) SubmitButton(props registry.SubmitButtonProps) (string, error) {
	return l.renderer.renderSubmit(l, props)
}

// FormErrors renders the form-level errors and behavior notices, or an empty
// string when there are none.
func (l *Layout) FormErrors() string {
	messages := l.formMessages()
	if len(messages) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="snowform-form-errors" role="alert"><ul>`)
	for _, message := range messages {
		b.WriteString("<li>" + html.EscapeString(message) + "</li>")
	}
	b.WriteString("</ul></div>")
	return b.String()
}

func (l *Layout) formMessages() []string {
	t := l.renderer.resolver.T()
	var extras []string
	if fe, ok := l.opts.Errors[schema.FormErrorKey]; ok {
		extras = append(extras, fe.Message)
	}
	extras = append(extras, l.opts.Ref.Notices()...)
	merged := MergeFormErrors(l.opts.FormErrors, extras...)
	for i, message := range merged {
		merged[i] = t(message)
	}
	return merged
}

// Template renders a pongo2 layout. The context holds fields.<name> and
// submit with pre-rendered markup and formErrors. Autoescaping is off for
// the layout, so every value it sees is already escaped markup.
func (l *Layout) Template(src string) (string, error) {
	fields := make(map[string]any, len(l.fields))
	for _, field := range l.fields {
		markup, err := l.Field(field.Name)
		if err != nil {
			return "", err
		}
		fields[field.Name] = markup
	}
	submit, err := l.SubmitButton(registry.SubmitButtonProps{})
	if err != nil {
		return "", err
	}
	data := map[string]any{
		"fields":     fields,
		"submit":     submit,
		"formErrors": l.FormErrors(),
	}
	out, err := l.renderer.templates.RenderString("{% autoescape off %}"+src+"{% endautoescape %}", data)
	if err != nil {
		return "", fmt.Errorf("layout template: %w", err)
	}
	return out, nil
}

func (l *Layout) elementID(name string) string {
	return idPrefix(l.form.ID) + "-" + name
}

func (l *Layout) hiddenFields() []HiddenField {
	return SortedHiddenFields(l.opts.Hidden)
}
