package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/goliatone/go-snowform/pkg/components"
	"github.com/goliatone/go-snowform/pkg/model"
	"github.com/goliatone/go-snowform/pkg/registry"
	"github.com/goliatone/go-snowform/pkg/render/template"
	"github.com/goliatone/go-snowform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-snowform/pkg/resolve"
	"github.com/goliatone/go-snowform/pkg/schema"
)

// ErrFieldNotFound is returned when a layout asks for a field the schema
// does not declare.
var ErrFieldNotFound = errors.New("render: field not found")

const defaultIDPrefix = "sf"

// Option configures a Renderer.
type Option func(*Renderer)

// WithTemplateRenderer sets the engine used for layout templates.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if renderer != nil {
			r.templates = renderer
		}
	}
}

// WithTemplateFuncs exposes helper functions to layout templates, for
// example the result of TemplateI18nFuncs.
func WithTemplateFuncs(funcs map[string]any) Option {
	return func(r *Renderer) {
		for name, fn := range funcs {
			if r.funcs == nil {
				r.funcs = make(map[string]any, len(funcs))
			}
			r.funcs[name] = fn
		}
	}
}

// Renderer renders forms through a resolver.
type Renderer struct {
	resolver  *resolve.Resolver
	templates template.TemplateRenderer
	funcs     map[string]any
}

// NewRenderer constructs a Renderer. Without WithTemplateRenderer layout
// templates run on a pongo2 engine over the embedded component templates.
func NewRenderer(resolver *resolve.Resolver, opts ...Option) (*Renderer, error) {
	if resolver == nil {
		return nil, errors.New("render: resolver is required")
	}
	r := &Renderer{resolver: resolver}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.templates == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(components.TemplatesFS()))
		if err != nil {
			return nil, fmt.Errorf("render: template engine: %w", err)
		}
		r.templates = engine
	}
	if len(r.funcs) > 0 {
		if err := r.templates.GlobalContext(r.funcs); err != nil {
			return nil, fmt.Errorf("render: template funcs: %w", err)
		}
	}
	return r, nil
}

// Resolver returns the resolver used for field lookups.
func (r *Renderer) Resolver() *resolve.Resolver {
	return r.resolver
}

// Render emits the whole form: form-level errors, every field in order,
// the submit button and the hidden inputs.
func (r *Renderer) Render(ctx context.Context, form Form, opts Options) ([]byte, error) {
	return r.render(ctx, form, opts, func(w io.Writer, l *Layout) error {
		if _, err := io.WriteString(w, l.FormErrors()); err != nil {
			return err
		}
		for _, name := range l.Fields() {
			markup, err := l.Field(name)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(w, markup); err != nil {
				return err
			}
		}
		markup, err := l.SubmitButton(registry.SubmitButtonProps{})
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, markup)
		return err
	})
}

// Layout emits the form tag and hidden inputs and lets fn arrange the
// fields, form errors and submit button.
func (r *Renderer) Layout(ctx context.Context, form Form, opts Options, fn LayoutFunc) ([]byte, error) {
	if fn == nil {
		return nil, errors.New("render: layout func is required")
	}
	return r.render(ctx, form, opts, fn)
}

func (r *Renderer) render(ctx context.Context, form Form, opts Options, fn LayoutFunc) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if form.Schema == nil {
		return nil, fmt.Errorf("render: %w", schema.ErrSchemaRequired)
	}

	layout := newLayout(r, form, opts)
	var buf bytes.Buffer
	writeFormOpen(&buf, form, opts, r.resolver.Library().CSSVars)
	for _, hidden := range layout.hiddenFields() {
		buf.WriteString(hiddenInput(hidden.Name, hidden.Value))
	}
	if err := fn(&buf, layout); err != nil {
		return nil, fmt.Errorf("render: form %q: %w", form.ID, err)
	}
	if opts.Debug {
		if err := writeDebug(&buf, opts); err != nil {
			return nil, fmt.Errorf("render: debug output: %w", err)
		}
	}
	buf.WriteString("</form>")
	return buf.Bytes(), nil
}

func (r *Renderer) renderField(l *Layout, field model.Field) (string, error) {
	override, _ := l.form.Overrides.Lookup(field.Name)
	resolved, err := r.resolver.Field(field, override)
	if err != nil {
		return "", err
	}

	value := l.opts.value(field)
	if resolved.Hidden {
		return hiddenInput(field.Name, components.FormatValue(value)), nil
	}

	id := l.elementID(field.Name)
	descriptionID := id + "-description"
	errorID := id + "-error"

	fieldErr, invalid := l.opts.Errors[field.Name]
	var describedBy []string
	if resolved.Description != "" {
		describedBy = append(describedBy, descriptionID)
	}
	if invalid {
		describedBy = append(describedBy, errorID)
	}

	wrapper := map[string]any{
		"class":      "snowform-field",
		"data-field": field.Name,
		"data-type":  resolved.Type,
	}
	if invalid {
		wrapper["data-invalid"] = "true"
	}
	for key, val := range l.opts.Ref.FieldAttrs(field.Name) {
		wrapper[key] = val
	}

	ui := l.ui
	var buf bytes.Buffer
	buf.WriteString("<div" + gotemplate.FormatAttrs(wrapper) + ">")
	if ui.Label != nil && resolved.Label != "" {
		if err := ui.Label(&buf, registry.LabelProps{
			For:      id,
			Text:     resolved.Label,
			Required: resolved.Required,
			Invalid:  invalid,
		}); err != nil {
			return "", fmt.Errorf("field %q label: %w", field.Name, err)
		}
	}

	props := registry.Props{
		Name:        field.Name,
		ID:          id,
		Type:        resolved.Type,
		Value:       value,
		Placeholder: resolved.Placeholder,
		Disabled:    resolved.Disabled || l.opts.Loading,
		Required:    resolved.Required,
		Invalid:     invalid,
		Autofocus:   l.opts.Ref.Focused() == field.Name,
		Options:     resolved.Options,
		Attrs:       resolved.Attrs,
		DescribedBy: strings.Join(describedBy, " "),
	}
	if err := resolved.Render(&buf, props); err != nil {
		return "", fmt.Errorf("field %q control: %w", field.Name, err)
	}

	if ui.Description != nil && resolved.Description != "" {
		if err := ui.Description(&buf, registry.DescriptionProps{
			ID:   descriptionID,
			Text: resolved.Description,
			HTML: resolved.DescriptionHTML,
		}); err != nil {
			return "", fmt.Errorf("field %q description: %w", field.Name, err)
		}
	}
	if ui.ErrorMessage != nil && invalid {
		if err := ui.ErrorMessage(&buf, registry.ErrorMessageProps{
			ID:      errorID,
			Message: r.resolver.ErrorMessage(field, override, fieldErr),
		}); err != nil {
			return "", fmt.Errorf("field %q error: %w", field.Name, err)
		}
	}
	buf.WriteString("</div>")
	return buf.String(), nil
}

func (r *Renderer) renderSubmit(l *Layout, props registry.SubmitButtonProps) (string, error) {
	button, err := r.resolver.SubmitButton()
	if err != nil {
		return "", err
	}
	label := props.Label
	if label == "" {
		label = l.opts.SubmitLabel
	}
	if label == "" {
		label = l.form.SubmitLabel
	}
	props.Label = r.resolver.SubmitLabel(label)
	if l.opts.Loading {
		props.Loading = true
		props.Disabled = true
	}

	var buf bytes.Buffer
	if err := button(&buf, props); err != nil {
		return "", fmt.Errorf("submit button: %w", err)
	}
	return buf.String(), nil
}

func writeFormOpen(buf *bytes.Buffer, form Form, opts Options, cssVars map[string]string) {
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = strings.ToUpper(strings.TrimSpace(form.Method))
	}
	attrs := map[string]any{
		"id":         idPrefix(form.ID),
		"class":      strings.TrimSpace("snowform " + form.Class),
		"method":     htmlMethod(method),
		"novalidate": "",
	}
	if form.Action != "" {
		attrs["action"] = form.Action
	}
	if style := inlineVars(cssVars); style != "" {
		attrs["style"] = style
	}
	if opts.Loading {
		attrs["aria-busy"] = "true"
	}
	buf.WriteString("<form" + gotemplate.FormatAttrs(attrs) + ">")
	if field, ok := MethodOverride(method); ok {
		buf.WriteString(hiddenInput(field.Name, field.Value))
	}
}

func htmlMethod(method string) string {
	if method == "GET" {
		return "get"
	}
	return "post"
}

func inlineVars(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+vars[name])
	}
	return strings.Join(parts, "; ")
}

func hiddenInput(name, value string) string {
	return "<input" + gotemplate.FormatAttrs(map[string]any{
		"type":  "hidden",
		"name":  name,
		"value": value,
	}) + ">"
}

func writeDebug(buf *bytes.Buffer, opts Options) error {
	payload := struct {
		Values     map[string]any    `json:"values"`
		Errors     model.FieldErrors `json:"errors,omitempty"`
		FormErrors []string          `json:"formErrors,omitempty"`
	}{
		Values:     opts.Values,
		Errors:     opts.Errors,
		FormErrors: opts.FormErrors,
	}
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	buf.WriteString(`<pre class="snowform-debug">`)
	buf.WriteString(html.EscapeString(string(raw)))
	buf.WriteString("</pre>")
	return nil
}

func idPrefix(id string) string {
	if trimmed := strings.TrimSpace(id); trimmed != "" {
		return trimmed
	}
	return defaultIDPrefix
}
