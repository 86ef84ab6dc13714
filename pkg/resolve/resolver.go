package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-snowform/pkg/components"
	"github.com/goliatone/go-snowform/pkg/model"
	"github.com/goliatone/go-snowform/pkg/registry"
)

// ErrComponentNotFound is returned when no layer provides a renderer for a
// field type, including the text fallback.
var ErrComponentNotFound = errors.New("resolve: component not found")

// Field is the outcome of resolving one schema field.
type Field struct {
	Name            string
	Type            string
	Label           string
	Description     string
	DescriptionHTML bool
	Placeholder     string
	Options         []model.FieldOption
	Required        bool
	Disabled        bool
	Hidden          bool
	Attrs           map[string]string
	Render          registry.Component
	Schema          model.Field
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithInference replaces the type inference rules.
func WithInference(inference *Inference) Option {
	return func(r *Resolver) {
		if inference != nil {
			r.inference = inference
		}
	}
}

// WithLabeler replaces the humanized label fallback.
func WithLabeler(labeler func(string) string) Option {
	return func(r *Resolver) {
		if labeler != nil {
			r.labeler = labeler
		}
	}
}

// Resolver layers per-field overrides over the app-wide registries over the
// library defaults.
type Resolver struct {
	library   components.Library
	set       *registry.Set
	inference *Inference
	labeler   func(string) string
}

// New constructs a Resolver. A nil set resolves against the process-wide
// registries.
func New(library components.Library, set *registry.Set, opts ...Option) *Resolver {
	if set == nil {
		set = registry.Default()
	}
	r := &Resolver{
		library:   library,
		set:       set,
		inference: NewInference(),
		labeler:   Humanize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Set returns the registries the resolver consults.
func (r *Resolver) Set() *registry.Set {
	return r.set
}

// Library returns the library defaults.
func (r *Resolver) Library() components.Library {
	return r.library
}

// T returns the current translate function.
func (r *Resolver) T() registry.TranslationFunc {
	return r.set.T()
}

// Field resolves field with an optional override.
func (r *Resolver) Field(field model.Field, override *FieldOverride) (Field, error) {
	if override == nil {
		override = &FieldOverride{}
	}
	t := r.T()

	componentType := strings.ToLower(strings.TrimSpace(override.Type))
	if componentType == "" {
		componentType = r.inference.Infer(field)
	}

	render, err := r.Component(componentType, override.Render)
	if err != nil {
		return Field{}, fmt.Errorf("resolve: field %q: %w", field.Name, err)
	}

	out := Field{
		Name:        field.Name,
		Type:        componentType,
		Label:       r.label(field, override, t),
		Placeholder: r.placeholder(field, override, t),
		Options:     r.options(field, override, t),
		Required:    field.Required,
		Disabled:    override.Disabled,
		Hidden:      override.Hidden,
		Attrs:       copyStrings(override.Attrs),
		Render:      render,
		Schema:      field,
	}
	out.Description, out.DescriptionHTML = r.description(field, override, t)
	return out, nil
}

// Component returns the renderer for componentType: explicit, then the
// registry, then the library, then the text component of either layer.
func (r *Resolver) Component(componentType string, explicit registry.Component) (registry.Component, error) {
	if explicit != nil {
		return explicit, nil
	}
	if component, ok := r.set.Components.Lookup(componentType); ok {
		return component, nil
	}
	if component, ok := r.library.Component(componentType); ok {
		return component, nil
	}
	if component, ok := r.set.Components.Lookup(components.NameText); ok {
		return component, nil
	}
	if component, ok := r.library.Component(components.NameText); ok {
		return component, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrComponentNotFound, componentType)
}

func (r *Resolver) label(field model.Field, override *FieldOverride, t registry.TranslationFunc) string {
	if override.Label != "" {
		return override.Label
	}
	if translated := t(field.Name); translated != "" && translated != field.Name {
		return translated
	}
	if field.Title != "" {
		if translated := t(field.Title); translated != "" {
			return translated
		}
		return field.Title
	}
	return r.labeler(field.Name)
}

func (r *Resolver) description(field model.Field, override *FieldOverride, t registry.TranslationFunc) (string, bool) {
	if override.DescriptionHTML != "" {
		if cleaned := SanitizeHTML(override.DescriptionHTML); cleaned != "" {
			return cleaned, true
		}
	}
	if override.Description != "" {
		return override.Description, false
	}
	if field.Description != "" {
		return t(field.Description), false
	}
	return "", false
}

func (r *Resolver) placeholder(field model.Field, override *FieldOverride, t registry.TranslationFunc) string {
	if override.Placeholder != "" {
		return override.Placeholder
	}
	if field.Placeholder != "" {
		return t(field.Placeholder)
	}
	return ""
}

func (r *Resolver) options(field model.Field, override *FieldOverride, t registry.TranslationFunc) []model.FieldOption {
	if len(override.Options) > 0 {
		return append([]model.FieldOption(nil), override.Options...)
	}
	values := enumValues(field)
	if len(values) == 0 {
		return nil
	}
	options := make([]model.FieldOption, 0, len(values))
	for _, value := range values {
		str := components.FormatValue(value)
		options = append(options, model.FieldOption{Value: str, Label: t(str)})
	}
	return options
}

// ErrorMessage resolves the message shown for fieldErr: override, schema
// rule message, app-wide message, library default, then the validator
// reason. The result is translated.
func (r *Resolver) ErrorMessage(field model.Field, override *FieldOverride, fieldErr model.FieldError) string {
	t := r.T()
	kind := fieldErr.Type

	if override != nil {
		if message := strings.TrimSpace(override.Messages[kind]); message != "" {
			return t(message)
		}
	}
	if rule, ok := field.Rule(kind); ok && strings.TrimSpace(rule.Message) != "" {
		return t(rule.Message)
	}
	if message, ok := r.set.Message(kind); ok {
		return t(message)
	}
	if message, ok := r.library.Message(kind); ok {
		return t(message)
	}
	return t(fieldErr.Message)
}

// FormUI returns the chrome renderers: registry slots over library slots.
func (r *Resolver) FormUI() registry.FormUI {
	return r.set.Components.FormUI().Merge(r.library.FormUI)
}

// SubmitButton returns the registered submit button or the library one.
func (r *Resolver) SubmitButton() (registry.SubmitButton, error) {
	if button, ok := r.set.Components.SubmitButton(); ok {
		return button, nil
	}
	if r.library.SubmitButton != nil {
		return r.library.SubmitButton, nil
	}
	return nil, fmt.Errorf("%w: submit button", ErrComponentNotFound)
}

// SubmitLabel returns label, or the translated "submit" key. An untranslated
// key is humanized.
func (r *Resolver) SubmitLabel(label string) string {
	if strings.TrimSpace(label) != "" {
		return label
	}
	translated := strings.TrimSpace(r.T()("submit"))
	if translated == "" || translated == "submit" {
		return r.labeler("submit")
	}
	return translated
}

func copyStrings(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
