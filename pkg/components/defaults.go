package components

import (
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/goliatone/go-snowform/pkg/registry"
	"github.com/goliatone/go-snowform/pkg/render/template"
	"github.com/goliatone/go-snowform/pkg/render/template/gotemplate"
)

// Library holds the built-in components and chrome used when neither the
// app-wide setup nor a field override supplies one.
type Library struct {
	Components   map[string]registry.Component
	FormUI       registry.FormUI
	SubmitButton registry.SubmitButton
	// Messages are the library default validation messages keyed by error
	// type.
	Messages map[string]string
	// CSSVars are derived from the selected theme tokens.
	CSSVars map[string]string
}

// Component returns the library component for fieldType.
func (l Library) Component(fieldType string) (registry.Component, bool) {
	component, ok := l.Components[strings.ToLower(strings.TrimSpace(fieldType))]
	return component, ok && component != nil
}

// Message returns the library default message for kind.
func (l Library) Message(kind string) (string, bool) {
	message, ok := l.Messages[kind]
	return message, ok && message != ""
}

// Types lists the component types in the library, sorted.
func (l Library) Types() []string {
	types := make([]string, 0, len(l.Components))
	for name := range l.Components {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// Option customises Defaults.
type Option func(*options)

type options struct {
	renderer  template.TemplateRenderer
	templates []fs.FS
	partials  map[string]string
	cssVars   map[string]string
}

// WithTemplateRenderer swaps the template engine. The renderer must be able
// to resolve every partial path in use.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(o *options) {
		o.renderer = renderer
	}
}

// WithTemplatesFS adds a template file system searched before the embedded
// templates, so partial overrides can point at app templates.
func WithTemplatesFS(files fs.FS) Option {
	return func(o *options) {
		if files != nil {
			o.templates = append(o.templates, files)
		}
	}
}

// WithPartials overrides partial template paths by key (forms.input, ...).
func WithPartials(partials map[string]string) Option {
	return func(o *options) {
		for key, path := range partials {
			key = strings.TrimSpace(key)
			path = strings.TrimSpace(path)
			if key == "" || path == "" {
				continue
			}
			o.partials[key] = path
		}
	}
}

// Defaults builds the library defaults rendering the embedded templates.
func Defaults(opts ...Option) (Library, error) {
	o := &options{partials: DefaultPartials()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	renderer := o.renderer
	if renderer == nil {
		engineOpts := make([]gotemplate.Option, 0, len(o.templates)+1)
		for _, files := range o.templates {
			engineOpts = append(engineOpts, gotemplate.WithFS(files))
		}
		engineOpts = append(engineOpts, gotemplate.WithFS(TemplatesFS()))
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return Library{}, fmt.Errorf("components: template engine: %w", err)
		}
		renderer = engine
	}

	partial := func(key string) string {
		return o.partials[key]
	}

	library := Library{
		Components: make(map[string]registry.Component, len(inputTypes)+6),
		Messages:   DefaultMessages(),
		CSSVars:    copyStringMap(o.cssVars),
	}
	for _, name := range inputTypes {
		library.Components[name] = templateComponent(renderer, partial(PartialInput), name)
	}
	library.Components[NameTextarea] = templateComponent(renderer, partial(PartialTextarea), NameTextarea)
	library.Components[NameSelect] = templateComponent(renderer, partial(PartialSelect), NameSelect)
	library.Components[NameCheckbox] = templateComponent(renderer, partial(PartialCheckbox), NameCheckbox)
	library.Components[NameRadio] = templateComponent(renderer, partial(PartialRadio), NameRadio)
	library.Components[NameNumber] = templateComponent(renderer, partial(PartialNumber), NameNumber)
	library.Components[NameDate] = templateComponent(renderer, partial(PartialDate), NameDate)

	library.FormUI = registry.FormUI{
		Label: func(w io.Writer, props registry.LabelProps) error {
			return renderPartial(renderer, partial(PartialLabel), props, w)
		},
		Description: func(w io.Writer, props registry.DescriptionProps) error {
			return renderPartial(renderer, partial(PartialDescription), props, w)
		},
		ErrorMessage: func(w io.Writer, props registry.ErrorMessageProps) error {
			return renderPartial(renderer, partial(PartialError), props, w)
		},
	}
	library.SubmitButton = func(w io.Writer, props registry.SubmitButtonProps) error {
		return renderPartial(renderer, partial(PartialSubmit), props, w)
	}

	return library, nil
}

// MustDefaults is Defaults that panics on error.
func MustDefaults(opts ...Option) Library {
	library, err := Defaults(opts...)
	if err != nil {
		panic(err)
	}
	return library
}

func templateComponent(renderer template.TemplateRenderer, templateName, inputType string) registry.Component {
	return func(w io.Writer, props registry.Props) error {
		return renderPartial(renderer, templateName, controlView(props, inputType), w)
	}
}

func renderPartial(renderer template.TemplateRenderer, templateName string, data any, w io.Writer) error {
	if _, err := renderer.RenderTemplate(templateName, data, w); err != nil {
		return fmt.Errorf("components: render template %q: %w", templateName, err)
	}
	return nil
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
