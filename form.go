package snowform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-snowform/pkg/components"
	"github.com/goliatone/go-snowform/pkg/model"
	"github.com/goliatone/go-snowform/pkg/registry"
	"github.com/goliatone/go-snowform/pkg/render"
	"github.com/goliatone/go-snowform/pkg/resolve"
	"github.com/goliatone/go-snowform/pkg/schema"
)

// ServerErrorType tags field errors returned by a submit handler.
const ServerErrorType = "server"

// SubmitFunc receives the validated values.
type SubmitFunc func(ctx context.Context, values map[string]any) error

// Option configures a Form.
type Option func(*Form)

// WithID sets the form id, used to prefix element ids.
func WithID(id string) Option {
	return func(f *Form) {
		f.ID = strings.TrimSpace(id)
	}
}

// WithAction sets the form action URL.
func WithAction(action string) Option {
	return func(f *Form) {
		f.Action = action
	}
}

// WithMethod sets the submission method.
func WithMethod(method string) Option {
	return func(f *Form) {
		f.Method = strings.ToUpper(strings.TrimSpace(method))
	}
}

// WithClass adds classes to the form element.
func WithClass(class string) Option {
	return func(f *Form) {
		f.Class = class
	}
}

// WithOverrides sets the per-field overrides.
func WithOverrides(overrides resolve.Overrides) Option {
	return func(f *Form) {
		f.Overrides = overrides
	}
}

// WithDefaultValues sets the values used before the user typed anything.
func WithDefaultValues(values map[string]any) Option {
	return func(f *Form) {
		f.DefaultValues = values
	}
}

// WithOnSubmit sets the handler for valid submissions.
func WithOnSubmit(fn SubmitFunc) Option {
	return func(f *Form) {
		f.OnSubmit = fn
	}
}

// WithSubmitLabel sets the submit button label.
func WithSubmitLabel(label string) Option {
	return func(f *Form) {
		f.SubmitLabel = label
	}
}

// WithDebug appends a JSON dump of values and errors to every render.
func WithDebug(debug bool) Option {
	return func(f *Form) {
		f.Debug = debug
	}
}

// WithRegistry resolves against set instead of the process-wide registries.
func WithRegistry(set *registry.Set) Option {
	return func(f *Form) {
		f.set = set
	}
}

// WithLibrary replaces the library defaults.
func WithLibrary(library components.Library) Option {
	return func(f *Form) {
		f.library = &library
	}
}

// WithTheme builds the library defaults from a go-theme selection.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(f *Form) {
		f.themeSelector = selector
		f.themeName = name
		f.themeVariant = variant
	}
}

// WithResolverOptions customizes type inference and labels.
func WithResolverOptions(opts ...resolve.Option) Option {
	return func(f *Form) {
		f.resolverOpts = append(f.resolverOpts, opts...)
	}
}

// WithRenderOptions customizes the renderer, for example layout template
// helpers.
func WithRenderOptions(opts ...render.Option) Option {
	return func(f *Form) {
		f.renderOpts = append(f.renderOpts, opts...)
	}
}

// Form binds a schema to the registries and renders, validates and submits
// it.
type Form struct {
	ID            string
	Action        string
	Method        string
	Class         string
	Schema        *schema.Schema
	Overrides     resolve.Overrides
	DefaultValues map[string]any
	OnSubmit      SubmitFunc
	SubmitLabel   string
	Debug         bool

	set           *registry.Set
	library       *components.Library
	themeSelector theme.ThemeSelector
	themeName     string
	themeVariant  string
	resolverOpts  []resolve.Option
	renderOpts    []render.Option
	httpOpts      httpOptions

	resolver *resolve.Resolver
	renderer *render.Renderer
}

// New builds a Form for s.
func New(s *schema.Schema, opts ...Option) (*Form, error) {
	if s == nil {
		return nil, schema.ErrSchemaRequired
	}
	f := &Form{Schema: s, Method: "POST"}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.set == nil {
		f.set = registry.Default()
	}

	library, err := f.buildLibrary()
	if err != nil {
		return nil, err
	}
	f.resolver = resolve.New(library, f.set, f.resolverOpts...)
	f.renderer, err = render.NewRenderer(f.resolver, f.renderOpts...)
	if err != nil {
		return nil, fmt.Errorf("snowform: %w", err)
	}
	return f, nil
}

func (f *Form) buildLibrary() (components.Library, error) {
	if f.library != nil {
		return *f.library, nil
	}
	if f.themeSelector != nil {
		opt, err := components.SelectTheme(f.themeSelector, f.themeName, f.themeVariant)
		if err != nil {
			return components.Library{}, fmt.Errorf("snowform: %w", err)
		}
		library, err := components.Defaults(opt)
		if err != nil {
			return components.Library{}, fmt.Errorf("snowform: %w", err)
		}
		return library, nil
	}
	library, err := DefaultLibrary()
	if err != nil {
		return components.Library{}, fmt.Errorf("snowform: %w", err)
	}
	return library, nil
}

// Resolver returns the resolver the form renders with.
func (f *Form) Resolver() *resolve.Resolver {
	return f.resolver
}

// Render renders the whole form. Values missing from opts fall back to the
// default values.
func (f *Form) Render(ctx context.Context, opts RenderOptions) ([]byte, error) {
	return f.renderer.Render(ctx, f.renderForm(), f.renderOptions(opts))
}

// Layout renders the form tag and lets fn arrange the fields.
func (f *Form) Layout(ctx context.Context, opts RenderOptions, fn render.LayoutFunc) ([]byte, error) {
	return f.renderer.Layout(ctx, f.renderForm(), f.renderOptions(opts), fn)
}

func (f *Form) renderForm() render.Form {
	return render.Form{
		ID:          f.ID,
		Action:      f.Action,
		Method:      f.Method,
		Class:       f.Class,
		Schema:      f.Schema,
		Overrides:   f.Overrides,
		SubmitLabel: f.SubmitLabel,
	}
}

func (f *Form) renderOptions(opts RenderOptions) RenderOptions {
	opts.Values = mergeValues(f.DefaultValues, opts.Values)
	opts.Debug = opts.Debug || f.Debug
	return opts
}

// Result is the outcome of a submission.
type Result struct {
	Values     map[string]any
	Errors     model.FieldErrors
	FormErrors []string
	// Ref carries what the error behavior changed for the next render.
	Ref *model.FormRef
	// Err is the submit handler error that became a form-level error.
	Err error

	// cleared lists fields that were posted empty.
	cleared []string
}

// Valid reports whether the submission succeeded.
func (r Result) Valid() bool {
	return len(r.Errors) == 0 && len(r.FormErrors) == 0
}

// RenderOptions returns options that re-render the submission with its
// errors. Fields the user cleared render empty instead of falling back to
// the default values.
func (r Result) RenderOptions() RenderOptions {
	values := r.Values
	if len(r.cleared) > 0 {
		values = make(map[string]any, len(r.Values)+len(r.cleared))
		for key, value := range r.Values {
			values[key] = value
		}
		for _, name := range r.cleared {
			values[name] = ""
		}
	}
	return RenderOptions{
		Values:     values,
		Errors:     r.Errors,
		FormErrors: r.FormErrors,
		Ref:        r.Ref,
	}
}

// Submit validates values merged over the defaults. Invalid values run the
// registered error behavior; valid ones are passed to OnSubmit. The returned
// error is reserved for failures of the submission itself, such as a
// cancelled context.
func (f *Form) Submit(ctx context.Context, values map[string]any) (Result, error) {
	return f.submit(ctx, values, nil)
}

// submit fills defaults only for fields missing from posted. A field that
// was posted but coerced away keeps no value.
func (f *Form) submit(ctx context.Context, values map[string]any, posted []string) (Result, error) {
	defaults := f.DefaultValues
	var cleared []string
	if len(posted) > 0 {
		defaults = make(map[string]any, len(f.DefaultValues))
		for key, value := range f.DefaultValues {
			defaults[key] = value
		}
		for _, name := range posted {
			delete(defaults, name)
			if _, ok := values[name]; ok {
				continue
			}
			if _, ok := f.Schema.Field(name); ok {
				cleared = append(cleared, name)
			}
		}
	}

	merged := mergeValues(defaults, values)
	result := Result{Values: merged, cleared: cleared}

	errs, err := f.Schema.Validate(ctx, merged)
	if err != nil {
		return result, err
	}
	if len(errs) > 0 {
		result.Errors = errs
		result.Ref = f.fail(ctx, errs)
		return result, nil
	}
	if f.OnSubmit == nil {
		return result, nil
	}

	err = f.OnSubmit(ctx, merged)
	if err == nil {
		return result, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return result, err
	}

	result.Err = err
	var submitErr *SubmitError
	if errors.As(err, &submitErr) {
		mapping := render.MapErrorPayload(f.Schema.Model(f.ID), submitErr.Fields)
		result.Errors = mapping.FieldErrors(ServerErrorType)
		result.FormErrors = render.MergeFormErrors(mapping.Form, submitErr.Form...)
		if submitErr.Message != "" {
			result.FormErrors = render.MergeFormErrors(result.FormErrors, submitErr.Message)
		}
	}
	if len(result.Errors) == 0 && len(result.FormErrors) == 0 {
		result.FormErrors = []string{f.submitFailedMessage()}
	}
	if len(result.Errors) > 0 {
		result.Ref = f.fail(ctx, result.Errors)
	}
	return result, nil
}

func (f *Form) fail(ctx context.Context, errs model.FieldErrors) *model.FormRef {
	ref := model.NewFormRef(f.ID, f.Schema.Names())
	f.set.ExecuteOnError(ctx, ref, errs)
	return ref
}

func (f *Form) submitFailedMessage() string {
	if message, ok := f.set.Message("submit"); ok {
		return message
	}
	if message, ok := f.resolver.Library().Message("submit"); ok {
		return message
	}
	return "Submission failed"
}

func mergeValues(defaults, values map[string]any) map[string]any {
	if len(defaults) == 0 && len(values) == 0 {
		return nil
	}
	out := make(map[string]any, len(defaults)+len(values))
	for key, value := range defaults {
		out[key] = value
	}
	for key, value := range values {
		out[key] = value
	}
	return out
}
