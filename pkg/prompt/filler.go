// Package prompt fills a form in the terminal. Fields resolve through the
// same resolver as the HTML renderer, so labels, options and component
// types match.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-snowform/pkg/components"
	"github.com/goliatone/go-snowform/pkg/model"
	"github.com/goliatone/go-snowform/pkg/resolve"
	"github.com/goliatone/go-snowform/pkg/schema"
)

const defaultMaxAttempts = 3

// Theme holds message prefixes used for Info output.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Filler.
type Option func(*Filler)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithMaxAttempts caps the prompt rounds. Every round after the first only
// asks for the invalid fields.
func WithMaxAttempts(n int) Option {
	return func(f *Filler) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

// WithOutput sends Info output of the default driver to w.
func WithOutput(w io.Writer) Option {
	return func(f *Filler) {
		f.out = w
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(f *Filler) {
		f.theme = theme
	}
}

// Filler prompts for field values until they validate.
type Filler struct {
	resolver    *resolve.Resolver
	driver      PromptDriver
	maxAttempts int
	out         io.Writer
	theme       Theme
}

// New constructs a Filler.
func New(resolver *resolve.Resolver, opts ...Option) (*Filler, error) {
	if resolver == nil {
		return nil, errors.New("prompt: resolver is required")
	}
	f := &Filler{
		resolver:    resolver,
		maxAttempts: defaultMaxAttempts,
		theme:       Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(f.out)
	}
	return f, nil
}

// Fill prompts for every visible field, validates, and re-prompts the
// invalid ones. It returns the values with ErrTooManyAttempts when they are
// still invalid after the last round.
func (f *Filler) Fill(ctx context.Context, s *schema.Schema, overrides resolve.Overrides, defaults map[string]any) (map[string]any, error) {
	if s == nil {
		return nil, schema.ErrSchemaRequired
	}
	values := make(map[string]any, len(defaults))
	for key, value := range defaults {
		values[key] = value
	}

	fields := s.Fields()
	var errs model.FieldErrors
	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		for _, field := range fields {
			if attempt > 0 && !errs.Has(field.Name) {
				continue
			}
			override, _ := overrides.Lookup(field.Name)
			if err := f.promptField(ctx, s, field, override, values, errs); err != nil {
				return values, err
			}
		}

		var err error
		errs, err = s.Validate(ctx, values)
		if err != nil {
			return values, err
		}
		if len(errs) == 0 {
			return values, nil
		}
		if fe, ok := errs[schema.FormErrorKey]; ok {
			return values, fmt.Errorf("prompt: %s", fe.Message)
		}
	}
	return values, fmt.Errorf("%w: %s", ErrTooManyAttempts, strings.Join(errs.Names(), ", "))
}

func (f *Filler) promptField(ctx context.Context, s *schema.Schema, field model.Field, override *resolve.FieldOverride, values map[string]any, errs model.FieldErrors) error {
	resolved, err := f.resolver.Field(field, override)
	if err != nil {
		return err
	}
	if resolved.Hidden || resolved.Disabled {
		return nil
	}
	if fe, ok := errs[field.Name]; ok {
		message := f.resolver.ErrorMessage(field, override, fe)
		if err := f.driver.Info(ctx, f.theme.ErrorPrefix+resolved.Label+": "+message); err != nil {
			return err
		}
	}

	current := values[field.Name]
	message := resolved.Label
	help := plainText(resolved.Description, resolved.DescriptionHTML)
	if help == "" {
		help = resolved.Placeholder
	}

	switch resolved.Type {
	case components.NameCheckbox:
		answer, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: current == true,
			Help:    help,
		})
		if err != nil {
			return err
		}
		values[field.Name] = answer
		return nil
	case components.NameSelect, components.NameRadio:
		return f.promptChoice(ctx, s, field, resolved, values, help)
	}

	var raw string
	switch resolved.Type {
	case components.NamePassword:
		raw, err = f.driver.Password(ctx, InputConfig{Message: message, Help: help})
	case components.NameTextarea:
		raw, err = f.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: components.FormatValue(current), Help: help})
	default:
		raw, err = f.driver.Input(ctx, InputConfig{Message: message, Default: components.FormatValue(current), Help: help})
	}
	if err != nil {
		return err
	}
	setValue(s, field.Name, []string{raw}, values)
	return nil
}

func (f *Filler) promptChoice(ctx context.Context, s *schema.Schema, field model.Field, resolved resolve.Field, values map[string]any, help string) error {
	labels := make([]string, 0, len(resolved.Options))
	var selectable []model.FieldOption
	for _, option := range resolved.Options {
		if option.Disabled {
			continue
		}
		labels = append(labels, option.Label)
		selectable = append(selectable, option)
	}
	if len(selectable) == 0 {
		return nil
	}
	current := selectedSet(values[field.Name])

	if field.Type == model.FieldTypeArray {
		var defaults []int
		for i, option := range selectable {
			if _, ok := current[option.Value]; ok {
				defaults = append(defaults, i)
			}
		}
		picked, err := f.driver.MultiSelect(ctx, SelectConfig{Message: resolved.Label, Options: labels, Defaults: defaults, Help: help})
		if err != nil {
			return err
		}
		raw := make([]string, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(selectable) {
				raw = append(raw, selectable[idx].Value)
			}
		}
		setValue(s, field.Name, raw, values)
		return nil
	}

	defaultIndex := -1
	for i, option := range selectable {
		if _, ok := current[option.Value]; ok {
			defaultIndex = i
			break
		}
	}
	idx, err := f.driver.Select(ctx, SelectConfig{Message: resolved.Label, Options: labels, DefaultIndex: defaultIndex, Help: help})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(selectable) {
		delete(values, field.Name)
		return nil
	}
	setValue(s, field.Name, []string{selectable[idx].Value}, values)
	return nil
}

// setValue coerces raw through the schema so numbers and booleans get their
// types. Empty answers clear the value.
func setValue(s *schema.Schema, name string, raw []string, values map[string]any) {
	coerced := s.Coerce(url.Values{name: raw})
	if value, ok := coerced[name]; ok {
		values[name] = value
		return
	}
	delete(values, name)
}

func selectedSet(value any) map[string]struct{} {
	out := map[string]struct{}{}
	switch v := value.(type) {
	case nil:
	case []any:
		for _, item := range v {
			out[components.FormatValue(item)] = struct{}{}
		}
	case []string:
		for _, item := range v {
			out[item] = struct{}{}
		}
	default:
		out[components.FormatValue(v)] = struct{}{}
	}
	return out
}

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

func plainText(text string, isHTML bool) string {
	if !isHTML {
		return text
	}
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(plainPolicy.Sanitize(text))
}
