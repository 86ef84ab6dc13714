package resolve

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-snowform/pkg/model"
)

// Matcher decides whether a component type fits the field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

const (
	// DefaultTextareaThreshold is the maxLength above which strings render
	// as textareas.
	DefaultTextareaThreshold = 255
	// DefaultRadioThreshold disables radio inference: enums render as
	// selects unless configured otherwise.
	DefaultRadioThreshold = 0
)

// Inference picks a component type for fields without an explicit type.
// Higher priority wins; ties fall back to registration order. A field no
// matcher claims renders as text.
type Inference struct {
	mu    sync.RWMutex
	rules []rule

	textareaThreshold uint64
	radioThreshold    int
}

// InferenceOption configures an Inference.
type InferenceOption func(*Inference)

// WithTextareaThreshold sets the maxLength above which strings render as a
// textarea.
func WithTextareaThreshold(n uint64) InferenceOption {
	return func(i *Inference) {
		i.textareaThreshold = n
	}
}

// WithRadioThreshold renders enums with at most n options as radios. Zero
// disables radios.
func WithRadioThreshold(n int) InferenceOption {
	return func(i *Inference) {
		i.radioThreshold = n
	}
}

// NewInference constructs an Inference with the built-in matchers.
func NewInference(opts ...InferenceOption) *Inference {
	inf := &Inference{
		textareaThreshold: DefaultTextareaThreshold,
		radioThreshold:    DefaultRadioThreshold,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(inf)
		}
	}
	inf.registerBuiltins()
	return inf
}

// Register adds a matcher for the component type name. Invalid input is
// ignored.
func (i *Inference) Register(name string, priority int, matcher Matcher) {
	if i == nil || matcher == nil {
		return
	}
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return
	}
	i.mu.Lock()
	defer i.mu.Unlock()

	i.rules = append(i.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(i.rules),
	})
}

// Infer returns the component type for field. An explicit x-ui component
// hint wins over every matcher.
func (i *Inference) Infer(field model.Field) string {
	if explicit := strings.ToLower(strings.TrimSpace(field.UIHints["component"])); explicit != "" {
		return explicit
	}
	if i == nil {
		return "text"
	}
	i.mu.RLock()
	rules := append([]rule(nil), i.rules...)
	i.mu.RUnlock()
	sort.SliceStable(rules, func(a, b int) bool {
		if rules[a].priority == rules[b].priority {
			return rules[a].order < rules[b].order
		}
		return rules[a].priority > rules[b].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name
		}
	}
	return "text"
}

var formatComponents = map[string]string{
	"email":     "email",
	"password":  "password",
	"date":      "date",
	"date-time": "datetime-local",
	"datetime":  "datetime-local",
	"time":      "time",
	"uri":       "url",
	"url":       "url",
	"tel":       "tel",
	"phone":     "tel",
	"color":     "color",
	"binary":    "file",
	"textarea":  "textarea",
}

func (i *Inference) registerBuiltins() {
	i.Register("checkbox", 100, func(field model.Field) bool {
		return field.Type == model.FieldTypeBoolean
	})
	i.Register("radio", 90, func(field model.Field) bool {
		n := len(enumValues(field))
		return i.radioThreshold > 0 && n > 0 && n <= i.radioThreshold && field.Type != model.FieldTypeArray
	})
	i.Register("select", 80, func(field model.Field) bool {
		return len(enumValues(field)) > 0
	})
	i.Register("number", 70, func(field model.Field) bool {
		return field.Type == model.FieldTypeInteger || field.Type == model.FieldTypeNumber
	})
	for format, component := range formatComponents {
		format, component := format, component
		i.Register(component, 60, func(field model.Field) bool {
			return field.Type == model.FieldTypeString && strings.EqualFold(field.Format, format)
		})
	}
	i.Register("textarea", 50, func(field model.Field) bool {
		return field.Type == model.FieldTypeString && field.MaxLength != nil && *field.MaxLength > i.textareaThreshold
	})
}

// enumValues returns the field enum, or the item enum for arrays.
func enumValues(field model.Field) []any {
	if len(field.Enum) > 0 {
		return field.Enum
	}
	if field.Type == model.FieldTypeArray && field.Items != nil {
		return field.Items.Enum
	}
	return nil
}
