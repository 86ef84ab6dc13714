package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ComponentRegistry tracks components keyed by field type together with the
// submit button and the form UI slots. Registering a type again replaces the
// previous component.
type ComponentRegistry struct {
	mu         sync.RWMutex
	components map[string]Component
	submit     SubmitButton
	ui         FormUI
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		components: make(map[string]Component),
	}
}

// Register associates a component with the field type.
func (r *ComponentRegistry) Register(fieldType string, component Component) error {
	if fieldType = normalize(fieldType); fieldType == "" {
		return fmt.Errorf("registry: field type is required")
	}
	if component == nil {
		return fmt.Errorf("registry: component for %q is nil", fieldType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[fieldType] = component
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *ComponentRegistry) MustRegister(fieldType string, component Component) {
	if err := r.Register(fieldType, component); err != nil {
		panic(err)
	}
}

// RegisterAll registers every entry of components. Entries are validated
// before any of them is applied.
func (r *ComponentRegistry) RegisterAll(components map[string]Component) error {
	for fieldType, component := range components {
		if normalize(fieldType) == "" {
			return fmt.Errorf("registry: field type is required")
		}
		if component == nil {
			return fmt.Errorf("registry: component for %q is nil", normalize(fieldType))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for fieldType, component := range components {
		r.components[normalize(fieldType)] = component
	}
	return nil
}

// Lookup returns the component registered for the field type.
func (r *ComponentRegistry) Lookup(fieldType string) (Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	component, ok := r.components[normalize(fieldType)]
	return component, ok
}

// Types returns the registered field types sorted.
func (r *ComponentRegistry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.components))
	for name := range r.components {
		types = append(types, name)
	}
	slices.Sort(types)
	return types
}

// RegisterSubmitButton sets the submit button. A nil button unregisters it.
func (r *ComponentRegistry) RegisterSubmitButton(button SubmitButton) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submit = button
}

// SubmitButton returns the registered submit button.
func (r *ComponentRegistry) SubmitButton() (SubmitButton, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.submit, r.submit != nil
}

// RegisterFormUI replaces the non-nil slots of ui, keeping the others.
func (r *ComponentRegistry) RegisterFormUI(ui FormUI) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ui = ui.Merge(r.ui)
}

// FormUI returns the registered form UI slots.
func (r *ComponentRegistry) FormUI() FormUI {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ui
}

// Clear removes every component, the submit button and the form UI.
func (r *ComponentRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components = make(map[string]Component)
	r.submit = nil
	r.ui = FormUI{}
}

// Clone returns a copy of the registry to allow isolated mutations.
func (r *ComponentRegistry) Clone() *ComponentRegistry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := NewComponentRegistry()
	for name, component := range r.components {
		cloned.components[name] = component
	}
	cloned.submit = r.submit
	cloned.ui = r.ui
	return cloned
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
