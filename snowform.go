// Package snowform renders and validates HTML forms from a schema.
//
// Field components, translations and the error behavior come from three
// registries. For every field the most specific layer wins: a per-field
// override, then the app-wide Setup, then the library defaults.
//
//	snowform.Setup(snowform.SetupOptions{
//		Translate: catalog.Func("es"),
//		OnError:   behavior.FocusFirstError(),
//	})
//
//	form, err := snowform.New(schema.Object(
//		schema.Field("email", schema.String().Email()),
//	), snowform.WithOnSubmit(save))
//	http.Handle("/signup", form)
package snowform

import (
	"sync"

	"github.com/goliatone/go-snowform/pkg/components"
	"github.com/goliatone/go-snowform/pkg/model"
	"github.com/goliatone/go-snowform/pkg/registry"
	"github.com/goliatone/go-snowform/pkg/render"
)

// SetupOptions configures the process-wide registries.
type SetupOptions = registry.SetupOptions

// RenderOptions carries per-request render state: values, errors, hidden
// inputs and the behavior adjustments.
type RenderOptions = render.Options

// FieldErrors maps field names to their validation error.
type FieldErrors = model.FieldErrors

// Setup registers app-wide components, translation, messages and the error
// behavior. Later calls add to earlier ones.
func Setup(opts SetupOptions) error {
	return registry.Setup(opts)
}

// Reset clears every process-wide registry.
func Reset() {
	registry.Reset()
}

var (
	defaultLibraryOnce sync.Once
	defaultLibrary     components.Library
	defaultLibraryErr  error
)

// DefaultLibrary returns the built-in components, built once.
func DefaultLibrary() (components.Library, error) {
	defaultLibraryOnce.Do(func() {
		defaultLibrary, defaultLibraryErr = components.Defaults()
	})
	return defaultLibrary, defaultLibraryErr
}
