package registry

import (
	"context"

	"github.com/goliatone/go-snowform/pkg/model"
)

var defaultSet = NewSet()

// Default returns the process-wide Set used by the package-level functions.
func Default() *Set {
	return defaultSet
}

// Setup applies opts to the default Set.
func Setup(opts SetupOptions) error {
	return defaultSet.Setup(opts)
}

// Reset clears the default Set.
func Reset() {
	defaultSet.Reset()
}

// RegisterComponent registers a component for the field type on the default Set.
func RegisterComponent(fieldType string, component Component) error {
	return defaultSet.Components.Register(fieldType, component)
}

// RegisteredComponent returns the component registered for the field type.
func RegisteredComponent(fieldType string) (Component, bool) {
	return defaultSet.Components.Lookup(fieldType)
}

// RegisterSubmitButton registers the submit button on the default Set.
func RegisterSubmitButton(button SubmitButton) {
	defaultSet.Components.RegisterSubmitButton(button)
}

// RegisteredSubmitButton returns the registered submit button.
func RegisteredSubmitButton() (SubmitButton, bool) {
	return defaultSet.Components.SubmitButton()
}

// RegisterFormUI registers form UI slots on the default Set.
func RegisterFormUI(ui FormUI) {
	defaultSet.Components.RegisterFormUI(ui)
}

// ClearRegistry removes every component, the submit button and the form UI.
func ClearRegistry() {
	defaultSet.Components.Clear()
}

// SetTranslationFunction registers the translation function.
func SetTranslationFunction(fn TranslationFunc) {
	defaultSet.Translations.SetFunc(fn)
}

// T returns the translate function of the default Set.
func T() TranslationFunc {
	return defaultSet.Translations.T()
}

// ResetTranslationRegistry restores key passthrough.
func ResetTranslationRegistry() {
	defaultSet.Translations.Reset()
}

// SetOnErrorBehavior registers the validation failure behavior.
func SetOnErrorBehavior(fn ErrorBehavior) {
	defaultSet.Behaviors.SetOnError(fn)
}

// ExecuteOnErrorBehavior runs the registered validation failure behavior.
func ExecuteOnErrorBehavior(ctx context.Context, ref *model.FormRef, errs model.FieldErrors) {
	defaultSet.Behaviors.Execute(ctx, ref, errs)
}

// ResetBehaviorRegistry removes the registered behavior.
func ResetBehaviorRegistry() {
	defaultSet.Behaviors.Reset()
}
