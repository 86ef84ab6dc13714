// Package registry holds the three process-wide registries forms consult at
// render time:
//
//   - ComponentRegistry: which component renders which field type, plus the
//     submit button and the label/description/error message slots.
//   - TranslationRegistry: the function that localizes keys. With nothing
//     registered keys are returned unchanged.
//   - BehaviorRegistry: what runs when a submission fails validation.
//
// A Set bundles the three. Applications normally call Setup once at startup:
//
//	registry.Setup(registry.SetupOptions{
//		Translate:    catalog.Func("en"),
//		Components:   lib.Components,
//		FormUI:       lib.FormUI,
//		SubmitButton: lib.SubmitButton,
//		OnError:      behavior.FocusFirstError(),
//	})
//
// Every registry is safe for concurrent use; the package-level functions act
// on the Set returned by Default.
package registry
