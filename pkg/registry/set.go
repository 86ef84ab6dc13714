package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-snowform/pkg/model"
)

// SetupOptions is the app-wide configuration applied by Setup. Nil or empty
// entries leave the current registration untouched.
type SetupOptions struct {
	Translate    TranslationFunc
	Components   map[string]Component
	FormUI       FormUI
	SubmitButton SubmitButton
	OnError      ErrorBehavior
	// Messages are app-wide default validation messages keyed by error type
	// (required, minLength, pattern, ...).
	Messages map[string]string
}

// Set bundles the component, translation and behavior registries together
// with the app-wide validation messages.
type Set struct {
	Components   *ComponentRegistry
	Translations *TranslationRegistry
	Behaviors    *BehaviorRegistry

	mu       sync.RWMutex
	messages map[string]string
}

// NewSet creates a Set with empty registries.
func NewSet() *Set {
	return &Set{
		Components:   NewComponentRegistry(),
		Translations: NewTranslationRegistry(),
		Behaviors:    NewBehaviorRegistry(),
	}
}

// Setup applies opts to the registries.
func (s *Set) Setup(opts SetupOptions) error {
	if len(opts.Components) > 0 {
		if err := s.Components.RegisterAll(opts.Components); err != nil {
			return fmt.Errorf("registry: setup components: %w", err)
		}
	}
	s.Components.RegisterFormUI(opts.FormUI)
	if opts.SubmitButton != nil {
		s.Components.RegisterSubmitButton(opts.SubmitButton)
	}
	if opts.Translate != nil {
		s.Translations.SetFunc(opts.Translate)
	}
	if opts.OnError != nil {
		s.Behaviors.SetOnError(opts.OnError)
	}
	if len(opts.Messages) > 0 {
		s.mu.Lock()
		if s.messages == nil {
			s.messages = make(map[string]string, len(opts.Messages))
		}
		for kind, message := range opts.Messages {
			if kind = strings.TrimSpace(kind); kind != "" {
				s.messages[kind] = message
			}
		}
		s.mu.Unlock()
	}
	return nil
}

// Message returns the app-wide validation message for the error type.
func (s *Set) Message(kind string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	message, ok := s.messages[kind]
	return message, ok && strings.TrimSpace(message) != ""
}

// T returns the translate function of the set.
func (s *Set) T() TranslationFunc {
	return s.Translations.T()
}

// ExecuteOnError runs the registered validation failure behavior.
func (s *Set) ExecuteOnError(ctx context.Context, ref *model.FormRef, errs model.FieldErrors) {
	s.Behaviors.Execute(ctx, ref, errs)
}

// Reset clears every registry and the app-wide messages.
func (s *Set) Reset() {
	s.Components.Clear()
	s.Translations.Reset()
	s.Behaviors.Reset()
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()
}
