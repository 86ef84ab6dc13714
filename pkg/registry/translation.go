package registry

import "sync"

// TranslationRegistry holds the function used to localize keys.
type TranslationRegistry struct {
	mu sync.RWMutex
	fn TranslationFunc
}

// NewTranslationRegistry creates a registry that returns keys unchanged.
func NewTranslationRegistry() *TranslationRegistry {
	return &TranslationRegistry{}
}

// SetFunc registers the translation function. A nil function restores key
// passthrough.
func (r *TranslationRegistry) SetFunc(fn TranslationFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fn = fn
}

// T returns a translate function bound to the registry. The returned function
// always consults the currently registered function and returns key as-is
// when none is registered.
func (r *TranslationRegistry) T() TranslationFunc {
	return r.translate
}

// Translate localizes key with the registered function.
func (r *TranslationRegistry) Translate(key string) string {
	return r.translate(key)
}

func (r *TranslationRegistry) translate(key string) string {
	r.mu.RLock()
	fn := r.fn
	r.mu.RUnlock()
	if fn == nil {
		return key
	}
	return fn(key)
}

// Reset restores key passthrough.
func (r *TranslationRegistry) Reset() {
	r.SetFunc(nil)
}
