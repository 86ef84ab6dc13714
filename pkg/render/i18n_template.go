package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-snowform/pkg/registry"
)

// ErrMissingTranslator is passed to the missing handler when no translator
// was configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a key for a locale. *i18n.Catalog satisfies it.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler returns the text used when a key has no
// translation.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, _ []any, _ error) string {
	return key
}

type funcTranslator registry.TranslationFunc

func (fn funcTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	return fn(key), nil
}

// FromTranslationFunc adapts a locale-unaware translate function.
func FromTranslationFunc(fn registry.TranslationFunc) Translator {
	if fn == nil {
		return nil
	}
	return funcTranslator(fn)
}

// TemplateI18nConfig configures the layout template translation helpers.
type TemplateI18nConfig struct {
	// LocaleKey is read when the locale argument is a map. Defaults to
	// "locale".
	LocaleKey string
	// FuncName renames the translate helper.
	FuncName string
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns layout template helpers for WithTemplateFuncs:
//
//	{{ translate(locale, "signup.intro", "name", user) }}
//	{{ current_locale(page) }}
//
// The locale argument is a string, a map holding it under LocaleKey, or a
// value with a Locale() string method.
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	localeKey := strings.TrimSpace(cfg.LocaleKey)
	if localeKey == "" {
		localeKey = "locale"
	}
	name := strings.TrimSpace(cfg.FuncName)
	if name == "" {
		name = "translate"
	}
	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	return map[string]any{
		name: func(src any, key string, params ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			locale := localeOf(src, localeKey)
			if t == nil {
				return onMissing(locale, key, params, ErrMissingTranslator)
			}
			msg, err := t.Translate(locale, key, params...)
			if err != nil || strings.TrimSpace(msg) == "" {
				return onMissing(locale, key, params, err)
			}
			return msg
		},
		"current_locale": func(src any) string {
			return localeOf(src, localeKey)
		},
	}
}

type localer interface {
	Locale() string
}

func localeOf(src any, key string) string {
	switch v := src.(type) {
	case nil:
		return ""
	case string:
		return v
	case localer:
		return v.Locale()
	case map[string]string:
		return v[key]
	case map[string]any:
		if value, ok := v[key]; ok && value != nil {
			return strings.TrimSpace(fmt.Sprint(value))
		}
	}
	return ""
}
