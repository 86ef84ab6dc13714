package components

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// PartialsFromSelection derives partial overrides from a theme selection.
// Base manifest templates apply first and the selected variant wins.
func PartialsFromSelection(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	out := map[string]string{}
	for key, path := range selection.Manifest.Templates {
		if strings.HasPrefix(key, "forms.") && strings.TrimSpace(path) != "" {
			out[key] = path
		}
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, path := range variant.Templates {
			if strings.HasPrefix(key, "forms.") && strings.TrimSpace(path) != "" {
				out[key] = path
			}
		}
	}
	return out
}

// CSSVarsFromSelection converts theme tokens into CSS custom properties,
// variant tokens overriding the base ones.
func CSSVarsFromSelection(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	out := map[string]string{}
	for key, value := range selection.Manifest.Tokens {
		out[cssVarName(key)] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			out[cssVarName(key)] = value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// WithTheme applies the partials and tokens of a theme selection.
func WithTheme(selection *theme.Selection) Option {
	return func(o *options) {
		WithPartials(PartialsFromSelection(selection))(o)
		if vars := CSSVarsFromSelection(selection); len(vars) > 0 {
			o.cssVars = vars
		}
	}
}

// SelectTheme resolves name and variant through selector and returns an
// option applying the selection.
func SelectTheme(selector theme.ThemeSelector, name, variant string) (Option, error) {
	if selector == nil {
		return nil, fmt.Errorf("components: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("components: select theme %q: %w", name, err)
	}
	return WithTheme(selection), nil
}

func cssVarName(token string) string {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, "--") {
		return token
	}
	return "--" + strings.ReplaceAll(token, ".", "-")
}
