package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeKey struct{}

// WithLocale stores locale on ctx.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// LocaleFromContext returns the locale stored by WithLocale or Middleware.
func LocaleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	locale, _ := ctx.Value(localeKey{}).(string)
	return locale
}

// Match picks the loaded locale that best serves an Accept-Language header.
// The fallback wins when nothing matches.
func (c *Catalog) Match(acceptLanguage string) string {
	locales := c.supported()
	tags := make([]language.Tag, 0, len(locales))
	for _, locale := range locales {
		tags = append(tags, language.Make(locale))
	}

	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return c.fallback
	}
	_, index, confidence := language.NewMatcher(tags).Match(desired...)
	if confidence == language.No {
		return c.fallback
	}
	return locales[index]
}

// supported lists the fallback first so the matcher uses it as default.
func (c *Catalog) supported() []string {
	locales := []string{c.fallback}
	for _, locale := range c.Locales() {
		if locale != c.fallback {
			locales = append(locales, locale)
		}
	}
	return locales
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	queryParam string
	cookie     string
}

// WithQueryParam lets a query parameter pick the locale. Defaults to "lang".
func WithQueryParam(name string) MiddlewareOption {
	return func(cfg *middlewareConfig) {
		cfg.queryParam = strings.TrimSpace(name)
	}
}

// WithCookie lets a cookie pick the locale when no query parameter is set.
func WithCookie(name string) MiddlewareOption {
	return func(cfg *middlewareConfig) {
		cfg.cookie = strings.TrimSpace(name)
	}
}

// Middleware stores the negotiated locale on the request context: query
// parameter, then cookie, then Accept-Language.
func Middleware(c *Catalog, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{queryParam: "lang"}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := ""
			if cfg.queryParam != "" {
				if requested := r.URL.Query().Get(cfg.queryParam); requested != "" {
					locale = c.Match(requested)
				}
			}
			if locale == "" && cfg.cookie != "" {
				if cookie, err := r.Cookie(cfg.cookie); err == nil && cookie.Value != "" {
					locale = c.Match(cookie.Value)
				}
			}
			if locale == "" {
				locale = c.Match(r.Header.Get("Accept-Language"))
			}
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), locale)))
		})
	}
}
