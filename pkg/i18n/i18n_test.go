package i18n_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-snowform/pkg/i18n"
)

func testCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	files := fstest.MapFS{
		"locales/en.yaml": {Data: []byte(`
submit: Submit
name: Full name
errors:
  summary: "{count} fields need attention"
`)},
		"locales/es.yaml": {Data: []byte(`
submit: Enviar
name: Nombre
errors:
  summary: "Revisa {count} campos"
`)},
		"locales/es-MX.json": {Data: []byte(`{"submit": "Mandar"}`)},
		"locales/README.md":  {Data: []byte("ignored")},
	}
	catalog, err := i18n.LoadFS(files)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return catalog
}

func TestLoadFS(t *testing.T) {
	catalog := testCatalog(t)
	if diff := cmp.Diff([]string{"en", "es", "es-MX"}, catalog.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}

	if _, err := i18n.LoadFS(fstest.MapFS{"bad.yaml": {Data: []byte("a: [")}}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestTranslate(t *testing.T) {
	catalog := testCatalog(t)

	tests := []struct {
		name   string
		locale string
		key    string
		args   []any
		want   string
	}{
		{name: "exact locale", locale: "es", key: "submit", want: "Enviar"},
		{name: "regional override", locale: "es-MX", key: "submit", want: "Mandar"},
		{name: "base language", locale: "es-MX", key: "name", want: "Nombre"},
		{name: "fallback locale", locale: "fr", key: "name", want: "Full name"},
		{name: "map args", locale: "es", key: "errors.summary", args: []any{map[string]any{"count": 3}}, want: "Revisa 3 campos"},
		{name: "pair args", locale: "en", key: "errors.summary", args: []any{"count", 2}, want: "2 fields need attention"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.Translate(tt.locale, tt.key, tt.args...)
			if err != nil {
				t.Fatalf("translate: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}

	if _, err := catalog.Translate("es", "missing"); !errors.Is(err, i18n.ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
}

func TestFunc_PassesThroughMissingKeys(t *testing.T) {
	translate := testCatalog(t).Func("es")
	if got := translate("submit"); got != "Enviar" {
		t.Fatalf("expected Enviar, got %q", got)
	}
	if got := translate("email"); got != "email" {
		t.Fatalf("expected key passthrough, got %q", got)
	}
}

func TestMatch(t *testing.T) {
	catalog := testCatalog(t)
	tests := map[string]string{
		"es-ES,es;q=0.9,en;q=0.5": "es",
		"es-MX":                   "es-MX",
		"de-DE":                   "en",
		"":                        "en",
	}
	for header, want := range tests {
		if got := catalog.Match(header); got != want {
			t.Fatalf("Match(%q): expected %q, got %q", header, want, got)
		}
	}

	custom := i18n.NewCatalog(i18n.WithFallback("es"))
	custom.Add("es", map[string]any{"submit": "Enviar"})
	if got := custom.Match("ja"); got != "es" {
		t.Fatalf("expected configured fallback, got %q", got)
	}
}

func TestMiddleware(t *testing.T) {
	catalog := testCatalog(t)
	var seen string
	handler := i18n.Middleware(catalog, i18n.WithCookie("locale"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = i18n.LocaleFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "es")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "es" {
		t.Fatalf("expected es from header, got %q", seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/?lang=es-MX", nil)
	req.Header.Set("Accept-Language", "en")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "es-MX" {
		t.Fatalf("expected es-MX from query, got %q", seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "locale", Value: "es"})
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "es" {
		t.Fatalf("expected es from cookie, got %q", seen)
	}

	if got := i18n.LocaleFromContext(i18n.WithLocale(context.Background(), "fr")); got != "fr" {
		t.Fatalf("expected fr, got %q", got)
	}
}
