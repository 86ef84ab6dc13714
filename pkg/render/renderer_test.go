package render_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/goliatone/go-snowform/pkg/components"
	"github.com/goliatone/go-snowform/pkg/model"
	"github.com/goliatone/go-snowform/pkg/registry"
	"github.com/goliatone/go-snowform/pkg/render"
	"github.com/goliatone/go-snowform/pkg/resolve"
	"github.com/goliatone/go-snowform/pkg/schema"
	"github.com/goliatone/go-snowform/pkg/testsupport"
)

func signupSchema() *schema.Schema {
	return schema.Object(
		schema.Field("name", schema.String().Min(2)),
		schema.Field("email", schema.String().Email().Placeholder("you@example.com")),
		schema.Field("plan", schema.Enum("free", "pro").Default("free")),
		schema.Field("terms", schema.Boolean().MustBeTrue("Accept the terms").Optional()),
	)
}

func newRenderer(t *testing.T, set *registry.Set, opts ...render.Option) *render.Renderer {
	t.Helper()
	if set == nil {
		set = registry.NewSet()
	}
	resolver := resolve.New(components.MustDefaults(), set)
	renderer, err := render.NewRenderer(resolver, opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func signupForm() render.Form {
	return render.Form{ID: "signup", Action: "/signup", Schema: signupSchema()}
}

func TestRender_AutoMode(t *testing.T) {
	renderer := newRenderer(t, nil)

	out, err := renderer.Render(testsupport.Context(), signupForm(), render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	markup := string(out)

	testsupport.AssertContains(t, markup,
		`<form action="/signup" class="snowform" id="signup" method="post" novalidate>`,
		`<div class="snowform-field" data-field="name" data-type="text">`,
		`<label for="signup-name" class="snowform-label">Name<span class="snowform-required" aria-hidden="true">*</span></label>`,
		`data-type="email"`,
		`placeholder="you@example.com"`,
		`data-type="select"`,
		`<option value="free" selected>`,
		`data-type="checkbox"`,
		`>Submit</button>`,
	)
	if !strings.HasSuffix(markup, "</form>") {
		t.Fatalf("expected closing form tag, got %q", markup)
	}

	order := []string{`data-field="name"`, `data-field="email"`, `data-field="plan"`, `data-field="terms"`, `class="snowform-submit"`}
	last := -1
	for _, fragment := range order {
		idx := strings.Index(markup, fragment)
		if idx <= last {
			t.Fatalf("expected %q after position %d, found at %d", fragment, last, idx)
		}
		last = idx
	}
}

func TestRender_FieldErrors(t *testing.T) {
	renderer := newRenderer(t, nil)

	out, err := renderer.Render(context.Background(), signupForm(), render.Options{
		Values: map[string]any{"email": "nope"},
		Errors: model.FieldErrors{
			"email": {Type: "pattern", Message: "does not match"},
			"terms": {Type: "enum", Message: "value is not one of the allowed values"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	markup := string(out)

	testsupport.AssertContains(t, markup,
		`<div class="snowform-field" data-field="email" data-invalid="true" data-type="email">`,
		`aria-describedby="signup-email-error"`,
		`aria-invalid="true"`,
		`value="nope"`,
		`<p id="signup-email-error" class="snowform-error" role="alert">Invalid format</p>`,
		`<p id="signup-terms-error" class="snowform-error" role="alert">Accept the terms</p>`,
	)
	testsupport.AssertNotContains(t, markup, `signup-name-error`)
}

func TestRender_OverridesAndRegistry(t *testing.T) {
	set := registry.NewSet()
	if err := set.Components.Register("email", func(w io.Writer, props registry.Props) error {
		_, err := fmt.Fprintf(w, `<x-email name="%s"></x-email>`, props.Name)
		return err
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	renderer := newRenderer(t, set)

	form := signupForm()
	form.Overrides = resolve.Overrides{
		"name": {
			Label:       "Your name",
			Description: "As on your passport",
			Attrs:       map[string]string{"autocomplete": "name"},
		},
		"plan": {Hidden: true},
		"terms": {Render: func(w io.Writer, props registry.Props) error {
			_, err := io.WriteString(w, "<custom-terms>")
			return err
		}},
	}

	out, err := renderer.Render(context.Background(), form, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	markup := string(out)

	testsupport.AssertContains(t, markup,
		`>Your name<span`,
		`autocomplete="name"`,
		`aria-describedby="signup-name-description"`,
		`<p id="signup-name-description" class="snowform-description">As on your passport</p>`,
		`<x-email name="email"></x-email>`,
		`<input name="plan" type="hidden" value="free">`,
		`<custom-terms>`,
	)
	testsupport.AssertNotContains(t, markup, `data-field="plan"`)
}

func TestRender_Translation(t *testing.T) {
	set := registry.NewSet()
	dictionary := map[string]string{"name": "Nombre", "submit": "Enviar", "Required": "Obligatorio"}
	if err := set.Setup(registry.SetupOptions{Translate: func(key string) string {
		if value, ok := dictionary[key]; ok {
			return value
		}
		return key
	}}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	renderer := newRenderer(t, set)

	out, err := renderer.Render(context.Background(), signupForm(), render.Options{
		Errors: model.FieldErrors{"name": {Type: "required", Message: "property \"name\" is missing"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertContains(t, string(out),
		`>Nombre<span`,
		`role="alert">Obligatorio</p>`,
		`>Enviar</button>`,
	)
}

func TestRender_HiddenMethodAndFormErrors(t *testing.T) {
	renderer := newRenderer(t, nil)
	ref := model.NewFormRef("signup", []string{"name", "email"})
	ref.AddNotice("Check the highlighted fields")

	form := signupForm()
	form.Method = "put"

	out, err := renderer.Render(context.Background(), form, render.Options{
		Hidden:     render.MergeHiddenFields(nil, render.CSRFToken("_csrf", "tok")),
		FormErrors: []string{"Server unavailable"},
		Errors:     model.FieldErrors{schema.FormErrorKey: {Type: "invalid", Message: "Payload rejected"}},
		Ref:        ref,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertContains(t, string(out),
		`method="post"`,
		`<input name="_method" type="hidden" value="PUT">`,
		`<input name="_csrf" type="hidden" value="tok">`,
		`<div class="snowform-form-errors" role="alert"><ul><li>Server unavailable</li><li>Payload rejected</li><li>Check the highlighted fields</li></ul></div>`,
	)
}

func TestRender_RefFocusAndLoading(t *testing.T) {
	renderer := newRenderer(t, nil)
	ref := model.NewFormRef("signup", []string{"name", "email"})
	ref.Focus("email")
	ref.SetFieldAttr("email", "data-first-error", "true")

	out, err := renderer.Render(context.Background(), signupForm(), render.Options{
		Errors:  model.FieldErrors{"email": {Type: "required"}},
		Ref:     ref,
		Loading: true,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	markup := string(out)
	testsupport.AssertContains(t, markup,
		`aria-busy="true" class="snowform"`,
		`data-first-error="true" data-invalid="true"`,
		` autofocus`,
		` disabled`,
		`<span class="snowform-spinner" aria-hidden="true"></span>`,
	)
	if strings.Count(markup, " autofocus") != 1 {
		t.Fatalf("expected a single autofocus attribute, got %q", markup)
	}
}

func TestRender_DebugAndCSSVars(t *testing.T) {
	library := components.MustDefaults()
	library.CSSVars = map[string]string{"--snowform-accent": "#0a58ca"}
	renderer, err := render.NewRenderer(resolve.New(library, registry.NewSet()))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.Render(context.Background(), signupForm(), render.Options{
		Values: map[string]any{"name": "<Ada>"},
		Debug:  true,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertContains(t, string(out),
		`style="--snowform-accent: #0a58ca"`,
		`<pre class="snowform-debug">`,
		`&#34;name&#34;: &#34;\u003cAda\u003e&#34;`,
		`value="&lt;Ada&gt;"`,
	)
}

func TestRender_Errors(t *testing.T) {
	renderer := newRenderer(t, nil)

	if _, err := renderer.Render(context.Background(), render.Form{}, render.Options{}); !errors.Is(err, schema.ErrSchemaRequired) {
		t.Fatalf("expected ErrSchemaRequired, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, signupForm(), render.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if _, err := render.NewRenderer(nil); err == nil {
		t.Fatalf("expected error for nil resolver")
	}
}

func TestLayout_Func(t *testing.T) {
	renderer := newRenderer(t, nil)

	out, err := renderer.Layout(context.Background(), signupForm(), render.Options{}, func(w io.Writer, l *render.Layout) error {
		email, err := l.Field("email")
		if err != nil {
			return err
		}
		submit, err := l.SubmitButton(registry.SubmitButtonProps{Label: "Join", Class: "wide"})
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, `<section>`+email+submit+`</section>`)
		return err
	})
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	markup := string(out)
	testsupport.AssertContains(t, markup,
		`<section><div class="snowform-field" data-field="email"`,
		`class="snowform-submit wide"`,
		`>Join</button>`,
		"</section></form>",
	)
	testsupport.AssertNotContains(t, markup, `data-field="name"`)
}

func TestLayout_UnknownField(t *testing.T) {
	renderer := newRenderer(t, nil)

	_, err := renderer.Layout(context.Background(), signupForm(), render.Options{}, func(w io.Writer, l *render.Layout) error {
		_, err := l.Field("missing")
		return err
	})
	if !errors.Is(err, render.ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
}

type stubTranslator map[string]string

func (s stubTranslator) Translate(locale, key string, _ ...any) (string, error) {
	if value, ok := s[locale+"."+key]; ok {
		return value, nil
	}
	return "", errors.New("missing")
}

func TestLayout_Template(t *testing.T) {
	funcs := render.TemplateI18nFuncs(stubTranslator{"es.join": "Únete"}, render.TemplateI18nConfig{})
	renderer := newRenderer(t, nil, render.WithTemplateFuncs(funcs))

	out, err := renderer.Layout(context.Background(), signupForm(), render.Options{
		FormErrors: []string{"Try again"},
	}, func(w io.Writer, l *render.Layout) error {
		markup, err := l.Template(`<h2>{{ translate("es", "join") }}</h2>{{ formErrors }}<div class="grid">{{ fields.name }}{{ fields.email }}</div>{{ submit }}`)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, markup)
		return err
	})
	if err != nil {
		t.Fatalf("layout template: %v", err)
	}
	markup := string(out)
	testsupport.AssertContains(t, markup,
		`<h2>Únete</h2>`,
		`<li>Try again</li>`,
		`<div class="grid"><div class="snowform-field" data-field="name"`,
		`>Submit</button>`,
	)
	testsupport.AssertNotContains(t, markup, `&lt;div`, `data-field="plan"`)
}

func TestTemplateI18nFuncs_Missing(t *testing.T) {
	funcs := render.TemplateI18nFuncs(nil, render.TemplateI18nConfig{FuncName: "tr"})
	tr, ok := funcs["tr"].(func(any, string, ...any) string)
	if !ok {
		t.Fatalf("expected tr helper, got %T", funcs["tr"])
	}
	if got := tr(map[string]any{"locale": "fr"}, "hello"); got != "hello" {
		t.Fatalf("expected key passthrough, got %q", got)
	}

	funcs = render.TemplateI18nFuncs(render.FromTranslationFunc(strings.ToUpper), render.TemplateI18nConfig{})
	translate := funcs["translate"].(func(any, string, ...any) string)
	if got := translate("en", "hello"); got != "HELLO" {
		t.Fatalf("expected translated value, got %q", got)
	}
	current := funcs["current_locale"].(func(any) string)
	tests := []struct {
		src  any
		want string
	}{
		{src: "pt-BR", want: "pt-BR"},
		{src: map[string]string{"locale": "de"}, want: "de"},
		{src: pageLocale("es"), want: "es"},
		{src: struct{ Locale string }{Locale: "es"}, want: ""},
		{src: nil, want: ""},
	}
	for _, tt := range tests {
		if got := current(tt.src); got != tt.want {
			t.Fatalf("current_locale(%v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

type pageLocale string

func (p pageLocale) Locale() string { return string(p) }
