package registry

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-snowform/pkg/model"
)

func stubComponent(marker string) Component {
	return func(w io.Writer, props Props) error {
		_, err := io.WriteString(w, marker+":"+props.Name)
		return err
	}
}

func renderComponent(t *testing.T, component Component, name string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := component(&buf, Props{Name: name}); err != nil {
		t.Fatalf("render component: %v", err)
	}
	return buf.String()
}

func TestBehaviorRegistry_ExecutesRegisteredBehavior(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var gotRef *model.FormRef
	var gotErrs model.FieldErrors
	SetOnErrorBehavior(func(_ context.Context, ref *model.FormRef, errs model.FieldErrors) {
		gotRef = ref
		gotErrs = errs
	})

	ref := model.NewFormRef("signup", []string{"name"})
	errs := model.FieldErrors{"name": {Type: "required", Message: "Required"}}
	ExecuteOnErrorBehavior(context.Background(), ref, errs)

	if gotRef != ref {
		t.Fatalf("behavior received a different form ref")
	}
	if diff := cmp.Diff(errs, gotErrs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestBehaviorRegistry_NoBehaviorIsNoop(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	ExecuteOnErrorBehavior(context.Background(), nil, model.FieldErrors{})
	ExecuteOnErrorBehavior(context.Background(), nil, nil)
}

func TestBehaviorRegistry_Reset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	called := false
	SetOnErrorBehavior(func(context.Context, *model.FormRef, model.FieldErrors) { called = true })
	ResetBehaviorRegistry()
	ExecuteOnErrorBehavior(context.Background(), nil, nil)

	if called {
		t.Fatalf("behavior should not run after reset")
	}
}

func TestComponentRegistry_RegisterAndLookup(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if err := RegisterComponent("text", stubComponent("mock")); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, ok := RegisteredComponent("text")
	if !ok {
		t.Fatalf("expected text component")
	}
	if out := renderComponent(t, got, "email"); out != "mock:email" {
		t.Fatalf("unexpected component output %q", out)
	}

	if _, ok := RegisteredComponent(" TEXT "); !ok {
		t.Fatalf("lookup should normalize the field type")
	}
	if _, ok := RegisteredComponent("unknown-type"); ok {
		t.Fatalf("unregistered type should not resolve")
	}
}

func TestComponentRegistry_RegisterRejectsInvalidInput(t *testing.T) {
	reg := NewComponentRegistry()
	if err := reg.Register("  ", stubComponent("x")); err == nil {
		t.Fatalf("expected error for empty type")
	}
	if err := reg.Register("text", nil); err == nil {
		t.Fatalf("expected error for nil component")
	}
	err := reg.RegisterAll(map[string]Component{"text": stubComponent("x"), "email": nil})
	if err == nil {
		t.Fatalf("expected error for nil component in batch")
	}
	if len(reg.Types()) != 0 {
		t.Fatalf("failed batch must not register anything, got %v", reg.Types())
	}
}

func TestComponentRegistry_SubmitButton(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := RegisteredSubmitButton(); ok {
		t.Fatalf("expected no submit button")
	}

	RegisterSubmitButton(func(w io.Writer, props SubmitButtonProps) error {
		_, err := io.WriteString(w, "<button>"+props.Label+"</button>")
		return err
	})
	button, ok := RegisteredSubmitButton()
	if !ok {
		t.Fatalf("expected submit button")
	}
	var buf bytes.Buffer
	if err := button(&buf, SubmitButtonProps{Label: "Send"}); err != nil {
		t.Fatalf("render button: %v", err)
	}
	if buf.String() != "<button>Send</button>" {
		t.Fatalf("unexpected button output %q", buf.String())
	}
}

func TestComponentRegistry_ClearRemovesEverything(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	_ = RegisterComponent("text", stubComponent("mock"))
	RegisterSubmitButton(func(io.Writer, SubmitButtonProps) error { return nil })
	RegisterFormUI(FormUI{Label: func(io.Writer, LabelProps) error { return nil }})

	ClearRegistry()

	if _, ok := RegisteredComponent("text"); ok {
		t.Fatalf("component survived clear")
	}
	if _, ok := RegisteredSubmitButton(); ok {
		t.Fatalf("submit button survived clear")
	}
	if Default().Components.FormUI().Label != nil {
		t.Fatalf("form ui survived clear")
	}
}

func TestComponentRegistry_FormUIMergesSlots(t *testing.T) {
	reg := NewComponentRegistry()
	reg.RegisterFormUI(FormUI{
		Label: func(w io.Writer, _ LabelProps) error { _, err := io.WriteString(w, "first"); return err },
		ErrorMessage: func(w io.Writer, _ ErrorMessageProps) error {
			_, err := io.WriteString(w, "error")
			return err
		},
	})
	reg.RegisterFormUI(FormUI{
		Label: func(w io.Writer, _ LabelProps) error { _, err := io.WriteString(w, "second"); return err },
	})

	ui := reg.FormUI()
	var buf bytes.Buffer
	_ = ui.Label(&buf, LabelProps{})
	_ = ui.ErrorMessage(&buf, ErrorMessageProps{})
	if buf.String() != "seconderror" {
		t.Fatalf("expected label replaced and error message kept, got %q", buf.String())
	}
	if ui.Description != nil {
		t.Fatalf("description slot should stay empty")
	}
}

func TestComponentRegistry_CloneIsIsolated(t *testing.T) {
	reg := NewComponentRegistry()
	reg.MustRegister("text", stubComponent("a"))
	cloned := reg.Clone()
	cloned.MustRegister("email", stubComponent("b"))

	if diff := cmp.Diff([]string{"text"}, reg.Types()); diff != "" {
		t.Fatalf("source registry mutated (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"email", "text"}, cloned.Types()); diff != "" {
		t.Fatalf("clone types mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslationRegistry(t *testing.T) {
	cases := []struct {
		name  string
		setup func()
		key   string
		want  string
	}{
		{
			name:  "registered function",
			setup: func() { SetTranslationFunction(func(key string) string { return "translated_" + key }) },
			key:   "email",
			want:  "translated_email",
		},
		{
			name:  "passthrough when unset",
			setup: func() {},
			key:   "firstName",
			want:  "firstName",
		},
		{
			name: "reset restores passthrough",
			setup: func() {
				SetTranslationFunction(func(string) string { return "Custom" })
				ResetTranslationRegistry()
			},
			key:  "submit",
			want: "submit",
		},
		{
			name: "custom function",
			setup: func() {
				SetTranslationFunction(func(key string) string {
					if key == "submit" {
						return "Envoyer"
					}
					return key
				})
			},
			key:  "submit",
			want: "Envoyer",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			Reset()
			t.Cleanup(Reset)
			tc.setup()
			if got := T()(tc.key); got != tc.want {
				t.Fatalf("T(%q): want %q, got %q", tc.key, tc.want, got)
			}
		})
	}
}

func TestTranslationRegistry_TracksLaterRegistration(t *testing.T) {
	reg := NewTranslationRegistry()
	translate := reg.T()
	reg.SetFunc(strings.ToUpper)
	if got := translate("submit"); got != "SUBMIT" {
		t.Fatalf("T() should consult the current function, got %q", got)
	}
}

func TestSet_SetupAndReset(t *testing.T) {
	set := NewSet()
	calls := 0
	err := set.Setup(SetupOptions{
		Translate:  func(key string) string { return "t:" + key },
		Components: map[string]Component{"Text": stubComponent("text")},
		FormUI:     FormUI{Description: func(io.Writer, DescriptionProps) error { return nil }},
		SubmitButton: func(io.Writer, SubmitButtonProps) error {
			return nil
		},
		OnError:  func(context.Context, *model.FormRef, model.FieldErrors) { calls++ },
		Messages: map[string]string{"required": "Required", " ": "ignored"},
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	if _, ok := set.Components.Lookup("text"); !ok {
		t.Fatalf("component not registered")
	}
	if _, ok := set.Components.SubmitButton(); !ok {
		t.Fatalf("submit button not registered")
	}
	if set.Components.FormUI().Description == nil {
		t.Fatalf("form ui not registered")
	}
	if got := set.T()("x"); got != "t:x" {
		t.Fatalf("translate not registered, got %q", got)
	}
	if msg, ok := set.Message("required"); !ok || msg != "Required" {
		t.Fatalf("message not registered: %q (ok=%v)", msg, ok)
	}
	set.ExecuteOnError(context.Background(), nil, nil)
	if calls != 1 {
		t.Fatalf("behavior not registered")
	}

	set.Reset()
	if len(set.Components.Types()) != 0 {
		t.Fatalf("components survived reset")
	}
	if got := set.T()("x"); got != "x" {
		t.Fatalf("translations survived reset, got %q", got)
	}
	if _, ok := set.Message("required"); ok {
		t.Fatalf("messages survived reset")
	}
	set.ExecuteOnError(context.Background(), nil, nil)
	if calls != 1 {
		t.Fatalf("behavior survived reset")
	}
}

func TestSet_SetupRejectsNilComponent(t *testing.T) {
	set := NewSet()
	err := set.Setup(SetupOptions{Components: map[string]Component{"text": nil}})
	if err == nil {
		t.Fatalf("expected setup error")
	}
}

func TestSetup_DefaultSet(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	calls := 0
	err := Setup(SetupOptions{
		Translate:  func(key string) string { return "t:" + key },
		Components: map[string]Component{"email": stubComponent("email")},
		OnError:    func(context.Context, *model.FormRef, model.FieldErrors) { calls++ },
		Messages:   map[string]string{"required": "Needed"},
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	RegisterFormUI(FormUI{Label: func(io.Writer, LabelProps) error { return nil }})

	component, ok := RegisteredComponent("email")
	if !ok {
		t.Fatalf("component not registered on the default set")
	}
	if got := renderComponent(t, component, "work"); got != "email:work" {
		t.Fatalf("unexpected component output %q", got)
	}
	if Default().Components.FormUI().Label == nil {
		t.Fatalf("form ui not registered on the default set")
	}
	if got := T()("submit"); got != "t:submit" {
		t.Fatalf("translate not registered, got %q", got)
	}
	if msg, ok := Default().Message("required"); !ok || msg != "Needed" {
		t.Fatalf("message not registered: %q (ok=%v)", msg, ok)
	}
	ExecuteOnErrorBehavior(context.Background(), nil, nil)
	if calls != 1 {
		t.Fatalf("expected behavior to run once, got %d", calls)
	}

	// later calls add to earlier ones
	if err := Setup(SetupOptions{Components: map[string]Component{"text": stubComponent("text")}}); err != nil {
		t.Fatalf("second setup: %v", err)
	}
	if diff := cmp.Diff([]string{"email", "text"}, Default().Components.Types()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}

	Reset()
	if _, ok := RegisteredComponent("email"); ok {
		t.Fatalf("component survived reset")
	}
	if Default().Components.FormUI().Label != nil {
		t.Fatalf("form ui survived reset")
	}
	if got := T()("submit"); got != "submit" {
		t.Fatalf("expected key passthrough after reset, got %q", got)
	}
	if _, ok := Default().Message("required"); ok {
		t.Fatalf("message survived reset")
	}
	ExecuteOnErrorBehavior(context.Background(), nil, nil)
	if calls != 1 {
		t.Fatalf("behavior survived reset")
	}
}
