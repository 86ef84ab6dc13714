package overrides_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-snowform/pkg/model"
	"github.com/goliatone/go-snowform/pkg/overrides"
	"github.com/goliatone/go-snowform/pkg/resolve"
)

func TestLoadFS(t *testing.T) {
	files := fstest.MapFS{
		"forms/signup.yaml": {Data: []byte(`
forms:
  signup:
    submitLabel: Create account
    fields:
      email:
        label: Work email
        placeholder: you@company.com
        messages:
          pattern: Use your work address
      plan:
        type: Radio
        options:
          - value: free
            label: Free
          - value: pro
            label: Pro
            disabled: true
`)},
		"forms/contact.json": {Data: []byte(`{"forms": {"contact": {"fields": {"message": {"type": "textarea", "attrs": {"rows": "6"}, "hidden": false}}}}}`)},
		"forms/notes.txt":    {Data: []byte("ignored")},
	}

	store, err := overrides.LoadFS(files)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"contact", "signup"}, store.Forms()); diff != "" {
		t.Fatalf("forms mismatch (-want +got):\n%s", diff)
	}

	signup, ok := store.Form("signup")
	if !ok {
		t.Fatalf("signup form missing")
	}
	want := overrides.Form{
		SubmitLabel: "Create account",
		Fields: resolve.Overrides{
			"email": {
				Label:       "Work email",
				Placeholder: "you@company.com",
				Messages:    map[string]string{"pattern": "Use your work address"},
			},
			"plan": {
				Type: "radio",
				Options: []model.FieldOption{
					{Value: "free", Label: "Free"},
					{Value: "pro", Label: "Pro", Disabled: true},
				},
			},
		},
	}
	if diff := cmp.Diff(want, signup); diff != "" {
		t.Fatalf("signup overrides mismatch (-want +got):\n%s", diff)
	}

	contact := store.Overrides("contact")
	if contact["message"].Type != "textarea" || contact["message"].Attrs["rows"] != "6" {
		t.Fatalf("contact overrides not parsed: %#v", contact)
	}
	if store.Overrides("missing") != nil {
		t.Fatalf("expected nil overrides for unknown form")
	}
}

func TestLoadFS_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files fstest.MapFS
		want  string
	}{
		{
			name: "duplicate form",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("forms:\n  signup:\n    submitLabel: A\n")},
				"b.yaml": {Data: []byte("forms:\n  signup:\n    submitLabel: B\n")},
			},
			want: `duplicate form "signup"`,
		},
		{
			name:  "empty file",
			files: fstest.MapFS{"a.yaml": {Data: []byte("  \n")}},
			want:  "is empty",
		},
		{
			name:  "invalid yaml",
			files: fstest.MapFS{"a.yaml": {Data: []byte("forms: [")}},
			want:  "parse a.yaml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := overrides.LoadFS(tt.files)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFS_Nil(t *testing.T) {
	store, err := overrides.LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}
