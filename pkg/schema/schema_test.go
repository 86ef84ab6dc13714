package schema

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-snowform/pkg/model"
)

func signupSchema() *Schema {
	return Object(
		Field("name", String().Min(2, "Name is too short").Title("Full name")),
		Field("email", String().Email("Enter a valid email").Placeholder("you@example.com")),
		Field("age", Integer().Min(18).Optional()),
		Field("plan", Enum("free", "pro").Optional()),
		Field("terms", Boolean().MustBeTrue("Accept the terms").Required("You must accept")),
		Field("tags", Array(String()).Optional()),
	)
}

func TestObject_FieldsFollowDeclarationOrder(t *testing.T) {
	s := signupSchema()

	want := []string{"name", "email", "age", "plan", "terms", "tags"}
	if diff := cmp.Diff(want, s.Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	name, ok := s.Field("name")
	if !ok {
		t.Fatalf("expected name field")
	}
	if !name.Required || name.Title != "Full name" || name.Type != model.FieldTypeString {
		t.Fatalf("unexpected name field: %+v", name)
	}
	rule, ok := name.Rule(model.ValidationRuleMinLength)
	if !ok || rule.Message != "Name is too short" || rule.Params["value"] != "2" {
		t.Fatalf("unexpected minLength rule: %+v", rule)
	}

	email, _ := s.Field("email")
	if email.Format != "email" || email.Placeholder != "you@example.com" {
		t.Fatalf("unexpected email field: %+v", email)
	}
	if rule, _ := email.Rule(model.ValidationRulePattern); rule.Message != "Enter a valid email" {
		t.Fatalf("expected pattern message, got %+v", rule)
	}

	age, _ := s.Field("age")
	if age.Required || age.Type != model.FieldTypeInteger {
		t.Fatalf("unexpected age field: %+v", age)
	}
	terms, _ := s.Field("terms")
	if rule, _ := terms.Rule(model.ValidationRuleRequired); rule.Message != "You must accept" {
		t.Fatalf("expected required message, got %+v", rule)
	}
	tags, _ := s.Field("tags")
	if tags.Items == nil || tags.Items.Type != model.FieldTypeString {
		t.Fatalf("expected string items, got %+v", tags.Items)
	}
}

func TestObject_RepeatedNameKeepsPosition(t *testing.T) {
	s := Object(
		Field("a", String()),
		Field("b", String()),
		Field("a", Integer().Optional()),
	)
	if diff := cmp.Diff([]string{"a", "b"}, s.Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	a, _ := s.Field("a")
	if a.Type != model.FieldTypeInteger || a.Required {
		t.Fatalf("expected replacement field, got %+v", a)
	}
}

func TestCoerce(t *testing.T) {
	s := signupSchema()

	got := s.Coerce(url.Values{
		"name":  {"Ada"},
		"email": {""},
		"age":   {"42"},
		"terms": {"false", "true"},
		"tags":  {"go", "", "forms"},
		"csrf":  {"token"},
	})
	want := map[string]any{
		"name":  "Ada",
		"age":   float64(42),
		"terms": true,
		"tags":  []any{"go", "forms"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("coerce mismatch (-want +got):\n%s", diff)
	}

	single := s.Coerce(url.Values{"tags": {"a, b"}, "age": {"old"}})
	if diff := cmp.Diff([]any{"a", "b"}, single["tags"]); diff != "" {
		t.Fatalf("comma list mismatch (-want +got):\n%s", diff)
	}
	if single["age"] != "old" {
		t.Fatalf("expected unparsable number kept as string, got %#v", single["age"])
	}
}

func TestValidate(t *testing.T) {
	s := signupSchema()
	ctx := context.Background()

	tests := []struct {
		name   string
		values map[string]any
		want   map[string]string
	}{
		{
			name:   "valid",
			values: map[string]any{"name": "Ada", "email": "ada@example.com", "terms": true, "age": 36},
			want:   nil,
		},
		{
			name:   "missing required",
			values: map[string]any{},
			want:   map[string]string{"name": "required", "email": "required", "terms": "required"},
		},
		{
			name:   "rule failures",
			values: map[string]any{"name": "A", "email": "nope", "terms": false, "age": 12, "plan": "gold"},
			want: map[string]string{
				"name":  "minLength",
				"email": "pattern",
				"terms": "enum",
				"age":   "minimum",
				"plan":  "enum",
			},
		},
		{
			name:   "type mismatch",
			values: map[string]any{"name": "Ada", "email": "ada@example.com", "terms": true, "age": "old"},
			want:   map[string]string{"age": "type"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := s.Validate(ctx, tt.values)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			var got map[string]string
			if len(errs) > 0 {
				got = map[string]string{}
				for name, fieldErr := range errs {
					got[name] = fieldErr.Type
					if fieldErr.Message == "" {
						t.Fatalf("expected reason for %s", name)
					}
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := signupSchema().Validate(ctx, nil); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestFromOpenAPI_Rejects(t *testing.T) {
	if _, err := FromOpenAPI(nil); err != ErrSchemaRequired {
		t.Fatalf("expected ErrSchemaRequired, got %v", err)
	}
	if _, err := FromOpenAPI(String().OpenAPI()); err == nil {
		t.Fatalf("expected error for non-object schema")
	}
}

func TestLoadOpenAPI_FromFS(t *testing.T) {
	data, err := os.ReadFile("testdata/signup.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	files := fstest.MapFS{"specs/signup.yaml": {Data: data}}

	s, err := LoadOpenAPI(context.Background(), SourceFromFS("specs/signup.yaml"), "Signup", WithFileSystem(files))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"name", "email", "age", "plan"}
	if diff := cmp.Diff(want, s.Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	name, _ := s.Field("name")
	if rule, _ := name.Rule(model.ValidationRuleMinLength); rule.Message != "Name is too short" {
		t.Fatalf("expected x-messages to load, got %+v", rule)
	}
	email, _ := s.Field("email")
	if email.Placeholder != "you@example.com" {
		t.Fatalf("expected x-placeholder, got %q", email.Placeholder)
	}

	if _, err := LoadOpenAPI(context.Background(), SourceFromFS("specs/signup.yaml"), "Missing", WithFileSystem(files)); err == nil {
		t.Fatalf("expected missing component error")
	}
}

func TestOperationRequestSchema(t *testing.T) {
	doc, err := NewLoader().Load(context.Background(), SourceFromFile("testdata/signup.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s, err := OperationRequestSchema(doc, "createSignup")
	if err != nil {
		t.Fatalf("operation schema: %v", err)
	}
	if _, ok := s.Field("email"); !ok {
		t.Fatalf("expected email field from request body")
	}
	if _, err := OperationRequestSchema(doc, "unknown"); err == nil {
		t.Fatalf("expected unknown operation error")
	}
}

func TestLoader_HTTP(t *testing.T) {
	data, err := os.ReadFile("testdata/signup.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(data)
	}))
	defer server.Close()

	src, err := SourceFromURL(server.URL + "/signup.yaml")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if _, err := NewLoader().Load(context.Background(), src); err == nil {
		t.Fatalf("expected http disabled error")
	}
	if _, err := LoadOpenAPI(context.Background(), src, "Signup", WithHTTPClient(server.Client())); err != nil {
		t.Fatalf("load over http: %v", err)
	}
}

func TestParseSource(t *testing.T) {
	src, err := ParseSource("https://example.com/openapi.yaml")
	if err != nil || src.Kind() != SourceKindURL {
		t.Fatalf("expected url source, got %v %v", src, err)
	}
	src, err = ParseSource("./specs/../openapi.yaml")
	if err != nil || src.Kind() != SourceKindFile || src.Location() != "openapi.yaml" {
		t.Fatalf("expected cleaned file source, got %v %v", src, err)
	}
	if _, err := ParseSource(" "); err == nil {
		t.Fatalf("expected error for empty location")
	}
	if _, err := SourceFromURL("ftp://example.com/x"); err == nil {
		t.Fatalf("expected scheme error")
	}
}
