package schema

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-snowform/pkg/model"
)

// ErrSchemaRequired is returned when a nil schema is supplied.
var ErrSchemaRequired = errors.New("schema: schema is required")

// Schema wraps an object schema describing one form.
type Schema struct {
	root   *openapi3.Schema
	fields []model.Field
}

// FromOpenAPI wraps an object schema. Properties without a resolved value
// are rejected.
func FromOpenAPI(root *openapi3.Schema) (*Schema, error) {
	if root == nil {
		return nil, ErrSchemaRequired
	}
	if root.Type != nil && !root.Type.Includes(openapi3.TypeObject) {
		return nil, fmt.Errorf("schema: expected an object schema, got %v", root.Type.Slice())
	}
	for name, ref := range root.Properties {
		if ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("schema: property %q is unresolved", name)
		}
	}
	return &Schema{root: root, fields: buildFields(root)}, nil
}

func mustWrap(root *openapi3.Schema) *Schema {
	s, err := FromOpenAPI(root)
	if err != nil {
		panic(err)
	}
	return s
}

// OpenAPI returns the wrapped schema.
func (s *Schema) OpenAPI() *openapi3.Schema {
	return s.root
}

// Fields returns the form fields in declaration order: x-order first, then
// alphabetical.
func (s *Schema) Fields() []model.Field {
	out := make([]model.Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the named field.
func (s *Schema) Field(name string) (model.Field, bool) {
	for _, field := range s.fields {
		if field.Name == name {
			return field, true
		}
	}
	return model.Field{}, false
}

// Model returns the fields as a FormModel.
func (s *Schema) Model(id string) model.FormModel {
	return model.FormModel{
		ID:          id,
		Title:       s.root.Title,
		Description: s.root.Description,
		Fields:      s.Fields(),
	}
}

// Names returns the field names in render order.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.fields))
	for _, field := range s.fields {
		names = append(names, field.Name)
	}
	return names
}

func buildFields(root *openapi3.Schema) []model.Field {
	type ordered struct {
		name  string
		order int
		has   bool
	}
	entries := make([]ordered, 0, len(root.Properties))
	for name, ref := range root.Properties {
		order, has := orderExtension(ref.Value.Extensions)
		entries = append(entries, ordered{name: name, order: order, has: has})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.has != b.has {
			return a.has
		}
		if a.has && a.order != b.order {
			return a.order < b.order
		}
		return a.name < b.name
	})

	required := make(map[string]struct{}, len(root.Required))
	for _, name := range root.Required {
		required[name] = struct{}{}
	}

	fields := make([]model.Field, 0, len(entries))
	for _, entry := range entries {
		_, isRequired := required[entry.name]
		fields = append(fields, convertField(entry.name, root.Properties[entry.name].Value, isRequired))
	}
	return fields
}

func convertField(name string, prop *openapi3.Schema, required bool) model.Field {
	field := model.Field{
		Name:        name,
		Type:        fieldType(prop),
		Format:      prop.Format,
		Required:    required,
		Title:       prop.Title,
		Placeholder: stringExtension(prop.Extensions, ExtensionPlaceholder),
		Description: prop.Description,
		Default:     prop.Default,
		Enum:        append([]any(nil), prop.Enum...),
		MaxLength:   prop.MaxLength,
		UIHints:     stringMap(prop.Extensions[ExtensionUI]),
	}
	if len(field.Enum) == 0 {
		field.Enum = nil
	}
	if prop.Items != nil && prop.Items.Value != nil {
		item := convertField("items", prop.Items.Value, false)
		field.Items = &item
	}
	field.Validations = validations(prop, required)
	return field
}

func fieldType(prop *openapi3.Schema) model.FieldType {
	for _, typ := range prop.Type.Slice() {
		switch typ {
		case openapi3.TypeString:
			return model.FieldTypeString
		case openapi3.TypeInteger:
			return model.FieldTypeInteger
		case openapi3.TypeNumber:
			return model.FieldTypeNumber
		case openapi3.TypeBoolean:
			return model.FieldTypeBoolean
		case openapi3.TypeArray:
			return model.FieldTypeArray
		case openapi3.TypeObject:
			return model.FieldTypeObject
		}
	}
	return model.FieldTypeString
}

func validations(prop *openapi3.Schema, required bool) []model.ValidationRule {
	messages := messagesFromExtensions(prop.Extensions)
	var rules []model.ValidationRule
	add := func(kind string, params map[string]string) {
		rules = append(rules, model.ValidationRule{Kind: kind, Params: params, Message: messages[kind]})
	}

	if required {
		add(model.ValidationRuleRequired, nil)
	}
	if prop.Min != nil {
		add(model.ValidationRuleMin, map[string]string{"value": formatFloat(*prop.Min)})
	}
	if prop.Max != nil {
		add(model.ValidationRuleMax, map[string]string{"value": formatFloat(*prop.Max)})
	}
	if prop.MinLength > 0 {
		add(model.ValidationRuleMinLength, map[string]string{"value": strconv.FormatUint(prop.MinLength, 10)})
	}
	if prop.MaxLength != nil {
		add(model.ValidationRuleMaxLength, map[string]string{"value": strconv.FormatUint(*prop.MaxLength, 10)})
	}
	if prop.Pattern != "" {
		add(model.ValidationRulePattern, map[string]string{"pattern": prop.Pattern})
	}
	if len(prop.Enum) > 0 {
		add(model.ValidationRuleEnum, nil)
	}

	// Messages for kinds without a matching rule (format, type, minItems, ...)
	// still need to reach the resolver.
	known := map[string]struct{}{}
	for _, rule := range rules {
		known[rule.Kind] = struct{}{}
	}
	extra := make([]string, 0, len(messages))
	for kind := range messages {
		if _, ok := known[kind]; !ok {
			extra = append(extra, kind)
		}
	}
	sort.Strings(extra)
	for _, kind := range extra {
		add(kind, nil)
	}
	return rules
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
