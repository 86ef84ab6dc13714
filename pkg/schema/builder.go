package schema

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// emailPattern is intentionally loose: one @ and a dot in the domain.
const emailPattern = `^[^@\s]+@[^@\s]+\.[^@\s]+$`

const urlPattern = `^https?://[^\s]+$`

// Builder describes one property. Builders are mutated in place and returned
// for chaining.
type Builder struct {
	schema   *openapi3.Schema
	optional bool
}

// Entry pairs a property name with its builder.
type Entry struct {
	Name    string
	Builder *Builder
}

// Field names a property for Object.
func Field(name string, builder *Builder) Entry {
	return Entry{Name: name, Builder: builder}
}

// Object builds an object schema from entries in declaration order. Entries
// are required unless marked Optional. A repeated name replaces the earlier
// property but keeps its position.
func Object(entries ...Entry) *Schema {
	root := openapi3.NewObjectSchema()
	positions := map[string]int{}
	var required []string
	for _, entry := range entries {
		if entry.Name == "" || entry.Builder == nil {
			continue
		}
		position, seen := positions[entry.Name]
		if !seen {
			position = len(positions)
			positions[entry.Name] = position
		}
		prop := entry.Builder.schema
		prop.Extensions = setExtension(prop.Extensions, ExtensionOrder, position)
		root.Properties[entry.Name] = openapi3.NewSchemaRef("", prop)

		required = removeString(required, entry.Name)
		if !entry.Builder.optional {
			required = append(required, entry.Name)
		}
	}
	root.Required = required
	return mustWrap(root)
}

func newBuilder(schema *openapi3.Schema) *Builder {
	return &Builder{schema: schema}
}

// String starts a string property.
func String() *Builder { return newBuilder(openapi3.NewStringSchema()) }

// Number starts a floating point property.
func Number() *Builder { return newBuilder(openapi3.NewFloat64Schema()) }

// Integer starts an integer property.
func Integer() *Builder { return newBuilder(openapi3.NewIntegerSchema()) }

// Boolean starts a boolean property.
func Boolean() *Builder { return newBuilder(openapi3.NewBoolSchema()) }

// Date starts a string property with the date format (YYYY-MM-DD).
func Date() *Builder { return newBuilder(openapi3.NewStringSchema().WithFormat("date")) }

// Enum starts a string property limited to values.
func Enum(values ...string) *Builder {
	enum := make([]any, 0, len(values))
	for _, value := range values {
		enum = append(enum, value)
	}
	return newBuilder(openapi3.NewStringSchema().WithEnum(enum...))
}

// Array starts an array property of item.
func Array(item *Builder) *Builder {
	schema := openapi3.NewArraySchema()
	if item != nil {
		schema.Items = openapi3.NewSchemaRef("", item.schema)
	}
	return newBuilder(schema)
}

// OpenAPI exposes the schema under construction.
func (b *Builder) OpenAPI() *openapi3.Schema {
	return b.schema
}

// Min sets the lower bound: length for strings, value for numbers and item
// count for arrays.
func (b *Builder) Min(n float64, message ...string) *Builder {
	switch {
	case b.is(openapi3.TypeString):
		b.schema.MinLength = uint64(n)
		b.message("minLength", message)
	case b.is(openapi3.TypeArray):
		b.schema.MinItems = uint64(n)
		b.message("minItems", message)
	default:
		b.schema.Min = &n
		b.message("minimum", message)
	}
	return b
}

// Max sets the upper bound, mirroring Min.
func (b *Builder) Max(n float64, message ...string) *Builder {
	switch {
	case b.is(openapi3.TypeString):
		limit := uint64(n)
		b.schema.MaxLength = &limit
		b.message("maxLength", message)
	case b.is(openapi3.TypeArray):
		limit := uint64(n)
		b.schema.MaxItems = &limit
		b.message("maxItems", message)
	default:
		b.schema.Max = &n
		b.message("maximum", message)
	}
	return b
}

// Email requires an email-shaped string.
func (b *Builder) Email(message ...string) *Builder {
	b.schema.Format = "email"
	return b.Pattern(emailPattern, message...)
}

// URL requires an http(s) URL.
func (b *Builder) URL(message ...string) *Builder {
	b.schema.Format = "uri"
	return b.Pattern(urlPattern, message...)
}

// Pattern requires the value to match expr.
func (b *Builder) Pattern(expr string, message ...string) *Builder {
	b.schema.Pattern = expr
	b.message("pattern", message)
	return b
}

// MustBeTrue only accepts true, the usual terms-of-service checkbox.
func (b *Builder) MustBeTrue(message ...string) *Builder {
	b.schema.Enum = []any{true}
	b.message("enum", message)
	return b
}

// Required sets the message used when the property is missing.
func (b *Builder) Required(message string) *Builder {
	b.optional = false
	b.schema.Extensions = setMessage(b.schema.Extensions, "required", message)
	return b
}

// Message sets the message for an arbitrary error type.
func (b *Builder) Message(kind, message string) *Builder {
	b.schema.Extensions = setMessage(b.schema.Extensions, kind, message)
	return b
}

// Optional marks the property as not required.
func (b *Builder) Optional() *Builder {
	b.optional = true
	return b
}

// Title sets the schema title, used as a label fallback.
func (b *Builder) Title(title string) *Builder {
	b.schema.Title = title
	return b
}

// Describe sets the schema description.
func (b *Builder) Describe(description string) *Builder {
	b.schema.Description = description
	return b
}

// Placeholder sets the placeholder hint.
func (b *Builder) Placeholder(text string) *Builder {
	b.schema.Extensions = setExtension(b.schema.Extensions, ExtensionPlaceholder, text)
	return b
}

// Default sets the default value.
func (b *Builder) Default(value any) *Builder {
	b.schema.Default = value
	return b
}

// Format sets the string format.
func (b *Builder) Format(format string) *Builder {
	b.schema.Format = format
	return b
}

// UI attaches a rendering hint (component, rows, ...).
func (b *Builder) UI(key, value string) *Builder {
	hints := stringMap(b.schema.Extensions[ExtensionUI])
	if hints == nil {
		hints = map[string]string{}
	}
	hints[key] = value
	raw := make(map[string]any, len(hints))
	for k, v := range hints {
		raw[k] = v
	}
	b.schema.Extensions = setExtension(b.schema.Extensions, ExtensionUI, raw)
	return b
}

func (b *Builder) is(typ string) bool {
	return b.schema.Type.Is(typ)
}

func (b *Builder) message(kind string, message []string) {
	if len(message) == 0 {
		return
	}
	b.schema.Extensions = setMessage(b.schema.Extensions, kind, message[0])
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, item := range list {
		if item != value {
			out = append(out, item)
		}
	}
	return out
}
