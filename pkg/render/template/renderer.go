package template

import (
	"io"
)

// TemplateRenderer is the contract the default components and layout mode
// render through. Implementations load named templates from a file set and
// can also render ad-hoc template strings.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
