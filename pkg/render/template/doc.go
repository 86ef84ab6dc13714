// Package template defines the template engine seam the default components
// and layout rendering rely on. The gotemplate subpackage provides the
// pongo2-backed implementation.
package template
