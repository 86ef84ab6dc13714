// Package render turns a schema into HTML form markup.
//
// Render emits every visible field followed by the submit button. Layout
// hands the caller a *Layout so it can arrange fields itself, either from Go
// or through a pongo2 layout template.
package render
