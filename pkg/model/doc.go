// Package model defines the plain data shared by the registries, the resolver
// and the renderers: schema derived fields, selectable options, validation
// errors keyed by field name, and the FormRef handed to error behaviors.
//
// Fields carry the schema facts (type, format, enum, validation rules) while
// the curated UIHints map surfaces renderer-facing directives such as
// `placeholder` or `widget` that schema extensions supplied.
package model
