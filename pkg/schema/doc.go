// Package schema binds forms to kin-openapi schemas. It offers a small
// chainable builder, loaders for OpenAPI documents, raw form value coercion
// and validation that reports the first error per field.
package schema
