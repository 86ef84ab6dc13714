// Package i18n loads translation catalogs and negotiates request locales.
//
// Catalog files are YAML or JSON named after their locale (es.yaml,
// en-US.json). Nested keys are flattened to dot paths, so
//
//	errors:
//	  summary: "Revisa {count} campos"
//
// is looked up as "errors.summary".
package i18n
