// Package resolve decides, for one field, which component renders it and
// which label, description, placeholder, options and error message it shows.
//
// Every concern resolves through three layers, first hit wins:
// a per-field override, the app-wide registries configured by Setup, and the
// library defaults from pkg/components.
package resolve
