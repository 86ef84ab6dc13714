package gotemplate

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// FormatAttrs renders attrs as ` key="value"` pairs sorted by key. Empty
// values render as boolean attributes; keys with characters outside the
// attribute name charset are dropped.
func FormatAttrs(attrs map[string]any) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		if validAttrName(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		builder.WriteByte(' ')
		builder.WriteString(key)
		value := attrs[key]
		if value == nil {
			continue
		}
		str := fmt.Sprint(value)
		if str == "" {
			continue
		}
		builder.WriteString(`="`)
		builder.WriteString(html.EscapeString(str))
		builder.WriteString(`"`)
	}
	return builder.String()
}

func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == ':':
		default:
			return false
		}
	}
	return true
}
