package schema

import (
	"strconv"
	"strings"
)

// Vendor extensions understood on property schemas.
const (
	ExtensionMessages    = "x-messages"
	ExtensionPlaceholder = "x-placeholder"
	ExtensionOrder       = "x-order"
	ExtensionUI          = "x-ui"
)

func setExtension(ext map[string]any, key string, value any) map[string]any {
	if ext == nil {
		ext = make(map[string]any)
	}
	ext[key] = value
	return ext
}

func setMessage(ext map[string]any, kind, message string) map[string]any {
	message = strings.TrimSpace(message)
	if message == "" {
		return ext
	}
	messages := messagesFromExtensions(ext)
	if messages == nil {
		messages = map[string]string{}
	}
	messages[kind] = message
	raw := make(map[string]any, len(messages))
	for key, value := range messages {
		raw[key] = value
	}
	return setExtension(ext, ExtensionMessages, raw)
}

func messagesFromExtensions(ext map[string]any) map[string]string {
	return stringMap(ext[ExtensionMessages])
}

func stringMap(value any) map[string]string {
	switch typed := value.(type) {
	case map[string]string:
		out := make(map[string]string, len(typed))
		for key, v := range typed {
			out[key] = v
		}
		return out
	case map[string]any:
		out := make(map[string]string, len(typed))
		for key, v := range typed {
			if str, ok := toString(v); ok {
				out[key] = str
			}
		}
		return out
	default:
		return nil
	}
}

func stringExtension(ext map[string]any, key string) string {
	str, _ := toString(ext[key])
	return str
}

func orderExtension(ext map[string]any) (int, bool) {
	switch v := ext[ExtensionOrder].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}
	return 0, false
}

func toString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	}
	return "", false
}
