package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-snowform/pkg/registry"
)

// ErrMissingTranslation is returned by Translate when no locale in the
// lookup chain has the key.
var ErrMissingTranslation = errors.New("i18n: missing translation")

// DefaultLocale is the fallback used when none is configured.
const DefaultLocale = "en"

// Option configures a Catalog.
type Option func(*Catalog)

// WithFallback sets the locale consulted after the requested one.
func WithFallback(locale string) Option {
	return func(c *Catalog) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			c.fallback = trimmed
		}
	}
}

// Catalog holds flattened messages per locale. It is safe for concurrent
// use.
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
	fallback string
}

// NewCatalog returns an empty catalog.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		messages: make(map[string]map[string]string),
		fallback: DefaultLocale,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// LoadFS reads every *.yaml, *.yml and *.json file under fsys. The file base
// name is the locale; files for the same locale are merged.
func LoadFS(fsys fs.FS, opts ...Option) (*Catalog, error) {
	c := NewCatalog(opts...)
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(path.Ext(name))
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		var raw map[string]any
		if ext == ".json" {
			err = json.Unmarshal(data, &raw)
		} else {
			err = yaml.Unmarshal(data, &raw)
		}
		if err != nil {
			return fmt.Errorf("i18n: parse %s: %w", name, err)
		}
		c.Add(strings.TrimSuffix(path.Base(name), path.Ext(name)), raw)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Add merges messages into locale. Nested maps become dot separated keys.
func (c *Catalog) Add(locale string, messages map[string]any) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return
	}
	flat := make(map[string]string)
	flatten("", messages, flat)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.messages[locale] == nil {
		c.messages[locale] = make(map[string]string, len(flat))
	}
	for key, value := range flat {
		c.messages[locale][key] = value
	}
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for key, value := range in {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(full, v, out)
		case nil:
		default:
			out[full] = fmt.Sprint(v)
		}
	}
}

// Locales returns the loaded locales, sorted.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	locales := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// Fallback returns the fallback locale.
func (c *Catalog) Fallback() string {
	return c.fallback
}

// Translate looks key up in locale, its base language and the fallback, then
// fills {name} placeholders from args. Args are either a single map or
// alternating name, value pairs.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, candidate := range c.chain(locale) {
		if message, ok := c.messages[candidate][key]; ok {
			return interpolate(message, args), nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s", ErrMissingTranslation, locale, key)
}

// Func binds the catalog to locale. Missing keys are returned unchanged.
func (c *Catalog) Func(locale string) registry.TranslationFunc {
	return func(key string) string {
		message, err := c.Translate(locale, key)
		if err != nil {
			return key
		}
		return message
	}
}

func (c *Catalog) chain(locale string) []string {
	chain := make([]string, 0, 3)
	add := func(candidate string) {
		if candidate == "" {
			return
		}
		for _, existing := range chain {
			if existing == candidate {
				return
			}
		}
		chain = append(chain, candidate)
	}
	locale = strings.TrimSpace(locale)
	add(locale)
	if tag, err := language.Parse(locale); err == nil {
		if base, conf := tag.Base(); conf != language.No {
			add(base.String())
		}
	}
	add(c.fallback)
	return chain
}

func interpolate(message string, args []any) string {
	if len(args) == 0 || !strings.Contains(message, "{") {
		return message
	}
	values := make(map[string]string)
	switch {
	case len(args) == 1:
		switch m := args[0].(type) {
		case map[string]any:
			for k, v := range m {
				values[k] = fmt.Sprint(v)
			}
		case map[string]string:
			for k, v := range m {
				values[k] = v
			}
		}
	default:
		for i := 0; i+1 < len(args); i += 2 {
			values[fmt.Sprint(args[i])] = fmt.Sprint(args[i+1])
		}
	}
	if len(values) == 0 {
		return message
	}
	pairs := make([]string, 0, len(values)*2)
	for name, value := range values {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(message)
}
