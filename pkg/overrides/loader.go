package overrides

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-snowform/pkg/resolve"
)

// Form holds the overrides declared for one form.
type Form struct {
	SubmitLabel string
	Fields      resolve.Overrides
}

// Store indexes form overrides by form id.
type Store struct {
	forms map[string]Form
}

// LoadFS walks fsys and parses every JSON/YAML overrides file. A nil fsys
// yields an empty store. Declaring the same form id in two files is an
// error.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Form)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isOverridesFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("overrides: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for formID, raw := range doc.Forms {
			id := strings.TrimSpace(formID)
			if id == "" {
				return fmt.Errorf("overrides: file %s defines an empty form id", path)
			}
			if _, exists := store.forms[id]; exists {
				return fmt.Errorf("overrides: duplicate form %q (file %s)", id, path)
			}
			form, err := normaliseForm(raw, id, path)
			if err != nil {
				return err
			}
			store.forms[id] = form
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Form returns the overrides for the form id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// Overrides returns the field overrides for the form id, or nil.
func (s *Store) Overrides(id string) resolve.Overrides {
	form, _ := s.Form(id)
	return form.Fields
}

// Forms lists the form ids, sorted.
func (s *Store) Forms() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	SubmitLabel string                           `json:"submitLabel" yaml:"submitLabel"`
	Fields      map[string]resolve.FieldOverride `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("overrides: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("overrides: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseForm(raw formFile, id, source string) (Form, error) {
	form := Form{SubmitLabel: strings.TrimSpace(raw.SubmitLabel)}
	if len(raw.Fields) == 0 {
		return form, nil
	}
	form.Fields = make(resolve.Overrides, len(raw.Fields))
	for name, override := range raw.Fields {
		field := strings.TrimSpace(name)
		if field == "" {
			return Form{}, fmt.Errorf("overrides: form %q (file %s) has an empty field name", id, source)
		}
		if _, exists := form.Fields[field]; exists {
			return Form{}, fmt.Errorf("overrides: form %q (file %s) defines duplicate field %q", id, source, field)
		}
		override.Type = strings.ToLower(strings.TrimSpace(override.Type))
		form.Fields[field] = override
	}
	return form, nil
}

func isOverridesFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
