package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// defaultForm is the key used for overlays written without a "forms" map.
// They apply to any form that has no dedicated entry.
const defaultForm = ""

// LoadFS walks the provided filesystem and parses JSON, YAML and TOML overlay
// files. When fsys is nil or no overlay files are present, the returned store
// is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Overlay)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isOverlayFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}
		return store.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile parses a single overlay file.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("uischema: read %s: %w", path, err)
	}
	store := &Store{forms: make(map[string]Overlay)}
	if err := store.add(data, path); err != nil {
		return nil, err
	}
	return store, nil
}

// Form returns the overlay for a form name, falling back to an overlay file
// that was not keyed by form.
func (s *Store) Form(name string) (*Overlay, bool) {
	if s == nil {
		return nil, false
	}
	if overlay, ok := s.forms[strings.TrimSpace(name)]; ok {
		return &overlay, true
	}
	if overlay, ok := s.forms[defaultForm]; ok {
		return &overlay, true
	}
	return nil, false
}

// Names lists the form names with a dedicated overlay.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.forms))
	for name := range s.forms {
		if name != defaultForm {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any overlays.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

type documentFile struct {
	Forms  map[string]formFile    `json:"forms" yaml:"forms" toml:"forms"`
	Form   FormConfig             `json:"form" yaml:"form" toml:"form"`
	Fields map[string]FieldConfig `json:"fields" yaml:"fields" toml:"fields"`
}

type formFile struct {
	Form   FormConfig             `json:"form" yaml:"form" toml:"form"`
	Fields map[string]FieldConfig `json:"fields" yaml:"fields" toml:"fields"`
}

func (s *Store) add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}

	if len(doc.Forms) == 0 {
		return s.put(defaultForm, formFile{Form: doc.Form, Fields: doc.Fields}, source)
	}
	for name, raw := range doc.Forms {
		id := strings.TrimSpace(name)
		if id == "" {
			return fmt.Errorf("uischema: file %s defines an empty form name", source)
		}
		if err := s.put(id, raw, source); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) put(name string, raw formFile, source string) error {
	if _, exists := s.forms[name]; exists {
		if name == defaultForm {
			return fmt.Errorf("uischema: duplicate default overlay (file %s)", source)
		}
		return fmt.Errorf("uischema: duplicate form %q (file %s)", name, source)
	}

	overlay := Overlay{
		Name:   name,
		Source: source,
		Form:   sanitizeForm(raw.Form),
		Fields: make(map[string]FieldConfig, len(raw.Fields)),
	}
	for key, cfg := range raw.Fields {
		normalised := NormalizeFieldName(key)
		if normalised == "" {
			return fmt.Errorf("uischema: form %q (file %s) field key %q normalises to empty name", name, source, key)
		}
		if _, exists := overlay.Fields[normalised]; exists {
			return fmt.Errorf("uischema: form %q (file %s) defines duplicate field %q", name, source, normalised)
		}
		overlay.Fields[normalised] = sanitizeField(cfg)
	}
	s.forms[name] = overlay
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
		}
		return doc, nil
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
		}
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("uischema: parse %s: invalid JSON or YAML", source)
}

func isOverlayFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}
