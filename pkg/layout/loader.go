package layout

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultName names the bundled layout.
const DefaultName = "default"

// Store indexes layouts by name.
type Store struct {
	layouts map[string]Layout
}

type documentFile struct {
	Layouts []Layout `json:"layouts" yaml:"layouts"`
}

// LoadFS walks fsys and parses every JSON/YAML layout document. A nil fsys
// yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{layouts: make(map[string]Layout)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isLayoutFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("layout: read %s: %w", path, err)
		}
		layouts, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, l := range layouts {
			if _, exists := store.layouts[l.Name]; exists {
				return fmt.Errorf("layout: duplicate layout %q (file %s)", l.Name, path)
			}
			store.layouts[l.Name] = l
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse decodes one layout document. JSON is tried first, then YAML.
func Parse(data []byte, source string) ([]Layout, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("layout: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("layout: parse %s: invalid JSON or YAML", source)
		}
	}
	if len(doc.Layouts) == 0 {
		return nil, fmt.Errorf("layout: file %s defines no layouts", source)
	}

	out := make([]Layout, 0, len(doc.Layouts))
	for idx, raw := range doc.Layouts {
		l, err := normalise(raw, source)
		if err != nil {
			return nil, fmt.Errorf("layout: file %s layout %d: %w", source, idx, err)
		}
		out = append(out, l)
	}
	return out, nil
}

func normalise(raw Layout, source string) (Layout, error) {
	l := raw
	l.Name = strings.TrimSpace(raw.Name)
	if l.Name == "" {
		return Layout{}, fmt.Errorf("name is required")
	}
	l.Source = source

	l.Segments = make([]Segment, len(raw.Segments))
	for idx, seg := range raw.Segments {
		seg.Before = sanitizeProse(seg.Before)
		seg.After = sanitizeProse(seg.After)
		seg.Placeholder = stripMarkup(seg.Placeholder)
		if seg.Width <= 0 {
			seg.Width = DefaultWidth
		}
		l.Segments[idx] = seg
	}

	if len(raw.Actions) > 0 {
		l.Actions = make(map[string]string, len(raw.Actions))
		for key, label := range raw.Actions {
			l.Actions[strings.TrimSpace(key)] = stripMarkup(label)
		}
	}

	if err := l.validate(); err != nil {
		return Layout{}, fmt.Errorf("%q: %w", l.Name, err)
	}
	return l, nil
}

// LoadDir loads the layouts under dir and returns the one called name. Layouts
// in dir shadow the bundled ones; an empty dir uses the bundled set only.
func LoadDir(dir, name string) (Layout, error) {
	if name = strings.TrimSpace(name); name == "" {
		name = DefaultName
	}
	store := &Store{}
	if dir = strings.TrimSpace(dir); dir != "" {
		loaded, err := LoadFS(os.DirFS(dir))
		if err != nil {
			return Layout{}, err
		}
		store = loaded
	}
	store.Merge(Defaults())

	l, ok := store.Layout(name)
	if !ok {
		return Layout{}, fmt.Errorf("layout: %q not found (have %s)", name, strings.Join(store.Names(), ", "))
	}
	return l, nil
}

// Layout returns the named layout.
func (s *Store) Layout(name string) (Layout, bool) {
	if s == nil {
		return Layout{}, false
	}
	l, ok := s.layouts[strings.TrimSpace(name)]
	return l, ok
}

// Names lists layout names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.layouts))
	for name := range s.layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge copies layouts from other that s does not already define.
func (s *Store) Merge(other *Store) {
	if s == nil || other == nil {
		return
	}
	if s.layouts == nil {
		s.layouts = make(map[string]Layout, len(other.layouts))
	}
	for name, l := range other.layouts {
		if _, exists := s.layouts[name]; !exists {
			s.layouts[name] = l
		}
	}
}

// Empty reports whether the store holds any layouts.
func (s *Store) Empty() bool {
	return s == nil || len(s.layouts) == 0
}

func isLayoutFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
