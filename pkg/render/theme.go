package render

import (
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig is the renderer-facing view of a go-theme selection: merged
// tokens, CSS custom properties derived from them, template partial overrides
// and an asset URL resolver.
type ThemeConfig struct {
	Theme    string
	Variant  string
	Tokens   map[string]string
	CSSVars  map[string]string
	Partials map[string]string
	AssetURL func(key string) string
}

// CSSVarList returns CSS variables sorted by name for deterministic output.
func (c *ThemeConfig) CSSVarList() []CSSVar {
	if c == nil || len(c.CSSVars) == 0 {
		return nil
	}
	out := make([]CSSVar, 0, len(c.CSSVars))
	for name, value := range c.CSSVars {
		out = append(out, CSSVar{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CSSVar is one custom property declaration.
type CSSVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DefaultPartials are the template partials used when a theme does not
// override them.
func DefaultPartials() map[string]string {
	return map[string]string{
		"editor.item":   "templates/item.tmpl",
		"editor.output": "templates/output.tmpl",
	}
}

// ThemeConfigFromSelection merges the selected manifest with its variant.
// Variant tokens, templates and asset files override the base manifest.
func ThemeConfigFromSelection(sel *theme.Selection, fallbacks map[string]string) (*ThemeConfig, error) {
	if sel == nil || sel.Manifest == nil {
		return nil, fmt.Errorf("render: theme selection is empty")
	}
	manifest := sel.Manifest

	cfg := &ThemeConfig{
		Theme:    firstNonEmpty(sel.Theme, manifest.Name),
		Variant:  sel.Variant,
		Tokens:   make(map[string]string, len(manifest.Tokens)),
		CSSVars:  make(map[string]string, len(manifest.Tokens)),
		Partials: make(map[string]string, len(fallbacks)+len(manifest.Templates)),
	}
	for key, value := range fallbacks {
		cfg.Partials[key] = value
	}
	mergeInto(cfg.Tokens, manifest.Tokens)
	mergeInto(cfg.Partials, manifest.Templates)

	prefix := manifest.Assets.Prefix
	files := make(map[string]string, len(manifest.Assets.Files))
	mergeInto(files, manifest.Assets.Files)

	if variant, ok := manifest.Variants[sel.Variant]; ok {
		mergeInto(cfg.Tokens, variant.Tokens)
		mergeInto(cfg.Partials, variant.Templates)
		mergeInto(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "http://") || strings.HasPrefix(file, "https://") || strings.HasPrefix(file, "/") {
			return file
		}
		if prefix == "" {
			return file
		}
		return path.Join(prefix, file)
	}
	return cfg, nil
}

// ResolveTheme runs selector and converts the result, returning nil when no
// selector is configured.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*ThemeConfig, error) {
	if selector == nil {
		return nil, nil
	}
	sel, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q/%q: %w", name, variant, err)
	}
	return ThemeConfigFromSelection(sel, DefaultPartials())
}

// StaticSelector serves a fixed set of manifests, falling back to a default
// theme and variant when a request leaves them blank.
type StaticSelector struct {
	Manifests      map[string]*theme.Manifest
	DefaultTheme   string
	DefaultVariant string
}

// NewStaticSelector indexes manifests by name; the first one is the default.
func NewStaticSelector(manifests ...*theme.Manifest) *StaticSelector {
	s := &StaticSelector{Manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, m := range manifests {
		if m == nil || m.Name == "" {
			continue
		}
		if s.DefaultTheme == "" {
			s.DefaultTheme = m.Name
		}
		s.Manifests[m.Name] = m
	}
	return s
}

// Select implements theme.ThemeSelector.
func (s *StaticSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = firstNonEmpty(strings.TrimSpace(name), s.DefaultTheme)
	variant = firstNonEmpty(strings.TrimSpace(variant), s.DefaultVariant)

	manifest, ok := s.Manifests[name]
	if !ok {
		return nil, fmt.Errorf("render: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// DefaultManifest is the bundled theme used by the browser editor.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "formblob",
		Version: "1.0.0",
		Tokens: map[string]string{
			"fb-accent":     "#1677ff",
			"fb-danger":     "#ff4d4f",
			"fb-surface":    "#ffffff",
			"fb-background": "#f5f5f5",
			"fb-text":       "#1f1f1f",
			"fb-border":     "#d9d9d9",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"stylesheet": "formblob.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"fb-surface":    "#1f1f1f",
					"fb-background": "#141414",
					"fb-text":       "#e8e8e8",
					"fb-border":     "#424242",
				},
			},
		},
	}
}

func mergeInto(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
