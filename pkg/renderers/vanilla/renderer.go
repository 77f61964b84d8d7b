// Package vanilla renders the editor as a plain HTML page: the blob text area
// with its generate/parse/clear buttons followed by one fieldset per form
// item, each laying its 13 inputs out inline with the layout prose. Every
// button submits the whole form so the page works without JavaScript.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formblob/pkg/editor"
	"github.com/goliatone/go-formblob/pkg/layout"
	"github.com/goliatone/go-formblob/pkg/model"
	"github.com/goliatone/go-formblob/pkg/render"
	rendertemplate "github.com/goliatone/go-formblob/pkg/render/template"
	gotemplate "github.com/goliatone/go-formblob/pkg/render/template/gotemplate"
)

const pageTemplate = "templates/editor.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	formAction       string
	lang             string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithFormAction sets the URL the editor form posts to (default "/").
func WithFormAction(action string) Option {
	return func(cfg *config) {
		if action = strings.TrimSpace(action); action != "" {
			cfg.formAction = action
		}
	}
}

// WithLang sets the document language attribute (default "zh").
func WithLang(lang string) Option {
	return func(cfg *config) {
		if lang = strings.TrimSpace(lang); lang != "" {
			cfg.lang = lang
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), formAction: "/", lang: "zh"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	globals := map[string]any{
		"lang":        cfg.lang,
		"form_action": cfg.formAction,
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithSetName("vanilla"),
			gotemplate.WithGlobalData(globals),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	} else if err := renderer.GlobalContext(globals); err != nil {
		return nil, fmt.Errorf("vanilla renderer: set template globals: %w", err)
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, state editor.State, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := opts.ResolvedLayout()
	partials := render.DefaultPartials()
	if opts.Theme != nil {
		for key, value := range opts.Theme.Partials {
			partials[key] = value
		}
	}
	labels := actionLabels(l)

	items := make([]string, 0, len(state.Items))
	for _, item := range state.Items {
		html, err := r.templates.RenderTemplate(partials["editor.item"], itemContext(l, item.ID, item.Values))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: render item %d: %w", item.ID, err)
		}
		items = append(items, html)
	}

	output, err := r.templates.RenderTemplate(partials["editor.output"], map[string]any{
		"label":       firstNonEmpty(l.OutputLabel, "Output"),
		"placeholder": l.OutputPlaceholder,
		"value":       state.Output,
		"rows":        outputRows(state.Output),
		"labels":      labels,
		"highlight":   opts.Action == editor.ActionGenerate || opts.Action == editor.ActionParse,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render output: %w", err)
	}

	page := map[string]any{
		"title":         firstNonEmpty(l.Title, "formblob"),
		"last_action":   opts.Action,
		"notice":        opts.Notice,
		"labels":        labels,
		"items":         items,
		"output_html":   output,
		"stylesheet":    stylesheetURL(opts),
		"css_vars":      cssVars(opts.Theme),
		"theme_variant": themeVariant(opts.Theme),
	}

	result, err := r.templates.RenderTemplate(pageTemplate, page)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func itemContext(l layout.Layout, id int, values map[model.Slot]string) map[string]any {
	segments := make([]map[string]any, 0, len(l.Segments))
	for _, seg := range l.Segments {
		segments = append(segments, map[string]any{
			"slot":        int(seg.Slot),
			"name":        FieldName(id, seg.Slot),
			"id":          controlID(id, seg.Slot),
			"value":       values[seg.Slot],
			"before":      seg.Before,
			"after":       seg.After,
			"width":       seg.Width,
			"placeholder": seg.Placeholder,
			"label":       l.Label(seg.Slot),
		})
	}
	return map[string]any{
		"id":            id,
		"heading":       l.Heading(id),
		"remove_action": fmt.Sprintf("%s:%d", editor.ActionRemove, id),
		"remove_label":  l.ActionLabel(editor.ActionRemove),
		"segments":      segments,
	}
}

func actionLabels(l layout.Layout) map[string]string {
	return map[string]string{
		"add":          l.ActionLabel(editor.ActionAdd),
		"clear_items":  l.ActionLabel(editor.ActionClearItems),
		"generate":     l.ActionLabel(editor.ActionGenerate),
		"parse":        l.ActionLabel(editor.ActionParse),
		"clear_output": l.ActionLabel(editor.ActionClearOutput),
	}
}

func stylesheetURL(opts render.RenderOptions) string {
	if opts.Theme != nil && opts.Theme.AssetURL != nil {
		if url := opts.Theme.AssetURL("stylesheet"); url != "" {
			return url
		}
	}
	if opts.AssetPrefix == "" {
		return ""
	}
	return strings.TrimRight(opts.AssetPrefix, "/") + "/" + StylesheetName
}

func cssVars(cfg *render.ThemeConfig) []map[string]string {
	vars := cfg.CSSVarList()
	if len(vars) == 0 {
		return nil
	}
	out := make([]map[string]string, 0, len(vars))
	for _, v := range vars {
		out = append(out, map[string]string{"name": v.Name, "value": v.Value})
	}
	return out
}

func themeVariant(cfg *render.ThemeConfig) string {
	if cfg == nil {
		return ""
	}
	return cfg.Variant
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
