package render

import "github.com/goliatone/go-formblob/pkg/layout"

// RenderOptions describe per-request data renderers use to customise their
// output without touching the editor snapshot.
type RenderOptions struct {
	// Layout supplies the prose around each input. A zero Layout falls back to
	// layout.Default().
	Layout layout.Layout
	// Theme carries resolved theme tokens, partial overrides and asset lookups.
	Theme *ThemeConfig
	// Action names the action that produced the snapshot (e.g. "parse") so
	// renderers can highlight the affected region.
	Action string
	// Notice is a short message shown above the editor, such as a parse that
	// left the list unchanged.
	Notice string
	// AssetPrefix is the URL prefix under which bundled stylesheets are served.
	AssetPrefix string
}

// ResolvedLayout returns Layout or the default layout when unset.
func (o RenderOptions) ResolvedLayout() layout.Layout {
	if len(o.Layout.Segments) == 0 {
		return layout.Default()
	}
	return o.Layout
}
