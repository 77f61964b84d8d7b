// Package render defines the renderer contract for editor snapshots together
// with a name-indexed registry and per-request options (layout, theme,
// notices).
package render

import (
	"context"

	"github.com/goliatone/go-formblob/pkg/editor"
)

// Renderer converts an editor snapshot into a byte representation (HTML, text
// tables, or a blob collected interactively).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, state editor.State, options RenderOptions) ([]byte, error)
}
