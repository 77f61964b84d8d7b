// Package template defines the template engine seam used by HTML renderers so
// engines can be swapped or stubbed in tests.
package template

import (
	"io"
)

// TemplateRenderer renders named templates. Output is returned and, when
// writers are supplied, copied to each of them. GlobalContext sets values
// visible to every template rendered afterwards.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	GlobalContext(data map[string]any) error
}
