// Package text renders the editor state for terminals and logs: a table with
// one row per form item followed by the blob output.
package text

import (
	"context"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/goliatone/go-formblob/pkg/editor"
	"github.com/goliatone/go-formblob/pkg/model"
	"github.com/goliatone/go-formblob/pkg/render"
)

type Option func(*Renderer)

// WithStyle overrides the go-pretty table style (default table.StyleLight).
func WithStyle(style table.Style) Option {
	return func(r *Renderer) {
		r.style = style
	}
}

// WithoutOutput omits the blob section below the table.
func WithoutOutput() Option {
	return func(r *Renderer) {
		r.hideOutput = true
	}
}

type Renderer struct {
	style      table.Style
	hideOutput bool
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{style: table.StyleLight}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, state editor.State, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l := opts.ResolvedLayout()

	x := table.NewWriter()
	x.SetStyle(r.style)
	if l.Title != "" {
		x.SetTitle(l.Title)
	}

	header := table.Row{"ID"}
	for _, slot := range model.Slots() {
		header = append(header, l.Label(slot))
	}
	x.AppendHeader(header)

	for _, item := range state.Items {
		row := table.Row{strconv.Itoa(item.ID)}
		for _, slot := range model.Slots() {
			row = append(row, item.Value(slot))
		}
		x.AppendRow(row)
	}

	var b strings.Builder
	b.WriteString(x.Render())
	b.WriteString("\n")

	if !r.hideOutput {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(firstNonEmpty(l.OutputLabel, "Output:")))
		b.WriteString("\n")
		b.WriteString(state.Output)
		b.WriteString("\n")
	}
	if opts.Notice != "" {
		b.WriteString("\n")
		b.WriteString(opts.Notice)
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
